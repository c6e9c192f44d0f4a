// Package shellguard checks free-form text before it is handed to
// `adb shell` as the remote command line.
package shellguard

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"mvdan.cc/sh/v3/syntax"
)

// EscalationPrefix marks a command that is meant to run a whole sub-shell as
// root. Such commands skip the metacharacter filter.
const EscalationPrefix = "su -c"

// unsafeSequences can turn one remote command into several.
var unsafeSequences = []string{";", "&&", "||", "`", "$(", "${", "\n", "\r"}

// UnsafeCommandError reports the first forbidden sequence found.
type UnsafeCommandError struct {
	Sequence string
}

func (e *UnsafeCommandError) Error() string {
	return fmt.Sprintf("command contains unsafe sequence %q", e.Sequence)
}

// Decision tells the caller which path accepted the command.
type Decision struct {
	Escalated bool
}

// Guard validates remote shell commands. The zero value is usable and logs
// nothing.
type Guard struct {
	logger zerolog.Logger
}

// New returns a guard that logs escalated commands to logger.
func New(logger zerolog.Logger) *Guard {
	return &Guard{logger: logger}
}

// CheckMetacharacters is the default-deny filter. It never looks at the
// escalation prefix.
func CheckMetacharacters(cmd string) error {
	for _, seq := range unsafeSequences {
		if strings.Contains(cmd, seq) {
			return &UnsafeCommandError{Sequence: seq}
		}
	}
	return nil
}

// IsEscalated reports whether cmd starts with EscalationPrefix.
func IsEscalated(cmd string) bool {
	return strings.HasPrefix(cmd, EscalationPrefix)
}

// Validate accepts cmd when it passes the metacharacter filter, or when it is
// an escalated command. The escalated path is logged with a summary of the
// wrapped command line.
func (g *Guard) Validate(cmd string) (Decision, error) {
	if !IsEscalated(cmd) {
		if err := CheckMetacharacters(cmd); err != nil {
			return Decision{}, err
		}
		return Decision{}, nil
	}

	event := g.logger.Warn().Str("command", cmd)
	if stmts, subst, err := describe(strings.TrimPrefix(cmd, EscalationPrefix)); err == nil {
		event = event.Int("statements", stmts).Bool("substitution", subst)
	} else {
		event = event.Str("parse_error", err.Error())
	}
	event.Msg("escalated shell command bypasses metacharacter filter")
	return Decision{Escalated: true}, nil
}

// Validate runs the zero Guard.
func Validate(cmd string) error {
	var g Guard
	_, err := g.Validate(cmd)
	return err
}

// describe parses the text after the escalation prefix and counts what it
// would run. Only used for the audit log; a parse error does not reject.
func describe(script string) (statements int, substitution bool, err error) {
	script = strings.TrimSpace(script)
	if unquoted, ok := unquote(script); ok {
		script = unquoted
	}
	parser := syntax.NewParser(syntax.KeepComments(false), syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(strings.NewReader(script), "")
	if err != nil {
		return 0, false, err
	}
	syntax.Walk(file, func(node syntax.Node) bool {
		switch node.(type) {
		case *syntax.CmdSubst, *syntax.ProcSubst:
			substitution = true
		}
		return true
	})
	return len(file.Stmts), substitution, nil
}

func unquote(s string) (string, bool) {
	if len(s) >= 2 {
		if (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
			return s[1 : len(s)-1], true
		}
	}
	return s, false
}

var packageNameRe = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// ValidatePackageName rejects anything that is not a plain Android package
// name. Package names end up inside remote shell commands such as `pm path`.
func ValidatePackageName(name string) error {
	if name == "" {
		return fmt.Errorf("package name cannot be empty")
	}
	if !packageNameRe.MatchString(name) {
		return fmt.Errorf("invalid package name %q", name)
	}
	return nil
}
