// Package cliexec holds the whitelist/denylist logic shared by the
// embedded CLI pane and the hotkey-driven admin actions (§4.8), so both
// paths validate a command line the same way before it ever reaches the
// socket.
package cliexec

import "regexp"

// StatementSep is the separator HAProxy's CLI accepts for batching several
// commands on one input line.
const StatementSep = ";"

// charWhitelist matches one acceptable input rune, grounded on the
// original's CLI_INPUT_RE.
var charWhitelist = regexp.MustCompile(`^[a-zA-Z0-9_:.\-+; /#%]$`)

// denyPatterns are the leading commands the embedded CLI refuses to send,
// each anchored to match only a whole leading word (so "promptly" is
// allowed through while "prompt" and "prompt foo" are rejected) — Open
// Question (b) resolved this way per spec.md §4.8.
var denyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*prompt(\s|$)`),
	regexp.MustCompile(`^\s*set timeout cli(\s|$)`),
	regexp.MustCompile(`^\s*quit(\s|$)`),
}

// AllowedChar reports whether r is an acceptable character for the CLI
// input buffer.
func AllowedChar(r rune) bool {
	return charWhitelist.MatchString(string(r))
}

// AllowedString reports whether every rune of s is acceptable.
func AllowedString(s string) bool {
	for _, r := range s {
		if !AllowedChar(r) {
			return false
		}
	}
	return true
}

// Split breaks a raw command line into its ';'-separated statements,
// trimming surrounding whitespace from each.
func Split(cmdline string) []string {
	var stmts []string
	start := 0
	for i, r := range cmdline {
		if r == ';' {
			stmts = append(stmts, trimSpace(cmdline[start:i]))
			start = i + 1
		}
	}
	stmts = append(stmts, trimSpace(cmdline[start:]))
	return stmts
}

func trimSpace(s string) string {
	i, j := 0, len(s)
	for i < j && isSpace(s[i]) {
		i++
	}
	for j > i && isSpace(s[j-1]) {
		j--
	}
	return s[i:j]
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

// Denied reports whether stmt matches one of the disallowed leading
// commands, and which pattern matched in plain text for the UI's
// rejection message.
func Denied(stmt string) (bool, string) {
	for i, re := range denyPatterns {
		if re.MatchString(stmt) {
			return true, denyLabels[i]
		}
	}
	return false, ""
}

var denyLabels = []string{"prompt", "set timeout cli", "quit"}

// Validate splits cmdline into statements and reports the first denied
// statement, if any.
func Validate(cmdline string) (ok bool, rejected string) {
	for _, stmt := range Split(cmdline) {
		if stmt == "" {
			continue
		}
		if denied, _ := Denied(stmt); denied {
			return false, stmt
		}
	}
	return true, ""
}
