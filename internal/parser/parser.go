// Package parser converts semicolon-delimited SQL chunks into statement
// records.
//
// Recognition is regex-based by design: the corpus format is narrow (CREATE
// [OR REPLACE] VIEW / FUNCTION declarations) and a full SQL parser is
// deliberately out of scope. Chunks that match neither pattern are not
// errors; callers skip them via ErrNotRecognized.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/roomview-sql/roomview/pkg/roomview"
)

// ErrNotRecognized marks a chunk that is not a view or function
// declaration (tables, comment-only chunks, trailing whitespace).
// Callers check with errors.Is and skip the chunk.
var ErrNotRecognized = errors.New("not a view or function declaration")

// viewPattern matches CREATE [OR REPLACE] VIEW declarations. Group 1 is
// the declaration through the AS keyword, group 2 the name, group 3 the
// body. (?is) makes matching case-insensitive and dot-all so multi-line
// headers are accepted; the lazy quantifier stops at the header's AS.
var viewPattern = regexp.MustCompile(
	`(?is)^(create\s+(?:or\s+replace\s+)?view\s+([\w.]+)\b.*?\bas)\s+(.*)$`)

// functionPattern matches CREATE [OR REPLACE] FUNCTION declarations.
// Group 1 is the declaration through the opening $$ delimiter, group 2 the
// name, group 3 the literal parenthesized argument list, group 4 the body
// (including the closing delimiter, which is not re-validated). The arg
// list allows one level of nested parens so type modifiers like
// numeric(10,2) are captured whole.
var functionPattern = regexp.MustCompile(
	`(?is)^(create\s+(?:or\s+replace\s+)?function\s+([\w.]+)\s*(\((?:[^()]|\([^)]*\))*\)).*?\breturns\b.*?\bas\s*\$\$)(.*)$`)

// SplitStatements splits raw file content into candidate chunks on
// semicolons. A semicolon inside a string literal or comment is not
// specially handled; this is a documented limitation of the format.
func SplitStatements(content string) []string {
	return strings.Split(content, ";")
}

// ParseStatement parses one semicolon-delimited chunk into a Statement.
// Returns ErrNotRecognized for blank chunks and for chunks that match
// neither the view nor the function pattern. Pure function of its input.
func ParseStatement(raw string) (*roomview.Statement, error) {
	comments, normalized := splitComments(raw)
	if normalized == "" {
		return nil, ErrNotRecognized
	}

	if m := viewPattern.FindStringSubmatch(normalized); m != nil {
		stmt, err := roomview.NewStatement(m[2], roomview.KindView, m[1], m[3], "", comments)
		if err != nil {
			return nil, fmt.Errorf("parsing view declaration: %w", err)
		}
		return stmt, nil
	}

	if m := functionPattern.FindStringSubmatch(normalized); m != nil {
		stmt, err := roomview.NewStatement(m[2], roomview.KindFunction, m[1], m[4], m[3], comments)
		if err != nil {
			return nil, fmt.Errorf("parsing function declaration: %w", err)
		}
		return stmt, nil
	}

	return nil, ErrNotRecognized
}

// splitComments separates the leading comment block from the statement
// text. Leading contiguous "--" lines are collected in original order and
// joined by spaces; collection stops at the first non-comment line.
// Comment lines elsewhere in the chunk are dropped from the normalized
// statement. Empty lines are dropped; whitespace-only lines are kept as
// statement text.
func splitComments(raw string) (comments, normalized string) {
	var commentParts []string
	var stmtLines []string
	leading := true

	for _, line := range strings.Split(raw, "\n") {
		if line == "" {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "--") {
			if leading {
				commentParts = append(commentParts, strings.TrimSpace(strings.TrimPrefix(trimmed, "--")))
			}
			continue
		}
		if trimmed != "" {
			leading = false
		}
		stmtLines = append(stmtLines, line)
	}

	return strings.Join(commentParts, " "), strings.TrimSpace(strings.Join(stmtLines, "\n"))
}
