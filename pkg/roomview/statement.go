package roomview

import "fmt"

// StatementKind discriminates the two kinds of SQL objects roomview manages.
type StatementKind string

const (
	KindView     StatementKind = "view"
	KindFunction StatementKind = "function"
)

// IsValid returns true if the kind is one of the defined values.
func (k StatementKind) IsValid() bool {
	return k == KindView || k == KindFunction
}

// Statement is one parsed CREATE VIEW or CREATE FUNCTION declaration.
// A Statement is immutable once constructed.
type Statement struct {
	// Name is the object identifier, unique across the whole corpus.
	Name string

	// Kind discriminates view vs. function.
	Kind StatementKind

	// Declaration is the verbatim header text up to and including the AS
	// keyword (and, for functions, the opening $$ body delimiter).
	Declaration string

	// Body is the verbatim text following the declaration. This is the
	// substrate scanned for dependency references.
	Body string

	// ArgList is the literal parenthesized argument-type list, e.g.
	// "(a int, b text)". Set only for functions; the warehouse has no
	// DROP FUNCTION IF EXISTS, so drops must name the exact signature.
	ArgList string

	// Comments is the concatenation of the contiguous "--" comment lines
	// immediately preceding the declaration, used in list reports.
	Comments string
}

// NewStatement constructs a Statement, validating required-by-kind fields.
func NewStatement(name string, kind StatementKind, declaration, body, argList, comments string) (*Statement, error) {
	if name == "" {
		return nil, fmt.Errorf("statement name is required: %w", ErrInvalidStatement)
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown statement kind %q: %w", kind, ErrInvalidStatement)
	}
	if declaration == "" {
		return nil, fmt.Errorf("statement %q has an empty declaration: %w", name, ErrInvalidStatement)
	}
	if kind == KindFunction && argList == "" {
		return nil, fmt.Errorf("function %q requires an argument list: %w", name, ErrInvalidStatement)
	}
	if kind == KindView && argList != "" {
		return nil, fmt.Errorf("view %q cannot carry an argument list: %w", name, ErrInvalidStatement)
	}
	return &Statement{
		Name:        name,
		Kind:        kind,
		Declaration: declaration,
		Body:        body,
		ArgList:     argList,
		Comments:    comments,
	}, nil
}

// CreateSQL returns the executable CREATE statement: the verbatim
// declaration and body joined back into one statement.
func (s *Statement) CreateSQL() string {
	return s.Declaration + " " + s.Body
}

// SourceFile is one .sql file handed to the graph builder: a path for
// error reporting and the raw text content.
type SourceFile struct {
	Path    string
	Content string
}
