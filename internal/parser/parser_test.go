package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomview-sql/roomview/pkg/roomview"
)

func TestParseStatement_View(t *testing.T) {
	stmt, err := ParseStatement(`CREATE VIEW active_users AS
SELECT * FROM users WHERE active`)
	require.NoError(t, err)

	assert.Equal(t, "active_users", stmt.Name)
	assert.Equal(t, roomview.KindView, stmt.Kind)
	assert.Equal(t, "CREATE VIEW active_users AS", stmt.Declaration)
	assert.Equal(t, "SELECT * FROM users WHERE active", stmt.Body)
	assert.Empty(t, stmt.ArgList)
	assert.Empty(t, stmt.Comments)
}

func TestParseStatement_ViewOrReplace(t *testing.T) {
	stmt, err := ParseStatement("create or replace view v1 as select 1")
	require.NoError(t, err)

	assert.Equal(t, "v1", stmt.Name)
	assert.Equal(t, roomview.KindView, stmt.Kind)
	assert.Equal(t, "select 1", stmt.Body)
}

func TestParseStatement_ViewMultiLineHeader(t *testing.T) {
	stmt, err := ParseStatement(`CREATE OR REPLACE
VIEW report.daily_totals
AS
SELECT day, sum(amount) FROM sales GROUP BY day`)
	require.NoError(t, err)

	assert.Equal(t, "report.daily_totals", stmt.Name)
	assert.Contains(t, stmt.Declaration, "AS")
	assert.Equal(t, "SELECT day, sum(amount) FROM sales GROUP BY day", stmt.Body)
}

func TestParseStatement_Function(t *testing.T) {
	stmt, err := ParseStatement(`CREATE OR REPLACE FUNCTION add_tax (amount float, rate float)
RETURNS float
IMMUTABLE
AS $$
  select amount * (1 + rate)
$$ language sql`)
	require.NoError(t, err)

	assert.Equal(t, "add_tax", stmt.Name)
	assert.Equal(t, roomview.KindFunction, stmt.Kind)
	assert.Equal(t, "(amount float, rate float)", stmt.ArgList)
	assert.Contains(t, stmt.Declaration, "AS $$")
	assert.Contains(t, stmt.Body, "select amount * (1 + rate)")
	assert.Contains(t, stmt.Body, "$$ language sql")
}

func TestParseStatement_FunctionTypeModifierArgs(t *testing.T) {
	stmt, err := ParseStatement(`create function fn_round (amount numeric(10,2), mode varchar(8))
returns numeric
as $$ select round(amount) $$ language sql`)
	require.NoError(t, err)

	assert.Equal(t, "fn_round", stmt.Name)
	assert.Equal(t, "(amount numeric(10,2), mode varchar(8))", stmt.ArgList)
	assert.Contains(t, stmt.Declaration, "as $$")
}

func TestParseStatement_FunctionEmptyArgs(t *testing.T) {
	stmt, err := ParseStatement("create function now_utc() returns timestamp as $$ select getdate() $$ language sql")
	require.NoError(t, err)

	assert.Equal(t, "now_utc", stmt.Name)
	assert.Equal(t, "()", stmt.ArgList)
}

func TestParseStatement_LeadingComments(t *testing.T) {
	stmt, err := ParseStatement(`-- Daily revenue rollup.
-- Refreshed by the nightly sync.
CREATE VIEW daily_revenue AS select 1`)
	require.NoError(t, err)

	assert.Equal(t, "Daily revenue rollup. Refreshed by the nightly sync.", stmt.Comments)
	assert.Equal(t, "daily_revenue", stmt.Name)
}

func TestParseStatement_CommentsAfterHeaderNotCollected(t *testing.T) {
	stmt, err := ParseStatement(`-- leading
CREATE VIEW v2 AS
-- inline note
select 2`)
	require.NoError(t, err)

	assert.Equal(t, "leading", stmt.Comments)
	assert.NotContains(t, stmt.Body, "inline note")
}

func TestParseStatement_WhitespaceOnlyLinesKeptInBody(t *testing.T) {
	stmt, err := ParseStatement("CREATE VIEW padded AS\nselect a\n   \nfrom t")
	require.NoError(t, err)

	assert.Equal(t, "select a\n   \nfrom t", stmt.Body)
}

func TestParseStatement_CommentsSpanWhitespaceOnlyLines(t *testing.T) {
	stmt, err := ParseStatement("-- first\n   \n-- second\nCREATE VIEW v3 AS select 3")
	require.NoError(t, err)

	assert.Equal(t, "first second", stmt.Comments)
	assert.Equal(t, "CREATE VIEW v3 AS select 3", stmt.Declaration+" "+stmt.Body)
}

func TestParseStatement_NotRecognized(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "  \n\t  "},
		{"comment only", "-- just a comment\n-- and another"},
		{"create table", "CREATE TABLE users (id int)"},
		{"insert", "INSERT INTO t VALUES (1)"},
		{"function without returns", "create function f(x int) as $$ select 1 $$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStatement(tt.raw)
			assert.ErrorIs(t, err, ErrNotRecognized)
		})
	}
}

func TestParseStatement_Idempotent(t *testing.T) {
	raw := `-- doc
CREATE VIEW v AS select * from base`

	first, err := ParseStatement(raw)
	require.NoError(t, err)
	second, err := ParseStatement(raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSplitStatements(t *testing.T) {
	chunks := SplitStatements("create view a as select 1;\ncreate view b as select 2;\n")
	require.Len(t, chunks, 3)
	assert.Contains(t, chunks[0], "view a")
	assert.Contains(t, chunks[1], "view b")

	_, err := ParseStatement(chunks[2])
	assert.ErrorIs(t, err, ErrNotRecognized)
}
