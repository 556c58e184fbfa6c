package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomview-sql/roomview/pkg/roomview"
)

// chainFiles defines the canonical three-statement chain: vw_alpha depends
// on nothing, vw_bravo references vw_alpha, vw_charlie references vw_bravo.
func chainFiles() []roomview.SourceFile {
	return []roomview.SourceFile{
		{Path: "views/vw_alpha.sql", Content: "create view vw_alpha as select id from src_accounts;"},
		{Path: "views/vw_bravo.sql", Content: "create view vw_bravo as select id from vw_alpha;"},
		{Path: "views/vw_charlie.sql", Content: "create view vw_charlie as select id from vw_bravo where id > 0;"},
	}
}

func buildChain(t *testing.T) *Graph {
	t.Helper()
	g, err := Build(chainFiles())
	require.NoError(t, err)
	require.Equal(t, 3, g.Len())
	return g
}

func TestBuild_EdgeDirection(t *testing.T) {
	g := buildChain(t)

	assert.Contains(t, g.Node("vw_bravo").OutEdges, "vw_alpha")
	assert.Contains(t, g.Node("vw_charlie").OutEdges, "vw_bravo")
	assert.Empty(t, g.Node("vw_alpha").OutEdges)

	assert.Contains(t, g.Node("vw_alpha").InEdges, "vw_bravo")
	assert.Contains(t, g.Node("vw_bravo").InEdges, "vw_charlie")
	assert.Empty(t, g.Node("vw_charlie").InEdges)
}

func TestBuild_EdgeSymmetry(t *testing.T) {
	g := buildChain(t)

	for _, name := range g.Names() {
		node := g.Node(name)
		for dep := range node.OutEdges {
			assert.Contains(t, g.Node(dep).InEdges, name,
				"out-edge %s -> %s missing reverse in-edge", name, dep)
		}
		for dependent := range node.InEdges {
			assert.Contains(t, g.Node(dependent).OutEdges, name,
				"in-edge %s <- %s missing forward out-edge", name, dependent)
		}
	}
}

func TestBuild_NoSelfEdges(t *testing.T) {
	// The body of v mentions its own name; the builder must not record a
	// self dependency.
	g, err := Build([]roomview.SourceFile{
		{Path: "v.sql", Content: "create view v as select 'v' from base;"},
	})
	require.NoError(t, err)

	assert.NotContains(t, g.Node("v").OutEdges, "v")
	assert.NotContains(t, g.Node("v").InEdges, "v")
}

func TestBuild_LexicalMatchInsideStringCounts(t *testing.T) {
	// The reference scan is a substring test by design: a name inside a
	// string literal is still an edge.
	g, err := Build([]roomview.SourceFile{
		{Path: "one.sql", Content: "create view targets as select 1;"},
		{Path: "two.sql", Content: "create view audit as select 'targets' as label;"},
	})
	require.NoError(t, err)

	assert.Contains(t, g.Node("audit").OutEdges, "targets")
}

func TestBuild_SkipsUnrecognizedChunks(t *testing.T) {
	g, err := Build([]roomview.SourceFile{
		{Path: "mixed.sql", Content: `-- setup
create table raw_events (id int);
create view events as select * from raw_events;
`},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, g.Len())
	assert.NotNil(t, g.Node("events"))
}

func TestBuild_DuplicateNameFails(t *testing.T) {
	_, err := Build([]roomview.SourceFile{
		{Path: "a.sql", Content: "create view dup as select 1;"},
		{Path: "b.sql", Content: "create view dup as select 2;"},
	})
	assert.ErrorIs(t, err, roomview.ErrDuplicateStatement)
	assert.ErrorContains(t, err, "dup")
}

func TestLeaves(t *testing.T) {
	g := buildChain(t)
	assert.Equal(t, []string{"vw_alpha"}, g.Leaves())
}

func TestSubgraph_PrunesEdgesOutsideSet(t *testing.T) {
	g := buildChain(t)

	sub := g.Subgraph(map[string]struct{}{"vw_bravo": {}, "vw_charlie": {}})
	require.Equal(t, 2, sub.Len())
	assert.Nil(t, sub.Node("vw_alpha"))

	// vw_bravo's dependency on vw_alpha is outside the set and must be
	// pruned; vw_charlie's dependency on vw_bravo survives with its
	// reverse edge.
	assert.Empty(t, sub.Node("vw_bravo").OutEdges)
	assert.Contains(t, sub.Node("vw_charlie").OutEdges, "vw_bravo")
	assert.Contains(t, sub.Node("vw_bravo").InEdges, "vw_charlie")

	// Restriction leaves vw_bravo as the subgraph's leaf.
	assert.Equal(t, []string{"vw_bravo"}, sub.Leaves())
}

func TestSubgraph_EdgeConsistency(t *testing.T) {
	g := buildChain(t)
	sub := g.Subgraph(map[string]struct{}{"vw_alpha": {}, "vw_charlie": {}})

	for _, name := range sub.Names() {
		node := sub.Node(name)
		for dep := range node.OutEdges {
			assert.NotNil(t, sub.Node(dep), "dangling out-edge %s -> %s", name, dep)
		}
		for dependent := range node.InEdges {
			assert.NotNil(t, sub.Node(dependent), "dangling in-edge %s <- %s", name, dependent)
		}
	}
}
