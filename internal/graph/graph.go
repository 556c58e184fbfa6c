// Package graph builds and traverses the statement dependency graph.
//
// Dependencies are inferred by lexical reference scanning: statement A
// depends on statement B when B's name appears anywhere in A's body text.
// This is a substring test, not a tokenizer — a name occurring inside a
// string literal, a comment, or a longer identifier still counts as a
// dependency. Deployed view sets rely on exactly this heuristic, so it is
// reproduced rather than improved.
package graph

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/roomview-sql/roomview/internal/parser"
	"github.com/roomview-sql/roomview/pkg/roomview"
)

// Node wraps one statement with its dependency edge sets.
// Edges are always maintained in symmetric pairs: B ∈ A.OutEdges iff
// A ∈ B.InEdges for every node in the same graph instance.
type Node struct {
	Statement *roomview.Statement

	// OutEdges holds the names this statement's body references
	// (objects it depends on).
	OutEdges map[string]struct{}

	// InEdges holds the names whose bodies reference this statement
	// (objects that depend on it).
	InEdges map[string]struct{}
}

func newNode(stmt *roomview.Statement) *Node {
	return &Node{
		Statement: stmt,
		OutEdges:  make(map[string]struct{}),
		InEdges:   make(map[string]struct{}),
	}
}

// Graph is the full dependency graph for one command invocation. It is
// built once from a closed corpus of parsed files and never mutated
// afterwards except by Subgraph, which copies.
type Graph struct {
	nodes map[string]*Node
}

// Build parses every ;-chunk of every source file, discards unrecognized
// chunks, and wires dependency edges between the recognized statements.
// A duplicate statement name across the corpus is an error.
func Build(files []roomview.SourceFile) (*Graph, error) {
	g := &Graph{nodes: make(map[string]*Node)}

	for _, file := range files {
		for _, chunk := range parser.SplitStatements(file.Content) {
			stmt, err := parser.ParseStatement(chunk)
			if err != nil {
				if errors.Is(err, parser.ErrNotRecognized) {
					continue
				}
				return nil, fmt.Errorf("%s: %w", file.Path, err)
			}
			if _, exists := g.nodes[stmt.Name]; exists {
				return nil, fmt.Errorf("statement %q redeclared in %s: %w",
					stmt.Name, file.Path, roomview.ErrDuplicateStatement)
			}
			g.nodes[stmt.Name] = newNode(stmt)
		}
	}

	g.wireEdges()
	return g, nil
}

// wireEdges records an edge N -> M (and its symmetric reverse) whenever
// M's exact name appears in N's body and M != N.
func (g *Graph) wireEdges() {
	for name, node := range g.nodes {
		for other := range g.nodes {
			if other == name {
				continue
			}
			if strings.Contains(node.Statement.Body, other) {
				g.addEdge(name, other)
			}
		}
	}
}

// addEdge records "from depends on to", keeping the edge sets symmetric.
func (g *Graph) addEdge(from, to string) {
	g.nodes[from].OutEdges[to] = struct{}{}
	g.nodes[to].InEdges[from] = struct{}{}
}

// Node returns the node for name, or nil when absent.
func (g *Graph) Node(name string) *Node {
	return g.nodes[name]
}

// Len returns the number of statements in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Names returns every statement name, sorted for deterministic output.
func (g *Graph) Names() []string {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Leaves returns the names of all nodes with no outgoing dependency
// edges, sorted. These are the safe starting points for dependency-ordered
// traversal.
func (g *Graph) Leaves() []string {
	var leaves []string
	for name, node := range g.nodes {
		if len(node.OutEdges) == 0 {
			leaves = append(leaves, name)
		}
	}
	sort.Strings(leaves)
	return leaves
}

// Subgraph returns an edge-consistent copy restricted to the given name
// set. Edges referencing names outside the set are pruned from both edge
// sets so the invariants of the full graph hold for the restriction.
func (g *Graph) Subgraph(names map[string]struct{}) *Graph {
	sub := &Graph{nodes: make(map[string]*Node, len(names))}

	for name := range names {
		node, ok := g.nodes[name]
		if !ok {
			continue
		}
		copied := newNode(node.Statement)
		for dep := range node.OutEdges {
			if _, kept := names[dep]; kept {
				copied.OutEdges[dep] = struct{}{}
			}
		}
		for dependent := range node.InEdges {
			if _, kept := names[dependent]; kept {
				copied.InEdges[dependent] = struct{}{}
			}
		}
		sub.nodes[name] = copied
	}

	return sub
}
