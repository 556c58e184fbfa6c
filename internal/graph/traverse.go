package graph

import (
	"fmt"
	"sort"

	"github.com/roomview-sql/roomview/pkg/roomview"
)

// VisitFunc is invoked exactly once per visited node, in visitation
// order. Drop/create SQL is issued from here; a returned error aborts the
// traversal immediately.
type VisitFunc func(*Node) error

// Traverse walks the graph breadth-first from the start names, following
// InEdges (moving from a statement to the statements that depend on it),
// and returns the set of visited names.
//
// With dependencyOrder false it computes pure reachability: every node
// transitively dependent on the start set is visited, in no particular
// order. With dependencyOrder true a neighbor is enqueued only once all of
// its own dependencies have been visited — Kahn's readiness test applied
// lazily at enqueue time — so visit sees each node strictly after
// everything in its OutEdges. On cyclic input, dependency order leaves the
// cycle members unvisited; callers detect that with the returned set.
//
// Start names absent from the graph are an error. Duplicate enqueues are
// harmless; the visited check makes the walk idempotent.
func (g *Graph) Traverse(start []string, visit VisitFunc, dependencyOrder bool) (map[string]struct{}, error) {
	queue := make([]string, 0, len(start))
	for _, name := range start {
		if g.nodes[name] == nil {
			return nil, fmt.Errorf("%q: %w", name, roomview.ErrUnknownStatement)
		}
		queue = append(queue, name)
	}

	visited := make(map[string]struct{})
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		if _, seen := visited[name]; seen {
			continue
		}
		visited[name] = struct{}{}

		node := g.nodes[name]
		if visit != nil {
			if err := visit(node); err != nil {
				return visited, err
			}
		}

		for _, dependent := range sortedNames(node.InEdges) {
			if dependencyOrder && !g.ready(dependent, visited) {
				continue
			}
			queue = append(queue, dependent)
		}
	}

	return visited, nil
}

// ready reports whether every dependency of name has been visited.
func (g *Graph) ready(name string, visited map[string]struct{}) bool {
	for dep := range g.nodes[name].OutEdges {
		if _, seen := visited[dep]; !seen {
			return false
		}
	}
	return true
}

// Unvisited returns the graph's names missing from the visited set,
// sorted. A non-empty result after a dependency-ordered traversal over the
// whole graph means the references form a cycle.
func (g *Graph) Unvisited(visited map[string]struct{}) []string {
	var missing []string
	for name := range g.nodes {
		if _, seen := visited[name]; !seen {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// sortedNames renders a name set as a sorted slice so traversal order is
// deterministic for fixed input.
func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
