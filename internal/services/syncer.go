// Package services implements the sync/drop orchestrator that composes
// the parser, the dependency graph, and the SQL executor into the
// operations the CLI exposes.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/roomview-sql/roomview/internal/files/scanner"
	"github.com/roomview-sql/roomview/internal/graph"
	"github.com/roomview-sql/roomview/internal/parser"
	"github.com/roomview-sql/roomview/pkg/roomview"
)

// functionProbe checks the catalog for a function by name. The warehouse
// has no DROP FUNCTION IF EXISTS, so a drop must be skipped when the
// function does not exist.
const functionProbe = "select proname from pg_proc where proname = $1"

// SyncService orchestrates drop and recreate operations over the
// statement dependency graph. It holds no connection state; all side
// effects go through the injected executor.
//
// Thread-Safety: NOT safe for concurrent calls on the same instance.
type SyncService struct {
	executor roomview.Executor
	approver roomview.Approver
	logger   roomview.Logger
	scanner  *scanner.Scanner
}

// NewSyncService creates a SyncService with all dependencies injected.
// Nil dependencies are programmer errors and panic at construction time
// rather than surfacing as nil dereferences mid-operation.
func NewSyncService(
	executor roomview.Executor,
	approver roomview.Approver,
	logger roomview.Logger,
	fileScanner *scanner.Scanner,
) *SyncService {
	if executor == nil {
		panic("executor cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if fileScanner == nil {
		panic("fileScanner cannot be nil")
	}

	return &SyncService{
		executor: executor,
		approver: approver,
		logger:   logger,
		scanner:  fileScanner,
	}
}

// ListAll writes a report of every known statement to out, sorted by
// name, with its kind, description, and dependency edges.
func (s *SyncService) ListAll(g *graph.Graph, out io.Writer) error {
	return WriteReport(g, out)
}

// WriteReport renders the statement report. It needs no executor, so the
// list command can run without a warehouse connection.
func WriteReport(g *graph.Graph, out io.Writer) error {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Name", "Kind", "Depends On", "Depended On By", "Description"})

	for _, name := range g.Names() {
		node := g.Node(name)
		t.AppendRow(table.Row{
			name,
			string(node.Statement.Kind),
			strings.Join(sortedSet(node.OutEdges), ", "),
			strings.Join(sortedSet(node.InEdges), ", "),
			node.Statement.Comments,
		})
	}

	t.Render()
	return nil
}

// DropAll drops every known statement after confirmation. Order is
// irrelevant: the cascading drop removes dependents transitively, and
// every target is either existing or harmlessly absent.
func (s *SyncService) DropAll(ctx context.Context, g *graph.Graph) error {
	if err := s.requestApproval(ctx, fmt.Sprintf("drop all %d managed statements", g.Len())); err != nil {
		return err
	}

	for _, name := range g.Names() {
		if err := s.dropStatement(ctx, g.Node(name)); err != nil {
			return err
		}
	}

	s.logger.Info("Dropped %d statements", g.Len())
	return nil
}

// Drop drops exactly the selected statements. Dependents are removed by
// the warehouse's cascade, not recreated.
func (s *SyncService) Drop(ctx context.Context, g *graph.Graph, names, filePaths []string) error {
	selected, err := s.resolveSelection(g, names, filePaths)
	if err != nil {
		return err
	}

	for _, name := range selected {
		if err := s.dropStatement(ctx, g.Node(name)); err != nil {
			return err
		}
	}

	s.logger.Info("Dropped %d statements", len(selected))
	return nil
}

// SyncAll drops and recreates every statement in dependency order,
// starting from the leaves so each statement's dependencies exist before
// it is created.
func (s *SyncService) SyncAll(ctx context.Context, g *graph.Graph) error {
	if err := s.requestApproval(ctx, fmt.Sprintf("drop and recreate all %d managed statements", g.Len())); err != nil {
		return err
	}

	visited, err := g.Traverse(g.Leaves(), func(node *graph.Node) error {
		if err := s.dropStatement(ctx, node); err != nil {
			return err
		}
		return s.createStatement(ctx, node)
	}, true)
	if err != nil {
		return err
	}

	if unvisited := g.Unvisited(visited); len(unvisited) > 0 {
		return fmt.Errorf("statements %s never became ready: %w",
			strings.Join(unvisited, ", "), roomview.ErrCycleDetected)
	}

	s.logger.Info("Recreated %d statements", len(visited))
	return nil
}

// Sync drops the selected statements and recreates them together with
// everything the cascading drop collaterally destroyed, in dependency
// order.
func (s *SyncService) Sync(ctx context.Context, g *graph.Graph, names, filePaths []string) error {
	selected, err := s.resolveSelection(g, names, filePaths)
	if err != nil {
		return err
	}

	// Everything transitively dependent on the selection goes down with
	// the cascade and must come back up.
	affected, err := g.Traverse(selected, nil, false)
	if err != nil {
		return err
	}
	sub := g.Subgraph(affected)

	s.logger.Verbose("Selection of %d statements affects %d statements", len(selected), sub.Len())

	// Dropping only the selected nodes suffices; the cascade removes the
	// rest of the affected set.
	for _, name := range selected {
		if err := s.dropStatement(ctx, g.Node(name)); err != nil {
			return err
		}
	}

	visited, err := sub.Traverse(sub.Leaves(), func(node *graph.Node) error {
		return s.createStatement(ctx, node)
	}, true)
	if err != nil {
		return err
	}

	if unvisited := sub.Unvisited(visited); len(unvisited) > 0 {
		return fmt.Errorf("statements %s never became ready: %w",
			strings.Join(unvisited, ", "), roomview.ErrCycleDetected)
	}

	s.logger.Info("Recreated %d statements", len(visited))
	return nil
}

func (s *SyncService) requestApproval(ctx context.Context, description string) error {
	approved, err := s.approver.RequestApproval(ctx, description)
	if err != nil {
		return fmt.Errorf("approval failed: %w", err)
	}
	if !approved {
		return roomview.ErrApprovalDenied
	}
	return nil
}

// resolveSelection turns names and file paths into a deduplicated list
// of statement names, validated against the graph before any SQL runs.
// File paths resolve to the statement names the files declare.
func (s *SyncService) resolveSelection(g *graph.Graph, names, filePaths []string) ([]string, error) {
	if len(names) == 0 && len(filePaths) == 0 {
		return nil, roomview.ErrMissingSelector
	}

	selected := append([]string(nil), names...)

	for _, path := range filePaths {
		declared, err := s.declaredNames(path)
		if err != nil {
			return nil, err
		}
		selected = append(selected, declared...)
	}

	seen := make(map[string]struct{}, len(selected))
	unique := selected[:0]
	for _, name := range selected {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		if g.Node(name) == nil {
			return nil, fmt.Errorf("%q: %w", name, roomview.ErrUnknownStatement)
		}
		unique = append(unique, name)
	}

	return unique, nil
}

// declaredNames parses one source file and returns the statement names
// it declares, in declaration order.
func (s *SyncService) declaredNames(path string) ([]string, error) {
	source, err := s.scanner.ReadSource(path)
	if err != nil {
		return nil, err
	}

	var declared []string
	for _, chunk := range parser.SplitStatements(source.Content) {
		stmt, err := parser.ParseStatement(chunk)
		if err != nil {
			if errors.Is(err, parser.ErrNotRecognized) {
				continue
			}
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		declared = append(declared, stmt.Name)
	}

	if len(declared) == 0 {
		return nil, fmt.Errorf("%s declares no view or function statements: %w", path, roomview.ErrUnknownStatement)
	}
	return declared, nil
}

// dropStatement issues the kind-appropriate drop. Views support IF
// EXISTS; functions need a catalog probe first, and an absent function is
// skipped rather than failed.
func (s *SyncService) dropStatement(ctx context.Context, node *graph.Node) error {
	stmt := node.Statement

	switch stmt.Kind {
	case roomview.KindView:
		sql := fmt.Sprintf("DROP VIEW IF EXISTS %s CASCADE", stmt.Name)
		s.logger.Verbose("Executing: %s", sql)
		if err := s.executor.Exec(ctx, sql); err != nil {
			return fmt.Errorf("dropping view %q: %w: %w", stmt.Name, roomview.ErrExecutionFailed, err)
		}

	case roomview.KindFunction:
		var proname string
		err := s.executor.QueryRow(ctx, functionProbe, stmt.Name).Scan(&proname)
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Verbose("Function %s does not exist, skipping drop", stmt.Name)
			return nil
		}
		if err != nil {
			return fmt.Errorf("probing function %q: %w: %w", stmt.Name, roomview.ErrExecutionFailed, err)
		}

		sql := fmt.Sprintf("DROP FUNCTION %s %s CASCADE", stmt.Name, stmt.ArgList)
		s.logger.Verbose("Executing: %s", sql)
		if err := s.executor.Exec(ctx, sql); err != nil {
			return fmt.Errorf("dropping function %q: %w: %w", stmt.Name, roomview.ErrExecutionFailed, err)
		}

	default:
		return fmt.Errorf("statement %q has unknown kind %q: %w", stmt.Name, stmt.Kind, roomview.ErrInvalidStatement)
	}

	s.logger.Info("Dropped %s %s", stmt.Kind, stmt.Name)
	return nil
}

// createStatement issues the statement's verbatim declaration and body as
// one executable statement.
func (s *SyncService) createStatement(ctx context.Context, node *graph.Node) error {
	stmt := node.Statement

	s.logger.Verbose("Creating %s %s", stmt.Kind, stmt.Name)
	if err := s.executor.Exec(ctx, stmt.CreateSQL()); err != nil {
		return fmt.Errorf("creating %s %q: %w: %w", stmt.Kind, stmt.Name, roomview.ErrExecutionFailed, err)
	}

	s.logger.Info("Created %s %s", stmt.Kind, stmt.Name)
	return nil
}

func sortedSet(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
