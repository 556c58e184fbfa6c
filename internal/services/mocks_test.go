package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/roomview-sql/roomview/pkg/roomview"
)

// scriptedExecutor records every statement it is asked to run and answers
// function catalog probes from a configured name set.
type scriptedExecutor struct {
	statements []string
	probes     []string

	// functions lists the function names the catalog probe reports as
	// existing.
	functions map[string]bool

	// failOn makes Exec fail for any statement containing the substring.
	failOn string
}

func (e *scriptedExecutor) Exec(_ context.Context, sql string) error {
	if e.failOn != "" && strings.Contains(sql, e.failOn) {
		return fmt.Errorf("ERROR: relation does not exist")
	}
	e.statements = append(e.statements, sql)
	return nil
}

func (e *scriptedExecutor) QueryRow(_ context.Context, _ string, args ...any) roomview.Row {
	name, _ := args[0].(string)
	e.probes = append(e.probes, name)
	if e.functions[name] {
		return scriptedRow{value: name}
	}
	return scriptedRow{err: pgx.ErrNoRows}
}

type scriptedRow struct {
	value string
	err   error
}

func (r scriptedRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) > 0 {
		if p, ok := dest[0].(*string); ok {
			*p = r.value
		}
	}
	return nil
}

// recordingApprover answers every request with a fixed verdict and keeps
// the descriptions it was asked about.
type recordingApprover struct {
	approve  bool
	requests []string
}

func (a *recordingApprover) RequestApproval(_ context.Context, description string) (bool, error) {
	a.requests = append(a.requests, description)
	return a.approve, nil
}

var (
	_ roomview.Executor = (*scriptedExecutor)(nil)
	_ roomview.Approver = (*recordingApprover)(nil)
)
