package planledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"HTXErp/internal/config"
	"HTXErp/internal/store"
	"HTXErp/internal/subjects"
)

// Planner is the manual budget-entry path. It is the sole writer of
// plan_amount and never touches real_amount; the two writers meet only in
// the merge-upsert of the matrix table.
type Planner struct {
	store store.Store
}

func NewPlanner(st store.Store) *Planner {
	return &Planner{store: st}
}

// SavePlan validates and upserts plan amounts. Months are normalized to
// month-start keys; cells are created lazily on first write.
func (p *Planner) SavePlan(ctx context.Context, entries []PlanEntry) error {
	rows := make([]store.Row, 0, len(entries))
	for _, e := range entries {
		if e.ProjectCode == "" {
			return &MissingFieldError{Field: "project_code"}
		}
		if _, err := subjects.Resolve(e.SubjectCode); err != nil {
			return err
		}
		m, err := time.Parse(config.DateFormat, e.YearMonth)
		if err != nil {
			return fmt.Errorf("invalid year_month %q for project %s", e.YearMonth, e.ProjectCode)
		}
		rows = append(rows, store.Row{
			"project_code": e.ProjectCode,
			"year_month":   MonthKey(m),
			"cost_item":    e.SubjectCode,
			"plan_amount":  e.PlanAmount,
		})
	}
	if err := p.store.Upsert(ctx, "project_matrix", rows, []string{"project_code", "year_month", "cost_item"}); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

// MatrixView is the budget matrix of one project: the persisted month axis
// plus every cell, including cells whose bucket fell outside the nominal
// 36-month window (those are appended after the axis, never dropped).
type MatrixView struct {
	ProjectCode string   `json:"project_code"`
	Months      []string `json:"months"`
	Cells       []Cell   `json:"cells"`
}

// Matrix loads the full Plan/Real matrix of a project.
func (p *Planner) Matrix(ctx context.Context, projectCode string) (*MatrixView, error) {
	months, err := MonthAxis(ctx, p.store, projectCode)
	if err != nil {
		return nil, err
	}

	rows, err := p.store.Get(ctx, "project_matrix", store.Filter{"project_code": projectCode})
	if err != nil {
		return nil, fmt.Errorf("load matrix for %s: %w", projectCode, err)
	}

	onAxis := make(map[string]bool, len(months))
	for _, m := range months {
		onAxis[m] = true
	}

	cells := make([]Cell, 0, len(rows))
	extra := make(map[string]bool)
	for _, r := range rows {
		c := Cell{
			ProjectCode: projectCode,
			YearMonth:   store.String(r, "year_month"),
			SubjectCode: store.String(r, "cost_item"),
			PlanAmount:  store.Decimal(r, "plan_amount"),
			RealAmount:  store.Decimal(r, "real_amount"),
		}
		cells = append(cells, c)
		if !onAxis[c.YearMonth] {
			extra[c.YearMonth] = true
		}
	}

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].YearMonth != cells[j].YearMonth {
			return cells[i].YearMonth < cells[j].YearMonth
		}
		return cells[i].SubjectCode < cells[j].SubjectCode
	})

	extraMonths := make([]string, 0, len(extra))
	for m := range extra {
		extraMonths = append(extraMonths, m)
	}
	sort.Strings(extraMonths)

	return &MatrixView{
		ProjectCode: projectCode,
		Months:      append(months, extraMonths...),
		Cells:       cells,
	}, nil
}
