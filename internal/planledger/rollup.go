package planledger

import (
	"context"
	"fmt"

	"HTXErp/internal/store"
	"HTXErp/internal/subjects"

	"github.com/shopspring/decimal"
)

// Rollup aggregates a project's matrix cells into the figures the dashboard
// renders. Order-group cells are reported but excluded from margin math.
type Rollup struct {
	ProjectCode string `json:"project_code"`
	ProjectName string `json:"project_name,omitempty"`
	Customer    string `json:"customer,omitempty"`

	PlanRevenue decimal.Decimal `json:"plan_revenue"`
	PlanCost    decimal.Decimal `json:"plan_cost"`
	RealRevenue decimal.Decimal `json:"real_revenue"`
	RealCost    decimal.Decimal `json:"real_cost"`
	OrderPlan   decimal.Decimal `json:"order_plan"`
	OrderReal   decimal.Decimal `json:"order_real"`

	PlanMargin    decimal.Decimal `json:"plan_margin"`
	RealMargin    decimal.Decimal `json:"real_margin"`
	PlanMarginPct decimal.Decimal `json:"plan_margin_pct"`
	RealMarginPct decimal.Decimal `json:"real_margin_pct"`
	AttainmentPct decimal.Decimal `json:"attainment_pct"`
}

// RollupEngine aggregates ledger cells into project and company summaries.
type RollupEngine struct {
	store store.Store
}

func NewRollupEngine(st store.Store) *RollupEngine {
	return &RollupEngine{store: st}
}

var hundred = decimal.NewFromInt(100)

// pct returns n/d*100, defined as 0 when d is zero. Zero division is policy
// here, not an error: an unplanned project simply has no attainment yet.
func pct(n, d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	return n.Div(d).Mul(hundred)
}

// ProjectRollup sums a project's cells by subject group and derives the
// margin and attainment figures.
func (e *RollupEngine) ProjectRollup(ctx context.Context, projectCode string) (*Rollup, error) {
	cells, err := e.store.Get(ctx, "project_matrix", store.Filter{"project_code": projectCode})
	if err != nil {
		return nil, fmt.Errorf("rollup %s: %w", projectCode, err)
	}

	r := &Rollup{ProjectCode: projectCode}
	for _, cell := range cells {
		group, err := subjects.GroupOf(store.String(cell, "cost_item"))
		if err != nil {
			return nil, fmt.Errorf("rollup %s: %w", projectCode, err)
		}
		plan := store.Decimal(cell, "plan_amount")
		real := store.Decimal(cell, "real_amount")
		switch group {
		case subjects.GroupRevenue:
			r.PlanRevenue = r.PlanRevenue.Add(plan)
			r.RealRevenue = r.RealRevenue.Add(real)
		case subjects.GroupVariableCost:
			r.PlanCost = r.PlanCost.Add(plan)
			r.RealCost = r.RealCost.Add(real)
		case subjects.GroupOrder:
			r.OrderPlan = r.OrderPlan.Add(plan)
			r.OrderReal = r.OrderReal.Add(real)
		}
	}

	r.derive()
	return r, nil
}

// CompanyRollup sums all per-project rollups element-wise, so the company
// line always matches the displayed project figures by construction. It
// returns the company total and the per-project rollups it was built from.
func (e *RollupEngine) CompanyRollup(ctx context.Context) (*Rollup, []*Rollup, error) {
	projects, err := e.store.Get(ctx, "projects", nil)
	if err != nil {
		return nil, nil, fmt.Errorf("company rollup: %w", err)
	}

	company := &Rollup{ProjectCode: "ALL"}
	perProject := make([]*Rollup, 0, len(projects))
	for _, p := range projects {
		code := store.String(p, "project_code")
		r, err := e.ProjectRollup(ctx, code)
		if err != nil {
			return nil, nil, err
		}
		r.ProjectName = store.String(p, "project_name")
		r.Customer = store.String(p, "cust_id")
		perProject = append(perProject, r)

		company.PlanRevenue = company.PlanRevenue.Add(r.PlanRevenue)
		company.PlanCost = company.PlanCost.Add(r.PlanCost)
		company.RealRevenue = company.RealRevenue.Add(r.RealRevenue)
		company.RealCost = company.RealCost.Add(r.RealCost)
		company.OrderPlan = company.OrderPlan.Add(r.OrderPlan)
		company.OrderReal = company.OrderReal.Add(r.OrderReal)
	}

	company.derive()
	return company, perProject, nil
}

func (r *Rollup) derive() {
	r.PlanMargin = r.PlanRevenue.Sub(r.PlanCost)
	r.RealMargin = r.RealRevenue.Sub(r.RealCost)
	r.PlanMarginPct = pct(r.PlanMargin, r.PlanRevenue)
	r.RealMarginPct = pct(r.RealMargin, r.RealRevenue)
	r.AttainmentPct = pct(r.RealRevenue, r.PlanRevenue)
}
