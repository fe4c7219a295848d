// Package subjects holds the controlled vocabulary of cost subjects used to
// classify budget matrix cells. The taxonomy is fixed at deployment time:
// codes are never created, mutated or deleted at runtime.
package subjects

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Group classifies a subject for rollup math.
type Group string

const (
	GroupOrder        Group = "Order"
	GroupRevenue      Group = "Revenue"
	GroupVariableCost Group = "VariableCost"
)

// Subject is one entry of the cost taxonomy.
type Subject struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Group Group  `json:"group"`
}

// ErrInvalidSubject marks an unknown subject code. This is a programmer or
// configuration error, never silently defaulted.
var ErrInvalidSubject = errors.New("invalid subject code")

var registry = map[string]Subject{
	"1.0": {Code: "1.0", Label: "PO Amount", Group: GroupOrder},
	"2.1": {Code: "2.1", Label: "Product Sales Revenue", Group: GroupRevenue},
	"2.2": {Code: "2.2", Label: "Other Revenue", Group: GroupRevenue},
	"3.1": {Code: "3.1", Label: "Materials Procurement", Group: GroupVariableCost},
	"3.2": {Code: "3.2", Label: "Direct Labor", Group: GroupVariableCost},
	"3.3": {Code: "3.3", Label: "Outsourcing & Logistics", Group: GroupVariableCost},
	"3.4": {Code: "3.4", Label: "Surplus Materials to Inventory", Group: GroupVariableCost},
	"3.5": {Code: "3.5", Label: "Fabric Development & Sampling", Group: GroupVariableCost},
	"3.6": {Code: "3.6", Label: "Factory Utilities & Rent", Group: GroupVariableCost},
	"3.7": {Code: "3.7", Label: "Marketing & Travel", Group: GroupVariableCost},
}

// Resolve returns the subject for a code.
func Resolve(code string) (Subject, error) {
	s, ok := registry[code]
	if !ok {
		return Subject{}, fmt.Errorf("%w: %q", ErrInvalidSubject, code)
	}
	return s, nil
}

// GroupOf derives the rollup group from the leading numeral before the
// first dot: 1 = Order, 2 = Revenue, 3 = VariableCost.
func GroupOf(code string) (Group, error) {
	head, _, _ := strings.Cut(code, ".")
	switch head {
	case "1":
		return GroupOrder, nil
	case "2":
		return GroupRevenue, nil
	case "3":
		return GroupVariableCost, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSubject, code)
	}
}

// All returns the taxonomy sorted by code.
func All() []Subject {
	out := make([]Subject, 0, len(registry))
	for _, s := range registry {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// CostCodes returns the variable-cost codes a purchase order may post to.
func CostCodes() []string {
	out := make([]string, 0)
	for _, s := range All() {
		if s.Group == GroupVariableCost {
			out = append(out, s.Code)
		}
	}
	return out
}
