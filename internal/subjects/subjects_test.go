package subjects

import (
	"errors"
	"testing"
)

func TestGroupOf(t *testing.T) {
	cases := map[string]Group{
		"1.0": GroupOrder,
		"2.1": GroupRevenue,
		"2.2": GroupRevenue,
		"3.1": GroupVariableCost,
		"3.7": GroupVariableCost,
	}
	for code, want := range cases {
		got, err := GroupOf(code)
		if err != nil {
			t.Errorf("GroupOf(%s): %v", code, err)
			continue
		}
		if got != want {
			t.Errorf("GroupOf(%s) = %s, want %s", code, got, want)
		}
	}
}

func TestGroupOf_UnknownGroup(t *testing.T) {
	for _, code := range []string{"", "4.1", "abc", "0.1"} {
		if _, err := GroupOf(code); !errors.Is(err, ErrInvalidSubject) {
			t.Errorf("GroupOf(%q): expected ErrInvalidSubject, got %v", code, err)
		}
	}
}

func TestResolve_UnknownCode(t *testing.T) {
	for _, code := range []string{"", "3.8", "9.9"} {
		if _, err := Resolve(code); !errors.Is(err, ErrInvalidSubject) {
			t.Errorf("Resolve(%q): expected ErrInvalidSubject, got %v", code, err)
		}
	}
}

func TestAll_SortedAndComplete(t *testing.T) {
	all := All()
	if len(all) != 10 {
		t.Fatalf("expected 10 subjects, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Code >= all[i].Code {
			t.Fatalf("subjects not sorted: %s before %s", all[i-1].Code, all[i].Code)
		}
	}
}

func TestCostCodes(t *testing.T) {
	codes := CostCodes()
	if len(codes) != 7 {
		t.Fatalf("expected 7 cost codes, got %d", len(codes))
	}
	for _, c := range codes {
		g, err := GroupOf(c)
		if err != nil || g != GroupVariableCost {
			t.Errorf("cost code %s resolved to group %s (err %v)", c, g, err)
		}
	}
}
