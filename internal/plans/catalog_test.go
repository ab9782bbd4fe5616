package plans

import "testing"

func TestFind(t *testing.T) {
	for _, id := range []string{"monthly", "annual", "pro", " PRO "} {
		if _, ok := Find(id); !ok {
			t.Fatalf("expected plan %q in catalog", id)
		}
	}
	if _, ok := Find("lifetime"); ok {
		t.Fatal("unexpected plan found")
	}
}

func TestDiscountPercent(t *testing.T) {
	annual, ok := Find("annual")
	if !ok {
		t.Fatal("annual plan missing")
	}
	// (59.88 - 49.99) / 59.88 rounds to 17%.
	if got := DiscountPercent(annual); got != 17 {
		t.Fatalf("annual discount = %d, want 17", got)
	}

	monthly, _ := Find("monthly")
	if got := DiscountPercent(monthly); got != 0 {
		t.Fatalf("monthly discount = %d, want 0", got)
	}
}

func TestCatalogPlanIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, plan := range Catalog {
		if seen[plan.ID] {
			t.Fatalf("duplicate plan id %q", plan.ID)
		}
		seen[plan.ID] = true
		if plan.Price <= 0 {
			t.Fatalf("plan %q has non-positive price", plan.ID)
		}
		if plan.Period != PeriodMonthly && plan.Period != PeriodAnnual {
			t.Fatalf("plan %q has unknown period %q", plan.ID, plan.Period)
		}
	}
}
