package promo

import "testing"

const testToday = "2025-06-01"

func TestValidate_NormalizesInput(t *testing.T) {
	for _, raw := range []string{"NOEL50", "noel50", " NOEL50 ", "Noel50"} {
		result := Validate(raw, testToday)
		if !result.Valid {
			t.Fatalf("Validate(%q) invalid: %+v", raw, result)
		}
		if result.DiscountPercent != 50 {
			t.Fatalf("Validate(%q) discount = %d, want 50", raw, result.DiscountPercent)
		}
		if result.Message != MessageApplied {
			t.Fatalf("Validate(%q) message = %q", raw, result.Message)
		}
	}
}

func TestValidate_IsIdempotent(t *testing.T) {
	first := Validate("waveup20", testToday)
	second := Validate("waveup20", testToday)
	if first != second {
		t.Fatalf("repeated validation differs: %+v vs %+v", first, second)
	}
}

func TestValidate_UnknownCode(t *testing.T) {
	result := Validate("NOPE", testToday)
	if result.Valid || result.Message != MessageInvalid || result.DiscountPercent != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestValidate_ShortCircuitOrder(t *testing.T) {
	restore := Catalog
	defer func() { Catalog = restore }()

	// A disabled, expired, exhausted code must report disabled first.
	Catalog = []Code{{Code: "EDGE", DiscountPercent: 10, MaxUses: 1, CurrentUses: 1, ExpiryDate: "2020-01-01", IsActive: false}}
	if result := Validate("edge", testToday); result.Message != MessageDisabled {
		t.Fatalf("expected %q, got %+v", MessageDisabled, result)
	}

	// Active but expired reports expired before exhausted.
	Catalog[0].IsActive = true
	if result := Validate("edge", testToday); result.Message != MessageExpired {
		t.Fatalf("expected %q, got %+v", MessageExpired, result)
	}

	// Active and current reports exhausted last.
	Catalog[0].ExpiryDate = "2099-12-31"
	if result := Validate("edge", testToday); result.Message != MessageExhausted {
		t.Fatalf("expected %q, got %+v", MessageExhausted, result)
	}

	Catalog[0].CurrentUses = 0
	if result := Validate("edge", testToday); !result.Valid || result.Message != MessageApplied {
		t.Fatalf("expected applied, got %+v", result)
	}
}

func TestValidate_ExpiryIsInclusive(t *testing.T) {
	if result := Validate("NOEL50", "2025-12-31"); !result.Valid {
		t.Fatalf("expected code valid on its expiry date, got %+v", result)
	}
	if result := Validate("NOEL50", "2026-01-01"); result.Valid || result.Message != MessageExpired {
		t.Fatalf("expected expired the day after, got %+v", result)
	}
}

func TestApply_Rounding(t *testing.T) {
	cases := []struct {
		price    float64
		discount int
		want     float64
	}{
		{100, 50, 50.00},
		{59.88, 0, 59.88},
		{4.99, 20, 3.99},
		{49.99, 50, 25.00},
		{20, 30, 14.00},
	}
	for _, tc := range cases {
		if got := Apply(tc.price, tc.discount); got != tc.want {
			t.Fatalf("Apply(%v, %d) = %v, want %v", tc.price, tc.discount, got, tc.want)
		}
	}
}
