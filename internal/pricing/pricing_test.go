package pricing

import "testing"

func TestSubtotal(t *testing.T) {
	cases := []struct {
		name     string
		price    float64
		quantity int
		duration int
		want     float64
	}{
		{"base case", 10, 2, 3, 60},
		{"single unit single day", 25.50, 1, 1, 25.50},
		{"default duration applied", 10, 1, 0, 70},
		{"quantity floored to one", 10, 0, 3, 30},
		{"fractional price", 9.99, 3, 2, 59.94},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Subtotal(tc.price, tc.quantity, tc.duration)
			if got != tc.want {
				t.Fatalf("expected %.2f got %.2f", tc.want, got)
			}
		})
	}
}

func TestDiscountAndTotal(t *testing.T) {
	// $10/day, quantity 2, duration 3 -> $60; RENT10 (10%) -> $6 off -> $54.
	subtotal := Subtotal(10, 2, 3)
	if subtotal != 60 {
		t.Fatalf("expected subtotal 60, got %.2f", subtotal)
	}
	discount := Discount(subtotal, 10)
	if discount != 6 {
		t.Fatalf("expected discount 6, got %.2f", discount)
	}
	total := Total(subtotal, discount)
	if total != 54 {
		t.Fatalf("expected total 54, got %.2f", total)
	}
}

func TestDiscountNeverNegative(t *testing.T) {
	if got := Discount(100, -5); got != 0 {
		t.Fatalf("expected 0 for negative percent, got %.2f", got)
	}
	if got := Discount(0, 10); got != 0 {
		t.Fatalf("expected 0 for empty subtotal, got %.2f", got)
	}
}

func TestTotalClampedAtZero(t *testing.T) {
	if got := Total(50, 80); got != 0 {
		t.Fatalf("expected total clamped to 0, got %.2f", got)
	}
	if got := Total(50, -10); got != 50 {
		t.Fatalf("expected negative discount ignored, got %.2f", got)
	}
}

func TestRentalDays(t *testing.T) {
	cases := []struct {
		hours float64
		want  int
	}{
		{0, 1},
		{23, 1},
		{24, 1},
		{25, 2},
		{72, 3},
	}
	for _, tc := range cases {
		if got := RentalDays(tc.hours); got != tc.want {
			t.Fatalf("RentalDays(%.0f): expected %d got %d", tc.hours, tc.want, got)
		}
	}
}
