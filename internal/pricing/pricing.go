package pricing

import "math"

// DefaultDurationDays is applied when a cart entry does not specify a rental
// duration.
const DefaultDurationDays = 7

// Subtotal calculates the price of a single cart line: the per-day price
// snapshot multiplied by quantity and rental duration in days.
func Subtotal(pricePerDay float64, quantity, durationDays int) float64 {
	if quantity < 1 {
		quantity = 1
	}
	if durationDays < 1 {
		durationDays = DefaultDurationDays
	}
	return round2(pricePerDay * float64(quantity) * float64(durationDays))
}

// Discount calculates the promo discount for a subtotal. percent is expressed
// as a whole number (10 means 10%). The result is never negative.
func Discount(subtotal, percent float64) float64 {
	if percent <= 0 || subtotal <= 0 {
		return 0
	}
	return round2(subtotal * percent / 100)
}

// Total calculates the payable cart total. The discount is clamped so the
// total never goes below zero.
func Total(subtotal, discount float64) float64 {
	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}
	return round2(subtotal - discount)
}

// RentalDays returns the whole number of days between start and end, with a
// minimum of one day.
func RentalDays(hours float64) int {
	days := int(math.Ceil(hours / 24))
	if days < 1 {
		days = 1
	}
	return days
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
