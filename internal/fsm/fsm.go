package fsm

// Status constants used by the booking state machine.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Payment status carried on a booking, independent of the payment record.
const (
	PayStatusPending  = "pending"
	PayStatusPaid     = "paid"
	PayStatusRefunded = "refunded"
)

// Status constants used by payment records.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Product availability values. Availability gates whether new bookings or
// cart adds may be created against the product.
const (
	Available   = "available"
	Booked      = "booked"
	Unavailable = "unavailable"
)

var bookingTransitions = map[string]map[string]struct{}{
	BookingPending: {
		BookingConfirmed: {},
		BookingCancelled: {},
	},
	BookingConfirmed: {
		BookingCompleted: {},
		BookingCancelled: {},
	},
	BookingCompleted: {},
	BookingCancelled: {},
}

var paymentTransitions = map[string]map[string]struct{}{
	PaymentPending: {
		PaymentCompleted: {},
		PaymentFailed:    {},
	},
	PaymentCompleted: {
		PaymentRefunded: {},
	},
	PaymentFailed:   {},
	PaymentRefunded: {},
}

// CanTransitionBooking returns whether a booking can move from the current
// status to the target status.
func CanTransitionBooking(from, to string) bool {
	if from == to {
		return true
	}
	allowed, ok := bookingTransitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// CanTransitionPayment returns whether a payment can move from the current
// status to the target status.
func CanTransitionPayment(from, to string) bool {
	if from == to {
		return true
	}
	allowed, ok := paymentTransitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// ValidBookingStatus reports whether s is one of the canonical booking
// statuses. Legacy casings from older clients are not accepted.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Terminal reports whether a booking status admits no further transitions.
func Terminal(status string) bool {
	return status == BookingCompleted || status == BookingCancelled
}
