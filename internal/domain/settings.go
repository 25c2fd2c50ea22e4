package domain

// RentalPolicy is the read-only booking policy consulted at reservation
// creation. The core reads it from the settings singleton but does not own
// or mutate it.
type RentalPolicy struct {
	MinimumRentalDays  int32 `json:"minimum_rental_days"`
	MaximumRentalDays  int32 `json:"maximum_rental_days"`
	AdvanceBookingDays int32 `json:"advance_booking_days"`
	CancellationHours  int32 `json:"cancellation_hours"`
}

// DefaultRentalPolicy mirrors the defaults seeded into the settings row.
func DefaultRentalPolicy() RentalPolicy {
	return RentalPolicy{
		MinimumRentalDays:  1,
		MaximumRentalDays:  30,
		AdvanceBookingDays: 60,
		CancellationHours:  24,
	}
}
