package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusApproved  ReservationStatus = "APPROVED"
	ReservationStatusRejected  ReservationStatus = "REJECTED"
	ReservationStatusActive    ReservationStatus = "ACTIVE"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

// FuelLevel is the coarse tank reading recorded at pickup and return.
type FuelLevel string

const (
	FuelLevelEmpty        FuelLevel = "EMPTY"
	FuelLevelQuarter      FuelLevel = "QUARTER"
	FuelLevelHalf         FuelLevel = "HALF"
	FuelLevelThreeQuarter FuelLevel = "THREE_QUARTER"
	FuelLevelFull         FuelLevel = "FULL"
)

// reservationTransitions is the only source of truth for the lifecycle
// state machine. REJECTED, COMPLETED and CANCELLED have no outgoing edges.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:   {ReservationStatusApproved, ReservationStatusRejected, ReservationStatusCancelled},
	ReservationStatusApproved:  {ReservationStatusActive, ReservationStatusCancelled},
	ReservationStatusActive:    {ReservationStatusCompleted},
	ReservationStatusRejected:  {},
	ReservationStatusCompleted: {},
	ReservationStatusCancelled: {},
}

// CanTransitionTo reports whether the state machine has an edge from s to
// target.
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	for _, t := range reservationTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s has no outgoing transitions.
func (s ReservationStatus) IsTerminal() bool {
	return len(reservationTransitions[s]) == 0
}

// Blocks reports whether a reservation in this status counts against car
// availability. PENDING is advisory only and is re-validated at approval.
func (s ReservationStatus) Blocks() bool {
	return s == ReservationStatusApproved || s == ReservationStatusActive
}

type Reservation struct {
	ID               int32      `json:"id"`
	ClientID         int32      `json:"client_id"`
	CarID            int32      `json:"car_id"`
	Client           *Client    `json:"client,omitempty"`
	Car              *Car       `json:"car,omitempty"`
	PickupDate       time.Time  `json:"pickup_date"`
	ReturnDate       time.Time  `json:"return_date"`
	ActualReturnDate *time.Time `json:"actual_return_date,omitempty"`
	TotalDays        int32      `json:"total_days"`
	// Price snapshot captured from the car at creation time. Settlement
	// uses the snapshot, never the live car price.
	DailyRateCents     int32             `json:"daily_rate_cents"`
	TotalPriceCents    int32             `json:"total_price_cents"`
	ExtraChargesCents  int32             `json:"extra_charges_cents"`
	FinalPriceCents    int32             `json:"final_price_cents"`
	Status             ReservationStatus `json:"status"`
	Notes              string            `json:"notes"`
	AdminNotes         string            `json:"admin_notes"`
	KmAtPickup         *int32            `json:"km_at_pickup,omitempty"`
	KmAtReturn         *int32            `json:"km_at_return,omitempty"`
	FuelAtPickup       *FuelLevel        `json:"fuel_at_pickup,omitempty"`
	FuelAtReturn       *FuelLevel        `json:"fuel_at_return,omitempty"`
	PickupLocation     string            `json:"pickup_location"`
	ReturnLocation     string            `json:"return_location"`
	ApprovedBy         *Actor            `json:"approved_by,omitempty"`
	ApprovedAt         *time.Time        `json:"approved_at,omitempty"`
	RejectionReason    string            `json:"rejection_reason,omitempty"`
	CancellationReason string            `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time        `json:"cancelled_at,omitempty"`
	CreatedOn          time.Time         `json:"created_on"`
	UpdatedOn          time.Time         `json:"updated_on"`
}

// Overlaps reports whether two inclusive date intervals share at least one
// day. This is the single overlap predicate; the SQL variant in the
// reservation repository mirrors it exactly.
func Overlaps(pickupA, returnA, pickupB, returnB time.Time) bool {
	return !pickupA.After(returnB) && !returnA.Before(pickupB)
}
