package domain

import "time"

type DrivingLicense struct {
	Number     string    `json:"number"`
	ExpiryDate time.Time `json:"expiry_date"`
}

// IsValid reports whether the license is unexpired at the given instant.
func (l DrivingLicense) IsValid(now time.Time) bool {
	return l.ExpiryDate.After(now)
}

type Client struct {
	ID           int32          `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	PhoneNumber  string         `json:"phone_number"`
	NationalID   string         `json:"national_id"`
	PasswordHash string         `json:"-"`
	License      DrivingLicense `json:"driving_license"`
	// Score is a cached projection of the score ledger, recomputed after
	// every append. The ledger is authoritative.
	Score             int32     `json:"score"`
	TotalReservations int32     `json:"total_reservations"`
	IsBlocked         bool      `json:"is_blocked"`
	BlockReason       string    `json:"block_reason,omitempty"`
	CreatedOn         time.Time `json:"created_on"`
	UpdatedOn         time.Time `json:"updated_on"`
}

// Staff is an admin or manager account. Operators receive new-reservation
// notifications and drive lifecycle transitions.
type Staff struct {
	ID           int32     `json:"id"`
	Kind         ActorKind `json:"kind"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
}

// Actor returns the staff member as a tagged actor reference.
func (s Staff) Actor() Actor {
	return Actor{Kind: s.Kind, ID: s.ID}
}
