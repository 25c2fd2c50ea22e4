package domain

import "time"

const (
	// Bounds for a single ledger entry delta.
	ScoreDeltaMin = -20
	ScoreDeltaMax = 20

	// Bounds for the derived client score.
	ScoreFloor   = 0
	ScoreCeiling = 100
	ScoreBase    = 100
)

// ScoreEntry is one append-only adjustment to a client's standing. Entries
// are never edited or deleted; the client's cached score is recomputed from
// the full ledger after each append.
type ScoreEntry struct {
	ID            int32     `json:"id"`
	ClientID      int32     `json:"client_id"`
	ReservationID int32     `json:"reservation_id"`
	Delta         int32     `json:"delta"`
	Reason        string    `json:"reason"`
	Comment       string    `json:"comment,omitempty"`
	CreatedBy     Actor     `json:"created_by"`
	CreatedOn     time.Time `json:"created_on"`
}

// ComputeScore derives a client score from the sum of ledger deltas.
func ComputeScore(deltaSum int32) int32 {
	score := ScoreBase + deltaSum
	if score < ScoreFloor {
		return ScoreFloor
	}
	if score > ScoreCeiling {
		return ScoreCeiling
	}
	return score
}
