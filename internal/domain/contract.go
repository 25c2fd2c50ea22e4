package domain

import "time"

// Contract is the persisted documentRef for a materialized rental contract.
// Rendering the actual document is handled elsewhere; the lifecycle never
// creates contracts on its own.
type Contract struct {
	ID             int32     `json:"id"`
	ReservationID  int32     `json:"reservation_id"`
	ContractNumber string    `json:"contract_number"`
	GeneratedBy    Actor     `json:"generated_by"`
	CreatedOn      time.Time `json:"created_on"`
}
