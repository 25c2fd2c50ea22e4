package domain

import "time"

type MaintenanceType string

const (
	MaintenanceOilChange      MaintenanceType = "OIL_CHANGE"
	MaintenanceTireChange     MaintenanceType = "TIRE_CHANGE"
	MaintenanceBrakeService   MaintenanceType = "BRAKE_SERVICE"
	MaintenanceGeneralService MaintenanceType = "GENERAL_SERVICE"
	MaintenanceRepair         MaintenanceType = "REPAIR"
	MaintenanceInspection     MaintenanceType = "INSPECTION"
	MaintenanceOther          MaintenanceType = "OTHER"
)

type MaintenanceRecord struct {
	ID              int32           `json:"id"`
	CarID           int32           `json:"car_id"`
	Date            time.Time       `json:"date"`
	Type            MaintenanceType `json:"type"`
	Description     string          `json:"description,omitempty"`
	CostCents       int32           `json:"cost_cents"`
	KmAtMaintenance int32           `json:"km_at_maintenance"`
	PerformedBy     string          `json:"performed_by,omitempty"`
	InvoiceNumber   string          `json:"invoice_number,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedBy       Actor           `json:"created_by"`
	CreatedOn       time.Time       `json:"created_on"`
}
