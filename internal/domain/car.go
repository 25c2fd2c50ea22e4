package domain

import "time"

type CarStatus string

const (
	CarStatusAvailable   CarStatus = "AVAILABLE"
	CarStatusRented      CarStatus = "RENTED"
	CarStatusMaintenance CarStatus = "MAINTENANCE"
	CarStatusUnavailable CarStatus = "UNAVAILABLE"
)

type FuelType string

const (
	FuelTypePetrol   FuelType = "PETROL"
	FuelTypeDiesel   FuelType = "DIESEL"
	FuelTypeElectric FuelType = "ELECTRIC"
	FuelTypeHybrid   FuelType = "HYBRID"
)

type Transmission string

const (
	TransmissionManual    Transmission = "MANUAL"
	TransmissionAutomatic Transmission = "AUTOMATIC"
)

type Car struct {
	ID           int32        `json:"id"`
	Brand        string       `json:"brand"`
	Model        string       `json:"model"`
	Year         int32        `json:"year"`
	LicensePlate string       `json:"license_plate"`
	Color        string       `json:"color"`
	FuelType     FuelType     `json:"fuel_type"`
	Transmission Transmission `json:"transmission"`
	Seats        int32        `json:"seats"`
	Doors        int32        `json:"doors"`
	// Reservations copy this price at creation time and never read the
	// live value again.
	DailyPriceCents        int32      `json:"daily_price_cents"`
	MileageKm              int32      `json:"mileage_km"`
	Status                 CarStatus  `json:"status"`
	MaintenanceThresholdKm int32      `json:"maintenance_threshold_km"`
	LastMaintenanceKm      int32      `json:"last_maintenance_km"`
	LastMaintenanceDate    *time.Time `json:"last_maintenance_date,omitempty"`
	IsActive               bool       `json:"is_active"`
	Description            string     `json:"description"`
	CreatedOn              time.Time  `json:"created_on"`
	UpdatedOn              time.Time  `json:"updated_on"`
}

// IsMaintenanceDue reports whether the car has accumulated enough mileage
// since its last service to need another one.
func (c *Car) IsMaintenanceDue() bool {
	return c.MileageKm-c.LastMaintenanceKm >= c.MaintenanceThresholdKm
}
