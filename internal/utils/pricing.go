package utils

import (
	"fmt"
	"time"

	"carrental-backend/internal/domain"
)

const day = 24 * time.Hour

// RentalDays returns the billed day count for a rental interval:
// ceil((return - pickup) / 24h), minimum 1. The return date must be
// strictly after the pickup date.
func RentalDays(pickupDate, returnDate time.Time) (int32, error) {
	if !returnDate.After(pickupDate) {
		return 0, fmt.Errorf("return date must be after pickup date: %w", domain.ErrValidation)
	}
	diff := returnDate.Sub(pickupDate)
	days := int32(diff / day)
	if diff%day > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days, nil
}

// BasePriceCents is the pre-settlement rental price: days times the daily
// rate snapshot. All money stays in integer cents.
func BasePriceCents(days, dailyRateCents int32) int32 {
	return days * dailyRateCents
}

// FinalPriceCents is the settled price after extra charges recorded at
// completion.
func FinalPriceCents(basePriceCents, extraChargesCents int32) int32 {
	return basePriceCents + extraChargesCents
}
