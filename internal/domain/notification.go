package domain

import "time"

type NotificationType string

const (
	NotificationReservationNew       NotificationType = "RESERVATION_NEW"
	NotificationReservationApproved  NotificationType = "RESERVATION_APPROVED"
	NotificationReservationRejected  NotificationType = "RESERVATION_REJECTED"
	NotificationReservationCancelled NotificationType = "RESERVATION_CANCELLED"
	NotificationReservationCompleted NotificationType = "RESERVATION_COMPLETED"
	NotificationContractReady        NotificationType = "CONTRACT_READY"
	NotificationMaintenanceDue       NotificationType = "MAINTENANCE_DUE"
	NotificationPickupReminder       NotificationType = "PICKUP_REMINDER"
	NotificationScoreAdded           NotificationType = "SCORE_ADDED"
)

type Notification struct {
	ID        int32             `json:"id"`
	Recipient Actor             `json:"recipient"`
	Type      NotificationType  `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	Link      string            `json:"link,omitempty"`
	IsRead    bool              `json:"is_read"`
	CreatedOn time.Time         `json:"created_on"`
}
