package entity

import (
	"time"

	"github.com/google/uuid"
)

// PendingRequest is a flight-info inquiry that could not be delivered
// immediately. It sits in the local store until the sync trigger drains it.
// The generated ID keys the record; Timestamp orders the queue, so two
// requests created in the same instant still get distinct keys.
type PendingRequest struct {
	ID           string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Name         string    `gorm:"column:name;size:128" json:"name"`
	FlightNumber string    `gorm:"column:flight_number;size:16" json:"flightNumber"`
	Timestamp    time.Time `gorm:"column:timestamp;index" json:"timestamp"`
}

// TableName overrides the default table name
func (PendingRequest) TableName() string {
	return "requests"
}

// NewPendingRequest builds a request stamped with the current time.
func NewPendingRequest(name, flightNumber string) PendingRequest {
	return PendingRequest{
		ID:           uuid.NewString(),
		Name:         name,
		FlightNumber: flightNumber,
		Timestamp:    time.Now().UTC(),
	}
}
