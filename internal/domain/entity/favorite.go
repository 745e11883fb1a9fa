package entity

import "time"

// FavoriteRecord is a user-pinned flight persisted in the local store. One
// record per flight number; created on toggle-on, deleted on toggle-off,
// never updated in between.
type FavoriteRecord struct {
	FlightNumber     string    `gorm:"column:flight_number;primaryKey;size:16" json:"flightNumber"`
	Airline          string    `gorm:"column:airline;size:128" json:"airline"`
	DepartureAirport string    `gorm:"column:departure_airport;size:128" json:"departureAirport"`
	ArrivalAirport   string    `gorm:"column:arrival_airport;size:128" json:"arrivalAirport"`
	Status           string    `gorm:"column:status;size:32" json:"status"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// TableName overrides the default table name
func (FavoriteRecord) TableName() string {
	return "favorites"
}

// NewFavoriteRecord flattens a display flight down to the persisted shape.
// The scheduled departure time is dropped on purpose; it would be stale by
// the time the record is read back.
func NewFavoriteRecord(f Flight) FavoriteRecord {
	return FavoriteRecord{
		FlightNumber:     f.Number,
		Airline:          f.Airline,
		DepartureAirport: f.Departure.Airport,
		ArrivalAirport:   f.ArrivalAirport,
		Status:           f.Status,
	}
}

// Project inflates the record back into the display shape. Inverse of
// NewFavoriteRecord except for the dropped schedule.
func (r FavoriteRecord) Project() Flight {
	return Flight{
		Airline:        r.Airline,
		Number:         r.FlightNumber,
		Departure:      Departure{Airport: r.DepartureAirport},
		ArrivalAirport: r.ArrivalAirport,
		Status:         r.Status,
	}
}
