package entity

import "time"

// Departure is the structured departure leg of a flight as the remote feed
// reports it.
type Departure struct {
	Airport   string    `json:"airport"`
	Scheduled time.Time `json:"scheduled"`
}

// Flight is the display shape the presentation layer consumes. Entries coming
// from the remote feed and entries projected out of the favorites collection
// are both normalized into it, so Number is the one canonical identifier and
// consumers never branch on the source.
type Flight struct {
	Airline        string    `json:"airline"`
	Number         string    `json:"flightNumber"`
	Departure      Departure `json:"departure"`
	ArrivalAirport string    `json:"arrivalAirport"`
	Status         string    `json:"status"`
}
