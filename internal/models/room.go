package models

import "time"

// Room is the client-side projection of a room, including the reverse
// collection of reservations currently occupying it.
type Room struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	MaxCapacity  int           `json:"maxCapacity"`
	Price        float64       `json:"price"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	Reservations []Reservation `json:"reservations"`
}
