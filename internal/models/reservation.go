package models

// Facility identifies a facility selected for a reservation.
type Facility struct {
	ID   string  `json:"id"`
	Name string  `json:"name,omitempty"`
	Fee  float64 `json:"fee,omitempty"`
}

// Reservation is the client-side projection of an inpatient reservation.
// RoomID is a plain identifier; the room itself is fetched separately.
type Reservation struct {
	ID            string     `json:"id"`
	PatientID     string     `json:"patientId"`
	DateIn        string     `json:"dateIn"`
	DateOut       string     `json:"dateOut"`
	TotalFee      float64    `json:"totalFee"`
	AssignedNurse string     `json:"assignedNurse"`
	RoomID        string     `json:"roomId"`
	ListFacility  []Facility `json:"listFacility"`
	PClass        int        `json:"pClass"`
}

// CreateReservationRequest is the payload for POST /api/reservations/add.
type CreateReservationRequest struct {
	NIK           string     `json:"nik"`
	DateIn        string     `json:"dateIn"`
	DateOut       string     `json:"dateOut"`
	RoomID        string     `json:"roomId"`
	PatientID     string     `json:"patientId"`
	AppointmentID string     `json:"appointmentId"`
	PClass        int        `json:"pClass"`
	Facilities    []Facility `json:"facilities"`
}

// UpdateReservationRequest is the payload for PUT /api/reservations/{id}/update.
type UpdateReservationRequest struct {
	DateIn  string `json:"dateIn"`
	DateOut string `json:"dateOut"`
	RoomID  string `json:"roomId"`
}
