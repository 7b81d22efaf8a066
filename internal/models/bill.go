package models

// BillStatus represents the payment status of a bill.
type BillStatus string

const (
	BillStatusUnpaid BillStatus = "UNPAID"
	BillStatusPaid   BillStatus = "PAID"
)

// Bill is the client-side projection of a bill. Subtotal is derived
// server-side from the linked fee components and is never recomputed here.
type Bill struct {
	ID             string     `json:"id"`
	AppointmentID  string     `json:"appointmentId"`
	AppointmentFee float64    `json:"appointmentFee"`
	PolicyID       string     `json:"policyId"`
	PolicyFee      float64    `json:"policyFee"`
	ReservationID  string     `json:"reservationId"`
	ReservationFee float64    `json:"reservationFee"`
	PatientID      string     `json:"patientId"`
	Subtotal       float64    `json:"subtotal"`
	Status         BillStatus `json:"status"`
}

// PayBillRequest is the payload for PUT /api/bill/{id}/update.
type PayBillRequest struct {
	ReservationID string     `json:"reservationId"`
	Status        BillStatus `json:"status"`
	PolicyID      string     `json:"policyId"`
}
