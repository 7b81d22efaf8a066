package models

import "time"

// AppointmentStatus represents the backend-assigned status of an appointment.
// Transitions are enforced by the appointment service; the gateway only
// displays values and requests transitions.
type AppointmentStatus int

const (
	AppointmentStatusPending   AppointmentStatus = 0
	AppointmentStatusConfirmed AppointmentStatus = 1
	AppointmentStatusDone      AppointmentStatus = 2
	AppointmentStatusCancelled AppointmentStatus = 3
)

// Appointment is the client-side projection of an appointment. The
// appointment service owns the record; TotalFee and the treatment names are
// computed server-side.
type Appointment struct {
	ID          string            `json:"id"`
	DoctorName  string            `json:"doctorName"`
	PatientName string            `json:"patientName"`
	Date        time.Time         `json:"date"`
	Diagnosis   string            `json:"diagnosis"`
	Treatments  []string          `json:"treatments"`
	TotalFee    float64           `json:"totalFee"`
	Status      AppointmentStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	CreatedBy   string            `json:"createdBy"`
	UpdatedBy   string            `json:"updatedBy"`
}

// CreateAppointmentRequest is the payload for POST /api/appointment/add.
type CreateAppointmentRequest struct {
	NIK      string `json:"nik"`
	DoctorID string `json:"doctorId"`
	Date     string `json:"date"`
}

// UpdateAppointmentStatusRequest is the payload for PUT /api/appointment/update-status.
type UpdateAppointmentStatusRequest struct {
	ID        string            `json:"id"`
	Status    AppointmentStatus `json:"status"`
	UpdatedBy string            `json:"updatedBy"`
}

// UpdateAppointmentTreatmentsRequest is the payload for PUT /api/appointment/update-treatments.
// Treatments carries treatment IDs; the service resolves them to names.
type UpdateAppointmentTreatmentsRequest struct {
	ID         string `json:"id"`
	Diagnosis  string `json:"diagnosis"`
	Treatments []int  `json:"treatments"`
	UpdatedBy  string `json:"updatedBy"`
}
