package models

import "time"

// Policy is the client-side projection of an insurance policy.
// TotalCoveraged is the coverage ceiling, TotalCovered the amount consumed
// to date; both are maintained server-side.
type Policy struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"companyId"`
	PatientID      string    `json:"patientId"`
	Status         string    `json:"status"`
	ExpiryDate     time.Time `json:"expiryDate"`
	TotalCoveraged float64   `json:"totalCoveraged"`
	TotalCovered   float64   `json:"totalCovered"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
