package responses

import "time"

type Appointment struct {
	ID                 string    `json:"id"`
	Code               string    `json:"code"`
	PatientID          string    `json:"patient_id"`
	PatientName        string    `json:"patient_name,omitempty"`
	DoctorID           string    `json:"doctor_id"`
	DoctorName         string    `json:"doctor_name,omitempty"`
	Date               string    `json:"date"`
	Time               string    `json:"time"`
	DurationMinutes    int       `json:"duration_minutes"`
	Type               string    `json:"type"`
	Priority           string    `json:"priority"`
	Status             string    `json:"status"`
	Reason             string    `json:"reason,omitempty"`
	Notes              string    `json:"notes,omitempty"`
	CancellationReason string    `json:"cancellation_reason,omitempty"`
	IsToday            bool      `json:"is_today"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
