package responses

import (
	"time"

	"medicore-service/internal/app/models"
)

type Doctor struct {
	ID                 string                    `json:"id"`
	Code               string                    `json:"code"`
	FullName           string                    `json:"full_name"`
	Email              string                    `json:"email"`
	PhoneNumber        string                    `json:"phone_number"`
	Specialty          string                    `json:"specialty"`
	LicenseNumber      string                    `json:"license_number"`
	ConsultationFee    float64                   `json:"consultation_fee"`
	Status             string                    `json:"status"`
	WeeklyAvailability models.WeeklyAvailability `json:"weekly_availability"`
	CreatedAt          time.Time                 `json:"created_at"`
	UpdatedAt          time.Time                 `json:"updated_at"`
}

type DoctorSlot struct {
	Time     string `json:"time"`
	Bookable bool   `json:"bookable"`
}

type DoctorSlots struct {
	DoctorID     string       `json:"doctor_id"`
	Date         string       `json:"date"`
	DoctorStatus string       `json:"doctor_status"`
	Slots        []DoctorSlot `json:"slots"`
}
