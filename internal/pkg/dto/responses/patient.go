package responses

import "time"

type EmergencyContact struct {
	Name         string `json:"name"`
	PhoneNumber  string `json:"phone_number"`
	Relationship string `json:"relationship"`
}

type Patient struct {
	ID               string            `json:"id"`
	Code             string            `json:"code"`
	FullName         string            `json:"full_name"`
	Email            string            `json:"email"`
	PhoneNumber      string            `json:"phone_number"`
	DateOfBirth      string            `json:"date_of_birth"`
	Age              int               `json:"age"`
	Gender           string            `json:"gender"`
	Address          string            `json:"address,omitempty"`
	BloodType        string            `json:"blood_type,omitempty"`
	Allergies        []string          `json:"allergies,omitempty"`
	MedicalNotes     string            `json:"medical_notes,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
	PhotoURL         string            `json:"photo_url,omitempty"`
	Active           bool              `json:"active"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

type UploadPhoto struct {
	ObjectName string `json:"object_name"`
	PhotoURL   string `json:"photo_url"`
}
