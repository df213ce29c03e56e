package requests

type EmergencyContact struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	PhoneNumber  string `json:"phone_number" validate:"required,e164"`
	Relationship string `json:"relationship" validate:"required,min=2,max=50"`
}

type CreatePatient struct {
	FullName         string            `json:"full_name" validate:"required,min=2,max=100"`
	Email            string            `json:"email" validate:"required,email"`
	PhoneNumber      string            `json:"phone_number" validate:"required,e164"`
	DateOfBirth      string            `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender           string            `json:"gender" validate:"required,oneof=male female other"`
	Address          string            `json:"address,omitempty" validate:"omitempty,max=255"`
	BloodType        string            `json:"blood_type,omitempty" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Allergies        []string          `json:"allergies,omitempty"`
	MedicalNotes     string            `json:"medical_notes,omitempty" validate:"omitempty,max=2000"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty" validate:"omitempty"`
}

type UpdatePatient struct {
	FullName         string            `json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
	PhoneNumber      string            `json:"phone_number,omitempty" validate:"omitempty,e164"`
	Address          string            `json:"address,omitempty" validate:"omitempty,max=255"`
	BloodType        string            `json:"blood_type,omitempty" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Allergies        []string          `json:"allergies,omitempty"`
	MedicalNotes     string            `json:"medical_notes,omitempty" validate:"omitempty,max=2000"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty" validate:"omitempty"`
}

type FindAllPatients struct {
	Search   string
	Page     int
	PageSize int
}
