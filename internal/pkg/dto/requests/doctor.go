package requests

type DayAvailability struct {
	Available bool   `json:"available"`
	Start     string `json:"start,omitempty" validate:"required_if=Available true,omitempty"`
	End       string `json:"end,omitempty" validate:"required_if=Available true,omitempty"`
}

type WeeklyAvailability struct {
	Monday    DayAvailability `json:"monday"`
	Tuesday   DayAvailability `json:"tuesday"`
	Wednesday DayAvailability `json:"wednesday"`
	Thursday  DayAvailability `json:"thursday"`
	Friday    DayAvailability `json:"friday"`
	Saturday  DayAvailability `json:"saturday"`
	Sunday    DayAvailability `json:"sunday"`
}

type CreateDoctor struct {
	FullName        string              `json:"full_name" validate:"required,min=2,max=100"`
	Email           string              `json:"email" validate:"required,email"`
	PhoneNumber     string              `json:"phone_number" validate:"required,e164"`
	Specialty       string              `json:"specialty" validate:"required,min=2,max=100"`
	LicenseNumber   string              `json:"license_number" validate:"required,min=3,max=50"`
	ConsultationFee float64             `json:"consultation_fee" validate:"gte=0"`
	Availability    *WeeklyAvailability `json:"weekly_availability,omitempty"`
}

type UpdateDoctor struct {
	FullName        string  `json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
	PhoneNumber     string  `json:"phone_number,omitempty" validate:"omitempty,e164"`
	Specialty       string  `json:"specialty,omitempty" validate:"omitempty,min=2,max=100"`
	ConsultationFee float64 `json:"consultation_fee,omitempty" validate:"omitempty,gte=0"`
	Status          string  `json:"status,omitempty" validate:"omitempty,oneof=active on_leave inactive"`
}

type UpdateDoctorAvailability struct {
	Availability WeeklyAvailability `json:"weekly_availability" validate:"required"`
}

type FindAllDoctors struct {
	Search    string
	Specialty string
	Status    string
	Page      int
	PageSize  int
}

type FindDoctorSlots struct {
	DoctorID string
	Date     string `validate:"required,datetime=2006-01-02"`
}
