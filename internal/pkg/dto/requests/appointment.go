package requests

type CreateAppointment struct {
	PatientID       string `json:"patient_id" validate:"required"`
	DoctorID        string `json:"doctor_id" validate:"required"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string `json:"time" validate:"required"`
	DurationMinutes int    `json:"duration_minutes,omitempty" validate:"omitempty,gte=15,lte=180"`
	Type            string `json:"type" validate:"required,oneof=consultation follow_up emergency routine_checkup"`
	Priority        string `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent"`
	Reason          string `json:"reason,omitempty" validate:"omitempty,max=500"`
	Notes           string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type UpdateAppointmentStatus struct {
	Status string `json:"status" validate:"required,oneof=confirmed in_progress completed no_show"`
	Notes  string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type CancelAppointment struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

type FindAllAppointments struct {
	PatientID string
	DoctorID  string
	Date      string
	Status    string
	Page      int
	PageSize  int
}
