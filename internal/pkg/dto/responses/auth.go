package responses

type RegisterPatient struct {
	UserID      string `json:"user_id"`
	PatientID   string `json:"patient_id"`
	PatientCode string `json:"patient_code"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
}

type LoginUser struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	FullName  string `json:"full_name"`
	ExpiresIn int64  `json:"expires_in"`
}

type WhoAmI struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	PatientID string `json:"patient_id,omitempty"`
	DoctorID  string `json:"doctor_id,omitempty"`
}
