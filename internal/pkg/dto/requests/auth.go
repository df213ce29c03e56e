package requests

type RegisterPatient struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"password"`
	RetypePassword string `json:"retype_password" validate:"required,eqfield=Password"`
	FullName       string `json:"full_name" validate:"required,min=2,max=100"`
	PhoneNumber    string `json:"phone_number" validate:"required,e164"`
	DateOfBirth    string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender         string `json:"gender" validate:"required,oneof=male female other"`
}

type LoginUser struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type CreateStaffUser struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"password"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Role     string `json:"role" validate:"required,oneof=admin receptionist doctor"`
	DoctorID string `json:"doctor_id,omitempty" validate:"omitempty"`
}
