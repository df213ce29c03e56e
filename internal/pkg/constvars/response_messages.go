package constvars

// Success messages
const (
	RegisterSuccessMessage = "register success"
	LoginSuccessMessage    = "login success"
	LogoutSuccessMessage   = "logout success"
	WhoAmISuccessMessage   = "profile fetched successfully"

	CreatePatientSuccessMessage     = "patient created successfully"
	GetPatientSuccessMessage        = "patient(s) fetched successfully"
	UpdatePatientSuccessMessage     = "patient updated successfully"
	DeactivatePatientSuccessMessage = "patient deactivated successfully"
	UploadPhotoSuccessMessage       = "photo uploaded successfully"

	CreateDoctorSuccessMessage         = "doctor created successfully"
	GetDoctorSuccessMessage            = "doctor(s) fetched successfully"
	UpdateDoctorSuccessMessage         = "doctor updated successfully"
	UpdateAvailabilitySuccessMessage   = "weekly availability updated successfully"
	GetDoctorSlotsSuccessMessage       = "available slots fetched successfully"

	CreateAppointmentSuccessMessage       = "appointment booked successfully"
	GetAppointmentSuccessMessage          = "appointment(s) fetched successfully"
	UpdateAppointmentStatusSuccessMessage = "appointment status updated successfully"
	CancelAppointmentSuccessMessage       = "appointment cancelled successfully"

	CreateBillSuccessMessage    = "bill created successfully"
	GetBillSuccessMessage       = "bill(s) fetched successfully"
	UpdateBillSuccessMessage    = "bill updated successfully"
	RecordPaymentSuccessMessage = "payment recorded successfully"
	CancelBillSuccessMessage    = "bill cancelled successfully"

	GetDashboardSuccessMessage = "dashboard statistics fetched successfully"
)
