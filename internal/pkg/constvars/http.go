package constvars

const (
	MIMETextPlain       = "text/plain"
	MIMEApplicationJSON = "application/json"
	MIMEMultipartForm   = "multipart/form-data"

	MIMEApplicationJSONCharsetUTF8 = "application/json; charset=utf-8"
)

const (
	StatusOK        = 200
	StatusCreated   = 201
	StatusAccepted  = 202
	StatusNoContent = 204

	StatusBadRequest            = 400
	StatusUnauthorized          = 401
	StatusPaymentRequired       = 402
	StatusForbidden             = 403
	StatusNotFound              = 404
	StatusMethodNotAllowed      = 405
	StatusConflict              = 409
	StatusGone                  = 410
	StatusRequestEntityTooLarge = 413
	StatusUnprocessableEntity   = 422
	StatusTooManyRequests       = 429

	StatusInternalServerError = 500
	StatusNotImplemented      = 501
	StatusBadGateway          = 502
	StatusServiceUnavailable  = 503
	StatusGatewayTimeout      = 504
)

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderContentLength = "Content-Length"
	HeaderXRequestID    = "X-Request-Id"
)

const (
	URLParamPatientID     = "patient_id"
	URLParamDoctorID      = "doctor_id"
	URLParamAppointmentID = "appointment_id"
	URLParamBillID        = "bill_id"
)

const (
	URLQueryParamSearch    = "search"
	URLQueryParamDate      = "date"
	URLQueryParamStatus    = "status"
	URLQueryParamDoctorID  = "doctor_id"
	URLQueryParamPatientID = "patient_id"
	URLQueryParamSpecialty = "specialty"
	URLQueryParamPage      = "page"
	URLQueryParamPageSize  = "page_size"
)
