package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"alphanum": "must contain only alphanumeric characters",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"eqfield":  "must match %s",
	"password": "must be at least 8 characters long, contain at least one special character, and one uppercase letter",
	"numeric":  "must be a number",
	"len":      "must be %s characters long",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lt":       "must be less than %s",
	"lte":      "must be less than or equal to %s",
	"datetime": "must match the %s format",
	"e164":     "must be a valid international phone number",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"len":      true,
	"eqfield":  true,
	"gt":       true,
	"gte":      true,
	"lt":       true,
	"lte":      true,
	"oneof":    true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidEmailOrPassword        = "invalid email or password"
	ErrClientPasswordsDoNotMatch           = "passwords do not match"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientLicenseAlreadyExists          = "license number already registered"
	ErrClientPatientNotFound               = "patient not found"
	ErrClientDoctorNotFound                = "doctor not found"
	ErrClientAppointmentNotFound           = "appointment not found"
	ErrClientBillNotFound                  = "bill not found"
	ErrClientDoctorNotBookable             = "the doctor is currently not accepting appointments"
	ErrClientAppointmentInPast             = "the requested appointment time has already passed"
	ErrClientOutsideWorkingHours           = "the requested time is outside the doctor's working hours"
	ErrClientSlotTaken                     = "the requested slot is no longer available"
	ErrClientInvalidStatusTransition       = "the appointment cannot be moved to the requested status"
	ErrClientBillLocked                    = "a cancelled bill can no longer be modified"
	ErrClientInvalidLineItem               = "one of the bill items is invalid"
	ErrClientInvalidAvailability           = "the weekly availability is invalid"
	ErrClientInvalidImageFormat            = "the image you uploaded does not meet the specified standards"
	ErrClientCancellationReasonRequired    = "a cancellation reason is required"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseMultipartForm = "cannot parse multipart form body"
	ErrDevValidationFailed         = "validation failed"
	ErrDevImageValidationFailed    = "image validation failed"
	ErrDevMissingRequestID         = "request id not found in context"
	ErrDevMissingSessionData       = "session data not found in context"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalid          = "invalid token"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthInvalidSession        = "invalid session"
	ErrDevAuthGenerateToken         = "failed to generate token"
	ErrDevInvalidCredentials        = "invalid credentials"
	ErrDevEmailAlreadyExists        = "email already exists"
	ErrDevLicenseAlreadyExists      = "license number already exists"
	ErrDevPasswordsDoNotMatch       = "passwords do not match"
	ErrDevFailedToHashPassword      = "failed to hash password"
	ErrDevRoleNotAllowed            = "role not allowed for this endpoint"
	ErrDevNotResourceOwner          = "authenticated user does not own the requested resource"

	// Domain messages
	ErrDevPatientNotExists            = "patient not exists in our system"
	ErrDevDoctorNotExists             = "doctor not exists in our system"
	ErrDevAppointmentNotExists        = "appointment not exists in our system"
	ErrDevBillNotExists               = "bill not exists in our system"
	ErrDevUserNotExists               = "user not exists in our system"
	ErrDevDoctorNotActive             = "doctor status is not active"
	ErrDevAppointmentInPast           = "requested date and time is not in the future"
	ErrDevOutsideWorkingHours         = "requested time is outside the weekly availability window"
	ErrDevSlotConflict                = "another blocking appointment exists for the same doctor, date and time"
	ErrDevInvalidStatusTransition     = "status transition is not permitted by the appointment lifecycle"
	ErrDevBillCancelled               = "bill is cancelled and is terminal"
	ErrDevInvalidLineItem             = "line item rejected at construction"
	ErrDevInvalidWeeklyAvailability   = "weekly availability failed validation"
	ErrDevCancellationReasonRequired  = "cancellation requires a reason"
	ErrDevSequenceGenerate            = "failed to generate next sequence value"
	ErrDevURLParamValidationFailed    = "parameter %s validation failed"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document from database"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents from database"
	ErrDevDBFailedToAggregate        = "failed to run aggregation pipeline on database"
	ErrDevDBStringNotObjectID        = "given ID is not valid object ID"

	// Redis messages
	ErrDevRedisSet          = "failed to store value into redis"
	ErrDevRedisGet          = "failed to read value with key %s from redis"
	ErrDevRedisDelete       = "failed to delete value from redis"
	ErrDevRedisUnlock       = "failed to release redis lock"
	ErrDevRedisStoreSession = "failed to store session data into redis"

	// Messaging messages
	ErrDevRabbitMQPublish = "failed to publish event to rabbitmq exchange"

	// Minio messages
	ErrDevMinioFailedToCreateObject  = "failed to create object on bucket %s"
	ErrDevMinioFailedToPresignObject = "failed to presign object URL on bucket %s"

	// Server messages
	ErrDevServerDeadlineExceeded = "deadline exceeded"
)

const (
	ResponseUnknown = "unknown"
)
