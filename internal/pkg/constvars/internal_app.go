package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "MDCR_SVC_"
)

const (
	RoleAdmin        = "admin"
	RoleDoctor       = "doctor"
	RoleReceptionist = "receptionist"
	RolePatient      = "patient"
)

const (
	MongoCollectionUsers        = "users"
	MongoCollectionPatients     = "patients"
	MongoCollectionDoctors      = "doctors"
	MongoCollectionAppointments = "appointments"
	MongoCollectionBills        = "bills"
	MongoCollectionCounters     = "counters"
)

// Sequence names double as counter document ids.
const (
	SequencePatients     = "patients"
	SequenceDoctors      = "doctors"
	SequenceAppointments = "appointments"
	SequenceBills        = "bills"
)

const (
	CodePrefixPatient     = "PAT"
	CodePrefixDoctor      = "DOC"
	CodePrefixAppointment = "APT"
	CodePrefixBill        = "INV"
)

const (
	RedisSessionKeyFormat         = "session:%s"
	RedisAppointmentLockKeyFormat = "appointment_lock:%s:%s:%s"
	RedisWorkerLeaderLockKey      = "maintenance:leader"
)

const (
	EventsExchangeName             = "medicore.events"
	EventAppointmentScheduledKey   = "appointment.scheduled"
	EventAppointmentCancelledKey   = "appointment.cancelled"
	EventBillPaidKey               = "bill.paid"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)
