package models

import "go.mongodb.org/mongo-driver/bson"

const (
	AppointmentDateLayout = "2006-01-02"
	AppointmentTimeLayout = "15:04"
)

type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "scheduled"
	AppointmentConfirmed  AppointmentStatus = "confirmed"
	AppointmentInProgress AppointmentStatus = "in_progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
	AppointmentNoShow     AppointmentStatus = "no_show"
)

type AppointmentType string

const (
	AppointmentConsultation   AppointmentType = "consultation"
	AppointmentFollowUp       AppointmentType = "follow_up"
	AppointmentEmergency      AppointmentType = "emergency"
	AppointmentRoutineCheckup AppointmentType = "routine_checkup"
)

type AppointmentPriority string

const (
	PriorityLow    AppointmentPriority = "low"
	PriorityNormal AppointmentPriority = "normal"
	PriorityHigh   AppointmentPriority = "high"
	PriorityUrgent AppointmentPriority = "urgent"
)

// BlockingAppointmentStatuses are the statuses that hold a doctor's slot.
// Completed, cancelled and no_show appointments release the slot.
var BlockingAppointmentStatuses = []AppointmentStatus{
	AppointmentScheduled,
	AppointmentConfirmed,
	AppointmentInProgress,
}

func (s AppointmentStatus) IsBlocking() bool {
	for _, blocking := range BlockingAppointmentStatuses {
		if s == blocking {
			return true
		}
	}
	return false
}

func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentCompleted || s == AppointmentCancelled || s == AppointmentNoShow
}

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentScheduled:  {AppointmentConfirmed, AppointmentCancelled, AppointmentNoShow},
	AppointmentConfirmed:  {AppointmentInProgress, AppointmentCancelled, AppointmentNoShow},
	AppointmentInProgress: {AppointmentCompleted},
}

func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

type Appointment struct {
	ID                 string              `json:"id" bson:"_id,omitempty"`
	Code               string              `json:"code" bson:"code"`
	PatientID          string              `json:"patient_id" bson:"patient_id"`
	DoctorID           string              `json:"doctor_id" bson:"doctor_id"`
	Date               string              `json:"date" bson:"date"`
	Time               string              `json:"time" bson:"time"`
	DurationMinutes    int                 `json:"duration_minutes" bson:"duration_minutes"`
	Type               AppointmentType     `json:"type" bson:"type"`
	Priority           AppointmentPriority `json:"priority" bson:"priority"`
	Status             AppointmentStatus   `json:"status" bson:"status"`
	Reason             string              `json:"reason,omitempty" bson:"reason,omitempty"`
	Notes              string              `json:"notes,omitempty" bson:"notes,omitempty"`
	CancellationReason string              `json:"cancellation_reason,omitempty" bson:"cancellation_reason,omitempty"`
	TimeModel          `bson:",inline"`
}

func (a *Appointment) ConvertToBsonM() bson.M {
	doc := bson.M{
		"code":                a.Code,
		"patient_id":          a.PatientID,
		"doctor_id":           a.DoctorID,
		"date":                a.Date,
		"time":                a.Time,
		"duration_minutes":    a.DurationMinutes,
		"type":                a.Type,
		"priority":            a.Priority,
		"status":              a.Status,
		"reason":              a.Reason,
		"notes":               a.Notes,
		"cancellation_reason": a.CancellationReason,
		"updated_at":          a.UpdatedAt,
	}
	if a.DeletedAt != nil {
		doc["deleted_at"] = a.DeletedAt
	}
	return doc
}
