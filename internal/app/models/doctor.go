package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type DoctorStatus string

const (
	DoctorActive   DoctorStatus = "active"
	DoctorOnLeave  DoctorStatus = "on_leave"
	DoctorInactive DoctorStatus = "inactive"
)

type DayAvailability struct {
	Available bool   `json:"available" bson:"available"`
	Start     string `json:"start,omitempty" bson:"start,omitempty"`
	End       string `json:"end,omitempty" bson:"end,omitempty"`
}

type WeeklyAvailability struct {
	Monday    DayAvailability `json:"monday" bson:"monday"`
	Tuesday   DayAvailability `json:"tuesday" bson:"tuesday"`
	Wednesday DayAvailability `json:"wednesday" bson:"wednesday"`
	Thursday  DayAvailability `json:"thursday" bson:"thursday"`
	Friday    DayAvailability `json:"friday" bson:"friday"`
	Saturday  DayAvailability `json:"saturday" bson:"saturday"`
	Sunday    DayAvailability `json:"sunday" bson:"sunday"`
}

func (w WeeklyAvailability) ForWeekday(day time.Weekday) DayAvailability {
	switch day {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

type Doctor struct {
	ID                 string             `json:"id" bson:"_id,omitempty"`
	Code               string             `json:"code" bson:"code"`
	UserID             string             `json:"user_id,omitempty" bson:"user_id,omitempty"`
	FullName           string             `json:"full_name" bson:"full_name"`
	Email              string             `json:"email" bson:"email"`
	PhoneNumber        string             `json:"phone_number" bson:"phone_number"`
	Specialty          string             `json:"specialty" bson:"specialty"`
	LicenseNumber      string             `json:"license_number" bson:"license_number"`
	ConsultationFee    float64            `json:"consultation_fee" bson:"consultation_fee"`
	Status             DoctorStatus       `json:"status" bson:"status"`
	WeeklyAvailability WeeklyAvailability `json:"weekly_availability" bson:"weekly_availability"`
	TimeModel          `bson:",inline"`
}

func (d *Doctor) ConvertToBsonM() bson.M {
	doc := bson.M{
		"code":                d.Code,
		"user_id":             d.UserID,
		"full_name":           d.FullName,
		"email":               d.Email,
		"phone_number":        d.PhoneNumber,
		"specialty":           d.Specialty,
		"license_number":      d.LicenseNumber,
		"consultation_fee":    d.ConsultationFee,
		"status":              d.Status,
		"weekly_availability": d.WeeklyAvailability,
		"updated_at":          d.UpdatedAt,
	}
	if d.DeletedAt != nil {
		doc["deleted_at"] = d.DeletedAt
	}
	return doc
}
