package models

import "go.mongodb.org/mongo-driver/bson"

type User struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	Email     string `json:"email" bson:"email"`
	Password  string `json:"-" bson:"password"`
	FullName  string `json:"full_name" bson:"full_name"`
	Role      string `json:"role" bson:"role"`
	PatientID string `json:"patient_id,omitempty" bson:"patient_id,omitempty"`
	DoctorID  string `json:"doctor_id,omitempty" bson:"doctor_id,omitempty"`
	Active    bool   `json:"active" bson:"active"`
	TimeModel `bson:",inline"`
}

// ConvertToBsonM maps the updatable fields into a bson.M document,
// leaving _id and created_at untouched.
func (u *User) ConvertToBsonM() bson.M {
	doc := bson.M{
		"email":      u.Email,
		"password":   u.Password,
		"full_name":  u.FullName,
		"role":       u.Role,
		"patient_id": u.PatientID,
		"doctor_id":  u.DoctorID,
		"active":     u.Active,
		"updated_at": u.UpdatedAt,
	}
	if u.DeletedAt != nil {
		doc["deleted_at"] = u.DeletedAt
	}
	return doc
}
