package models

import "go.mongodb.org/mongo-driver/bson"

type EmergencyContact struct {
	Name         string `json:"name" bson:"name"`
	PhoneNumber  string `json:"phone_number" bson:"phone_number"`
	Relationship string `json:"relationship" bson:"relationship"`
}

type Patient struct {
	ID               string            `json:"id" bson:"_id,omitempty"`
	Code             string            `json:"code" bson:"code"`
	UserID           string            `json:"user_id,omitempty" bson:"user_id,omitempty"`
	FullName         string            `json:"full_name" bson:"full_name"`
	Email            string            `json:"email" bson:"email"`
	PhoneNumber      string            `json:"phone_number" bson:"phone_number"`
	DateOfBirth      string            `json:"date_of_birth" bson:"date_of_birth"`
	Gender           string            `json:"gender" bson:"gender"`
	Address          string            `json:"address,omitempty" bson:"address,omitempty"`
	BloodType        string            `json:"blood_type,omitempty" bson:"blood_type,omitempty"`
	Allergies        []string          `json:"allergies,omitempty" bson:"allergies,omitempty"`
	MedicalNotes     string            `json:"medical_notes,omitempty" bson:"medical_notes,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty" bson:"emergency_contact,omitempty"`
	PhotoObjectName  string            `json:"photo_object_name,omitempty" bson:"photo_object_name,omitempty"`
	Active           bool              `json:"active" bson:"active"`
	TimeModel        `bson:",inline"`
}

func (p *Patient) ConvertToBsonM() bson.M {
	doc := bson.M{
		"code":              p.Code,
		"user_id":           p.UserID,
		"full_name":         p.FullName,
		"email":             p.Email,
		"phone_number":      p.PhoneNumber,
		"date_of_birth":     p.DateOfBirth,
		"gender":            p.Gender,
		"address":           p.Address,
		"blood_type":        p.BloodType,
		"allergies":         p.Allergies,
		"medical_notes":     p.MedicalNotes,
		"photo_object_name": p.PhotoObjectName,
		"active":            p.Active,
		"updated_at":        p.UpdatedAt,
	}
	if p.EmergencyContact != nil {
		doc["emergency_contact"] = p.EmergencyContact
	}
	if p.DeletedAt != nil {
		doc["deleted_at"] = p.DeletedAt
	}
	return doc
}
