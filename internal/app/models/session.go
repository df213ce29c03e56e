package models

import "medicore-service/internal/pkg/constvars"

type Session struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	PatientID string `json:"patient_id,omitempty"`
	DoctorID  string `json:"doctor_id,omitempty"`
}

func (s *Session) IsPatient() bool {
	return s.Role == constvars.RolePatient
}

func (s *Session) IsDoctor() bool {
	return s.Role == constvars.RoleDoctor
}

// IsStaff reports whether the session belongs to back-office personnel.
func (s *Session) IsStaff() bool {
	return s.Role == constvars.RoleAdmin || s.Role == constvars.RoleReceptionist
}
