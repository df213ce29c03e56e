package utils

import (
	"medicore-service/internal/pkg/dto/requests"
	"strings"
)

func cleanWhiteSpaceFromEachStringOfAnArray(input []string) []string {
	sanitizedArray := make([]string, len(input))
	for i, v := range input {
		sanitizedArray[i] = strings.TrimSpace(v)
	}
	return sanitizedArray
}

func SanitizeRegisterPatientRequest(input *requests.RegisterPatient) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FullName = strings.TrimSpace(input.FullName)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	input.DateOfBirth = strings.TrimSpace(input.DateOfBirth)
	input.Gender = strings.ToLower(strings.TrimSpace(input.Gender))
}

func SanitizeLoginUserRequest(input *requests.LoginUser) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
}

func SanitizeCreateStaffUserRequest(input *requests.CreateStaffUser) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FullName = strings.TrimSpace(input.FullName)
	input.Role = strings.ToLower(strings.TrimSpace(input.Role))
}

func SanitizeCreatePatientRequest(input *requests.CreatePatient) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	input.DateOfBirth = strings.TrimSpace(input.DateOfBirth)
	input.Gender = strings.ToLower(strings.TrimSpace(input.Gender))
	input.Address = strings.TrimSpace(input.Address)
	input.BloodType = strings.ToUpper(strings.TrimSpace(input.BloodType))
	input.Allergies = cleanWhiteSpaceFromEachStringOfAnArray(input.Allergies)
	input.MedicalNotes = strings.TrimSpace(input.MedicalNotes)
}

func SanitizeUpdatePatientRequest(input *requests.UpdatePatient) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	input.Address = strings.TrimSpace(input.Address)
	input.BloodType = strings.ToUpper(strings.TrimSpace(input.BloodType))
	input.Allergies = cleanWhiteSpaceFromEachStringOfAnArray(input.Allergies)
	input.MedicalNotes = strings.TrimSpace(input.MedicalNotes)
}

func SanitizeCreateDoctorRequest(input *requests.CreateDoctor) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	input.Specialty = strings.TrimSpace(input.Specialty)
	input.LicenseNumber = strings.TrimSpace(input.LicenseNumber)
}

func SanitizeUpdateDoctorRequest(input *requests.UpdateDoctor) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	input.Specialty = strings.TrimSpace(input.Specialty)
	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
}

func SanitizeCreateAppointmentRequest(input *requests.CreateAppointment) {
	input.PatientID = strings.TrimSpace(input.PatientID)
	input.DoctorID = strings.TrimSpace(input.DoctorID)
	input.Date = strings.TrimSpace(input.Date)
	input.Time = strings.TrimSpace(input.Time)
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
	input.Priority = strings.ToLower(strings.TrimSpace(input.Priority))
	input.Reason = strings.TrimSpace(input.Reason)
	input.Notes = strings.TrimSpace(input.Notes)
}

func SanitizeUpdateAppointmentStatusRequest(input *requests.UpdateAppointmentStatus) {
	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
	input.Notes = strings.TrimSpace(input.Notes)
}

func SanitizeCancelAppointmentRequest(input *requests.CancelAppointment) {
	input.Reason = strings.TrimSpace(input.Reason)
}

func SanitizeCreateBillRequest(input *requests.CreateBill) {
	input.PatientID = strings.TrimSpace(input.PatientID)
	input.AppointmentID = strings.TrimSpace(input.AppointmentID)
	input.Notes = strings.TrimSpace(input.Notes)
	for i := range input.Items {
		input.Items[i].Description = strings.TrimSpace(input.Items[i].Description)
	}
}

func SanitizeUpdateBillRequest(input *requests.UpdateBill) {
	input.Notes = strings.TrimSpace(input.Notes)
	for i := range input.Items {
		input.Items[i].Description = strings.TrimSpace(input.Items[i].Description)
	}
}

func SanitizeRecordPaymentRequest(input *requests.RecordPayment) {
	input.Method = strings.ToLower(strings.TrimSpace(input.Method))
	input.Reference = strings.TrimSpace(input.Reference)
}

func SanitizeCancelBillRequest(input *requests.CancelBill) {
	input.Reason = strings.TrimSpace(input.Reason)
}
