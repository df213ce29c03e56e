package utils

import (
	"time"

	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/dto/responses"
)

func ConvertPatientToResponse(patient *models.Patient, photoURL string) responses.Patient {
	response := responses.Patient{
		ID:           patient.ID,
		Code:         patient.Code,
		FullName:     patient.FullName,
		Email:        patient.Email,
		PhoneNumber:  patient.PhoneNumber,
		DateOfBirth:  patient.DateOfBirth,
		Age:          CalculateAge(patient.DateOfBirth),
		Gender:       patient.Gender,
		Address:      patient.Address,
		BloodType:    patient.BloodType,
		Allergies:    patient.Allergies,
		MedicalNotes: patient.MedicalNotes,
		PhotoURL:     photoURL,
		Active:       patient.Active,
		CreatedAt:    patient.CreatedAt,
		UpdatedAt:    patient.UpdatedAt,
	}

	if patient.EmergencyContact != nil {
		response.EmergencyContact = &responses.EmergencyContact{
			Name:         patient.EmergencyContact.Name,
			PhoneNumber:  patient.EmergencyContact.PhoneNumber,
			Relationship: patient.EmergencyContact.Relationship,
		}
	}

	return response
}

func ConvertDoctorToResponse(doctor *models.Doctor) responses.Doctor {
	return responses.Doctor{
		ID:                 doctor.ID,
		Code:               doctor.Code,
		FullName:           doctor.FullName,
		Email:              doctor.Email,
		PhoneNumber:        doctor.PhoneNumber,
		Specialty:          doctor.Specialty,
		LicenseNumber:      doctor.LicenseNumber,
		ConsultationFee:    doctor.ConsultationFee,
		Status:             string(doctor.Status),
		WeeklyAvailability: doctor.WeeklyAvailability,
		CreatedAt:          doctor.CreatedAt,
		UpdatedAt:          doctor.UpdatedAt,
	}
}

func ConvertAppointmentToResponse(appointment *models.Appointment, now time.Time) responses.Appointment {
	return responses.Appointment{
		ID:                 appointment.ID,
		Code:               appointment.Code,
		PatientID:          appointment.PatientID,
		DoctorID:           appointment.DoctorID,
		Date:               appointment.Date,
		Time:               appointment.Time,
		DurationMinutes:    appointment.DurationMinutes,
		Type:               string(appointment.Type),
		Priority:           string(appointment.Priority),
		Status:             string(appointment.Status),
		Reason:             appointment.Reason,
		Notes:              appointment.Notes,
		CancellationReason: appointment.CancellationReason,
		IsToday:            IsSameDate(now, appointment.Date),
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
	}
}

func ConvertBillToResponse(bill *models.Bill, paymentPercentage float64) responses.Bill {
	items := make([]responses.BillLineItem, len(bill.Items))
	for i, item := range bill.Items {
		items[i] = responses.BillLineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}

	payments := make([]responses.BillPayment, len(bill.Payments))
	for i, payment := range bill.Payments {
		payments[i] = responses.BillPayment{
			Amount:     payment.Amount,
			Method:     string(payment.Method),
			Reference:  payment.Reference,
			ReceivedBy: payment.ReceivedBy,
			PaidAt:     payment.PaidAt,
		}
	}

	return responses.Bill{
		ID:                bill.ID,
		Number:            bill.Number,
		PatientID:         bill.PatientID,
		AppointmentID:     bill.AppointmentID,
		Items:             items,
		Subtotal:          bill.Subtotal,
		Discount:          bill.Discount,
		Tax:               bill.Tax,
		Total:             bill.Total,
		PaidAmount:        bill.PaidAmount,
		Balance:           bill.Balance,
		Status:            string(bill.Status),
		DueDate:           bill.DueDate,
		Payments:          payments,
		PaymentPercentage: paymentPercentage,
		Notes:             bill.Notes,
		CreatedAt:         bill.CreatedAt,
		UpdatedAt:         bill.UpdatedAt,
	}
}
