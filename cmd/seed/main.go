package main

import (
	"context"
	"medicore-service/internal/app/config"
	"medicore-service/internal/app/drivers/database"
	"medicore-service/internal/app/drivers/logger"
	"medicore-service/internal/app/models"
	"medicore-service/internal/app/services/core/billing"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/utils"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var log *logrus.Logger

// Fixture ids are fixed so reruns upsert the same documents instead of
// growing the collections.
const (
	adminUserID        = "665e5d000000000000000a01"
	receptionistUserID = "665e5d000000000000000a02"
	doctorUserID       = "665e5d000000000000000a03"
	patientUserID      = "665e5d000000000000000a04"

	patientOneID   = "665e5d000000000000000b01"
	patientTwoID   = "665e5d000000000000000b02"
	patientThreeID = "665e5d000000000000000b03"

	doctorOneID   = "665e5d000000000000000d01"
	doctorTwoID   = "665e5d000000000000000d02"
	doctorThreeID = "665e5d000000000000000d03"

	appointmentOneID = "665e5d000000000000000e01"
	appointmentTwoID = "665e5d000000000000000e02"

	billOneID = "665e5d000000000000000f01"
	billTwoID = "665e5d000000000000000f02"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log = logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	db := mongoDB.Database(driverConfig.MongoDB.DbName)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	err = database.EnsureIndexes(ctx, db)
	if err != nil {
		log.Fatalf("Error ensuring mongo indexes: %v", err)
	}

	now := time.Now()

	seedPatients(ctx, db, now)
	seedDoctors(ctx, db)
	seedUsers(ctx, db)
	seedAppointments(ctx, db, now)
	seedBills(ctx, db, now)
	bumpCounters(ctx, db)

	err = mongoDB.Disconnect(ctx)
	if err != nil {
		log.Printf("Error disconnecting MongoDB: %v", err)
	}

	log.Println("Seed completed")
}

func seedPatients(ctx context.Context, db *mongo.Database, now time.Time) {
	patients := []struct {
		id      string
		patient models.Patient
	}{
		{
			id: patientOneID,
			patient: models.Patient{
				Code:        utils.GenerateSequentialCode(constvars.CodePrefixPatient, 1),
				UserID:      patientUserID,
				FullName:    "Budi Santoso",
				Email:       "budi.santoso@mail.test",
				PhoneNumber: "+628111000001",
				DateOfBirth: "1988-04-12",
				Gender:      "male",
				Address:     "Jl. Melati 12, Jakarta",
				BloodType:   "O+",
				Allergies:   []string{"penicillin"},
				Active:      true,
			},
		},
		{
			id: patientTwoID,
			patient: models.Patient{
				Code:        utils.GenerateSequentialCode(constvars.CodePrefixPatient, 2),
				FullName:    "Sari Dewi",
				Email:       "sari.dewi@mail.test",
				PhoneNumber: "+628111000002",
				DateOfBirth: "1995-09-30",
				Gender:      "female",
				Address:     "Jl. Kenanga 5, Bandung",
				BloodType:   "A-",
				Active:      true,
			},
		},
		{
			id: patientThreeID,
			patient: models.Patient{
				Code:        utils.GenerateSequentialCode(constvars.CodePrefixPatient, 3),
				FullName:    "Agus Wijaya",
				Email:       "agus.wijaya@mail.test",
				PhoneNumber: "+628111000003",
				DateOfBirth: "1979-01-21",
				Gender:      "male",
				MedicalNotes: "Hypertension, on amlodipine.",
				EmergencyContact: &models.EmergencyContact{
					Name:         "Rina Wijaya",
					PhoneNumber:  "+628111000004",
					Relationship: "spouse",
				},
				Active: true,
			},
		},
	}

	collection := db.Collection(constvars.MongoCollectionPatients)
	for _, fixture := range patients {
		fixture.patient.SetCreatedAtUpdatedAt()
		upsert(ctx, collection, bson.M{"code": fixture.patient.Code}, fixture.id, fixture.patient.ConvertToBsonM())
	}
	log.Printf("Seeded %d patients", len(patients))
}

func seedDoctors(ctx context.Context, db *mongo.Database) {
	fullWeekday := models.DayAvailability{Available: true, Start: "09:00", End: "17:00"}
	morning := models.DayAvailability{Available: true, Start: "08:00", End: "12:00"}

	doctors := []struct {
		id     string
		doctor models.Doctor
	}{
		{
			id: doctorOneID,
			doctor: models.Doctor{
				Code:            utils.GenerateSequentialCode(constvars.CodePrefixDoctor, 1),
				UserID:          doctorUserID,
				FullName:        "Dr. Ratna Kusuma",
				Email:           "ratna.kusuma@medicore.test",
				PhoneNumber:     "+628122000001",
				Specialty:       "cardiology",
				LicenseNumber:   "STR-2019-0451",
				ConsultationFee: 350000,
				Status:          models.DoctorActive,
				WeeklyAvailability: models.WeeklyAvailability{
					Monday:    fullWeekday,
					Tuesday:   fullWeekday,
					Wednesday: fullWeekday,
					Thursday:  fullWeekday,
					Friday:    fullWeekday,
				},
			},
		},
		{
			id: doctorTwoID,
			doctor: models.Doctor{
				Code:            utils.GenerateSequentialCode(constvars.CodePrefixDoctor, 2),
				FullName:        "Dr. Hendra Gunawan",
				Email:           "hendra.gunawan@medicore.test",
				PhoneNumber:     "+628122000002",
				Specialty:       "general practice",
				LicenseNumber:   "STR-2021-1138",
				ConsultationFee: 200000,
				Status:          models.DoctorActive,
				WeeklyAvailability: models.WeeklyAvailability{
					Monday:    morning,
					Wednesday: morning,
					Friday:    morning,
					Saturday:  models.DayAvailability{Available: true, Start: "09:00", End: "13:00"},
				},
			},
		},
		{
			id: doctorThreeID,
			doctor: models.Doctor{
				Code:            utils.GenerateSequentialCode(constvars.CodePrefixDoctor, 3),
				FullName:        "Dr. Maya Putri",
				Email:           "maya.putri@medicore.test",
				PhoneNumber:     "+628122000003",
				Specialty:       "pediatrics",
				LicenseNumber:   "STR-2017-0027",
				ConsultationFee: 275000,
				Status:          models.DoctorOnLeave,
				WeeklyAvailability: models.WeeklyAvailability{
					Tuesday:  models.DayAvailability{Available: true, Start: "10:00", End: "16:00"},
					Thursday: models.DayAvailability{Available: true, Start: "10:00", End: "16:00"},
				},
			},
		},
	}

	collection := db.Collection(constvars.MongoCollectionDoctors)
	for _, fixture := range doctors {
		fixture.doctor.SetCreatedAtUpdatedAt()
		upsert(ctx, collection, bson.M{"code": fixture.doctor.Code}, fixture.id, fixture.doctor.ConvertToBsonM())
	}
	log.Printf("Seeded %d doctors", len(doctors))
}

func seedUsers(ctx context.Context, db *mongo.Database) {
	users := []struct {
		id       string
		password string
		user     models.User
	}{
		{
			id:       adminUserID,
			password: "Admin123!",
			user: models.User{
				Email:    "admin@medicore.test",
				FullName: "System Administrator",
				Role:     constvars.RoleAdmin,
				Active:   true,
			},
		},
		{
			id:       receptionistUserID,
			password: "FrontDesk123!",
			user: models.User{
				Email:    "frontdesk@medicore.test",
				FullName: "Lina Hartono",
				Role:     constvars.RoleReceptionist,
				Active:   true,
			},
		},
		{
			id:       doctorUserID,
			password: "Doctor123!",
			user: models.User{
				Email:    "ratna.kusuma@medicore.test",
				FullName: "Dr. Ratna Kusuma",
				Role:     constvars.RoleDoctor,
				DoctorID: doctorOneID,
				Active:   true,
			},
		},
		{
			id:       patientUserID,
			password: "Patient123!",
			user: models.User{
				Email:     "budi.santoso@mail.test",
				FullName:  "Budi Santoso",
				Role:      constvars.RolePatient,
				PatientID: patientOneID,
				Active:    true,
			},
		},
	}

	collection := db.Collection(constvars.MongoCollectionUsers)
	for _, fixture := range users {
		hashed, err := utils.HashPassword(fixture.password)
		if err != nil {
			log.Fatalf("Error hashing password for %s: %v", fixture.user.Email, err)
		}
		fixture.user.Password = hashed
		fixture.user.SetCreatedAtUpdatedAt()
		upsert(ctx, collection, bson.M{"email": fixture.user.Email}, fixture.id, fixture.user.ConvertToBsonM())
	}
	log.Printf("Seeded %d users", len(users))
}

func seedAppointments(ctx context.Context, db *mongo.Database, now time.Time) {
	// Both visits land on doctor one's next working Monday so reruns stay
	// ahead of the no-show sweep.
	date := nextWeekday(now, time.Monday).Format(models.AppointmentDateLayout)

	appointments := []struct {
		id          string
		appointment models.Appointment
	}{
		{
			id: appointmentOneID,
			appointment: models.Appointment{
				Code:            utils.GenerateSequentialCode(constvars.CodePrefixAppointment, 1),
				PatientID:       patientOneID,
				DoctorID:        doctorOneID,
				Date:            date,
				Time:            "09:00",
				DurationMinutes: 30,
				Type:            models.AppointmentConsultation,
				Priority:        models.PriorityNormal,
				Status:          models.AppointmentScheduled,
				Reason:          "Chest pain during exercise",
			},
		},
		{
			id: appointmentTwoID,
			appointment: models.Appointment{
				Code:            utils.GenerateSequentialCode(constvars.CodePrefixAppointment, 2),
				PatientID:       patientTwoID,
				DoctorID:        doctorOneID,
				Date:            date,
				Time:            "09:30",
				DurationMinutes: 30,
				Type:            models.AppointmentFollowUp,
				Priority:        models.PriorityHigh,
				Status:          models.AppointmentConfirmed,
				Reason:          "Post-procedure checkup",
			},
		},
	}

	collection := db.Collection(constvars.MongoCollectionAppointments)
	for _, fixture := range appointments {
		fixture.appointment.SetCreatedAtUpdatedAt()
		upsert(ctx, collection, bson.M{"code": fixture.appointment.Code}, fixture.id, fixture.appointment.ConvertToBsonM())
	}
	log.Printf("Seeded %d appointments", len(appointments))
}

func seedBills(ctx context.Context, db *mongo.Database, now time.Time) {
	bills := []struct {
		id   string
		bill models.Bill
	}{
		{
			id: billOneID,
			bill: models.Bill{
				Number:    utils.GenerateSequentialCode(constvars.CodePrefixBill, 1),
				PatientID: patientOneID,
				Items: []models.BillLineItem{
					{Description: "Cardiology consultation", Quantity: 1, UnitPrice: 350000},
					{Description: "ECG", Quantity: 1, UnitPrice: 150000},
				},
				Tax:        50000,
				PaidAmount: 550000,
				Payments: []models.BillPayment{
					{
						Amount:     550000,
						Method:     models.PaymentCard,
						Reference:  "SEED-PAY-0001",
						ReceivedBy: "Lina Hartono",
						PaidAt:     now,
					},
				},
				DueDate: now.AddDate(0, 0, 30),
				Notes:   "Settled at the front desk.",
			},
		},
		{
			id: billTwoID,
			bill: models.Bill{
				Number:    utils.GenerateSequentialCode(constvars.CodePrefixBill, 2),
				PatientID: patientTwoID,
				Items: []models.BillLineItem{
					{Description: "General consultation", Quantity: 1, UnitPrice: 200000},
					{Description: "Blood panel", Quantity: 2, UnitPrice: 90000},
				},
				Discount:   30000,
				Tax:        35000,
				PaidAmount: 150000,
				Payments: []models.BillPayment{
					{
						Amount:     150000,
						Method:     models.PaymentCash,
						ReceivedBy: "Lina Hartono",
						PaidAt:     now,
					},
				},
				DueDate: now.AddDate(0, 0, 30),
			},
		},
	}

	collection := db.Collection(constvars.MongoCollectionBills)
	for _, fixture := range bills {
		recomputed := billing.Recompute(fixture.bill, now)
		recomputed.SetCreatedAtUpdatedAt()
		upsert(ctx, collection, bson.M{"number": recomputed.Number}, fixture.id, recomputed.ConvertToBsonM())
	}
	log.Printf("Seeded %d bills", len(bills))
}

// bumpCounters raises each sequence to cover the fixture codes so the next
// API-created record does not collide with a seeded one.
func bumpCounters(ctx context.Context, db *mongo.Database) {
	floors := map[string]int64{
		constvars.SequencePatients:     3,
		constvars.SequenceDoctors:      3,
		constvars.SequenceAppointments: 2,
		constvars.SequenceBills:        2,
	}

	collection := db.Collection(constvars.MongoCollectionCounters)
	for name, floor := range floors {
		_, err := collection.UpdateOne(
			ctx,
			bson.M{"_id": name},
			bson.M{"$max": bson.M{"value": floor}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			log.Fatalf("Error bumping counter %s: %v", name, err)
		}
	}
	log.Printf("Bumped %d counters", len(floors))
}

func upsert(ctx context.Context, collection *mongo.Collection, filter bson.M, id string, doc bson.M) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		log.Fatalf("Error parsing fixture id %s: %v", id, err)
	}

	update := bson.M{
		"$set":         doc,
		"$setOnInsert": bson.M{"_id": objectID, "created_at": time.Now()},
	}
	_, err = collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		log.Fatalf("Error upserting into %s: %v", collection.Name(), err)
	}
}

// nextWeekday returns the next occurrence of day strictly after from.
func nextWeekday(from time.Time, day time.Weekday) time.Time {
	delta := (int(day) - int(from.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return from.AddDate(0, 0, delta)
}
