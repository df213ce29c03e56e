package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type BillStatus string

const (
	BillPending   BillStatus = "pending"
	BillPartial   BillStatus = "partial"
	BillPaid      BillStatus = "paid"
	BillOverdue   BillStatus = "overdue"
	BillCancelled BillStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentInsurance    PaymentMethod = "insurance"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

type BillLineItem struct {
	Description string  `json:"description" bson:"description"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	UnitPrice   float64 `json:"unit_price" bson:"unit_price"`
	LineTotal   float64 `json:"line_total" bson:"line_total"`
}

type BillPayment struct {
	Amount     float64       `json:"amount" bson:"amount"`
	Method     PaymentMethod `json:"method" bson:"method"`
	Reference  string        `json:"reference,omitempty" bson:"reference,omitempty"`
	ReceivedBy string        `json:"received_by" bson:"received_by"`
	PaidAt     time.Time     `json:"paid_at" bson:"paid_at"`
}

type Bill struct {
	ID            string         `json:"id" bson:"_id,omitempty"`
	Number        string         `json:"number" bson:"number"`
	PatientID     string         `json:"patient_id" bson:"patient_id"`
	AppointmentID string         `json:"appointment_id,omitempty" bson:"appointment_id,omitempty"`
	Items         []BillLineItem `json:"items" bson:"items"`
	Subtotal      float64        `json:"subtotal" bson:"subtotal"`
	Discount      float64        `json:"discount" bson:"discount"`
	Tax           float64        `json:"tax" bson:"tax"`
	Total         float64        `json:"total" bson:"total"`
	PaidAmount    float64        `json:"paid_amount" bson:"paid_amount"`
	Balance       float64        `json:"balance" bson:"balance"`
	Status        BillStatus     `json:"status" bson:"status"`
	DueDate       time.Time      `json:"due_date" bson:"due_date"`
	Payments      []BillPayment  `json:"payments,omitempty" bson:"payments,omitempty"`
	Notes         string         `json:"notes,omitempty" bson:"notes,omitempty"`
	TimeModel     `bson:",inline"`
}

func (b *Bill) ConvertToBsonM() bson.M {
	doc := bson.M{
		"number":         b.Number,
		"patient_id":     b.PatientID,
		"appointment_id": b.AppointmentID,
		"items":          b.Items,
		"subtotal":       b.Subtotal,
		"discount":       b.Discount,
		"tax":            b.Tax,
		"total":          b.Total,
		"paid_amount":    b.PaidAmount,
		"balance":        b.Balance,
		"status":         b.Status,
		"due_date":       b.DueDate,
		"payments":       b.Payments,
		"notes":          b.Notes,
		"updated_at":     b.UpdatedAt,
	}
	if b.DeletedAt != nil {
		doc["deleted_at"] = b.DeletedAt
	}
	return doc
}
