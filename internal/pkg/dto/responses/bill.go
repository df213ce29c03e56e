package responses

import "time"

type BillLineItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

type BillPayment struct {
	Amount     float64   `json:"amount"`
	Method     string    `json:"method"`
	Reference  string    `json:"reference,omitempty"`
	ReceivedBy string    `json:"received_by"`
	PaidAt     time.Time `json:"paid_at"`
}

type Bill struct {
	ID                string         `json:"id"`
	Number            string         `json:"number"`
	PatientID         string         `json:"patient_id"`
	AppointmentID     string         `json:"appointment_id,omitempty"`
	Items             []BillLineItem `json:"items"`
	Subtotal          float64        `json:"subtotal"`
	Discount          float64        `json:"discount"`
	Tax               float64        `json:"tax"`
	Total             float64        `json:"total"`
	PaidAmount        float64        `json:"paid_amount"`
	Balance           float64        `json:"balance"`
	Status            string         `json:"status"`
	DueDate           time.Time      `json:"due_date"`
	Payments          []BillPayment  `json:"payments,omitempty"`
	PaymentPercentage float64        `json:"payment_percentage"`
	Notes             string         `json:"notes,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}
