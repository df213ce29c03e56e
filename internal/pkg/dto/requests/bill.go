package requests

type BillLineItem struct {
	Description string  `json:"description" validate:"required,min=2,max=255"`
	Quantity    int     `json:"quantity" validate:"required,gte=1"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

type CreateBill struct {
	PatientID     string         `json:"patient_id" validate:"required"`
	AppointmentID string         `json:"appointment_id,omitempty"`
	Items         []BillLineItem `json:"items" validate:"required,min=1,dive"`
	Discount      float64        `json:"discount,omitempty" validate:"omitempty,gte=0"`
	Tax           float64        `json:"tax,omitempty" validate:"omitempty,gte=0"`
	DueDate       string         `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         string         `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type UpdateBill struct {
	Items    []BillLineItem `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	Discount *float64       `json:"discount,omitempty" validate:"omitempty,gte=0"`
	Tax      *float64       `json:"tax,omitempty" validate:"omitempty,gte=0"`
	DueDate  string         `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes    string         `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type RecordPayment struct {
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Method    string  `json:"method" validate:"required,oneof=cash card insurance bank_transfer"`
	Reference string  `json:"reference,omitempty" validate:"omitempty,max=100"`
}

type CancelBill struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

type FindAllBills struct {
	PatientID string
	Status    string
	Page      int
	PageSize  int
}
