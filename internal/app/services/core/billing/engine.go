package billing

import (
	"errors"
	"fmt"
	"time"

	"medicore-service/internal/app/models"
)

// ErrInvalidLineItem rejects line items at construction so a bill can never
// hold a bad row.
var ErrInvalidLineItem = errors.New("invalid line item")

// NewLineItem builds a line item with its derived total. Quantity below one
// and negative unit prices are rejected.
func NewLineItem(description string, quantity int, unitPrice float64) (models.BillLineItem, error) {
	if quantity < 1 {
		return models.BillLineItem{}, fmt.Errorf("%w: quantity %d is below 1", ErrInvalidLineItem, quantity)
	}
	if unitPrice < 0 {
		return models.BillLineItem{}, fmt.Errorf("%w: unit price %.2f is negative", ErrInvalidLineItem, unitPrice)
	}
	return models.BillLineItem{
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   float64(quantity) * unitPrice,
	}, nil
}

// Recompute derives every financial field and the status from the bill's
// inputs. It never mutates its argument: callers persist the returned copy.
//
// Status priority, first match wins:
//  1. cancelled stays cancelled
//  2. balance <= 0 means paid
//  3. any payment means partial
//  4. past the due date means overdue
//  5. otherwise pending
func Recompute(bill models.Bill, now time.Time) models.Bill {
	out := bill

	out.Items = make([]models.BillLineItem, len(bill.Items))
	copy(out.Items, bill.Items)
	out.Payments = make([]models.BillPayment, len(bill.Payments))
	copy(out.Payments, bill.Payments)

	var subtotal float64
	for i, item := range out.Items {
		out.Items[i].LineTotal = float64(item.Quantity) * item.UnitPrice
		subtotal += out.Items[i].LineTotal
	}
	out.Subtotal = subtotal

	total := subtotal - out.Discount + out.Tax
	if total < 0 {
		total = 0
	}
	out.Total = total

	// Balance may go negative on overpayment; it is not clamped.
	out.Balance = out.Total - out.PaidAmount

	switch {
	case bill.Status == models.BillCancelled:
		out.Status = models.BillCancelled
	case out.Balance <= 0:
		out.Status = models.BillPaid
	case out.PaidAmount > 0:
		out.Status = models.BillPartial
	case !out.DueDate.IsZero() && now.After(out.DueDate):
		out.Status = models.BillOverdue
	default:
		out.Status = models.BillPending
	}

	return out
}

// PaymentPercentage reports how much of the total has been paid, capped at
// 100. A zero-total bill reports 0.
func PaymentPercentage(bill models.Bill) float64 {
	if bill.Total <= 0 {
		return 0
	}
	percentage := bill.PaidAmount / bill.Total * 100
	if percentage > 100 {
		return 100
	}
	return percentage
}
