package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// RegistrationRequest is the event registration form. Attendee counts and age
// are json.Number so fractional input can be rejected instead of truncated.
type RegistrationRequest struct {
	FullName      string      `json:"full_name" validate:"required,notblank,max=150"`
	Phone         string      `json:"phone" validate:"required,notblank,max=30"`
	Email         string      `json:"email" validate:"omitempty,email"`
	Gender        string      `json:"gender" validate:"required,oneof=male female"`
	Age           json.Number `json:"age" validate:"required"`
	City          string      `json:"city" validate:"required,notblank,max=100"`
	Profession    string      `json:"profession" validate:"required,notblank,max=100"`
	MaritalStatus string      `json:"marital_status" validate:"required,notblank,max=30"`
	Adults        json.Number `json:"adults" validate:"required"`
	Children      json.Number `json:"children"`
}

type RegistrationResponse struct {
	RegistrationID string          `json:"registrationId"`
	TransactionID  string          `json:"transactionId"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaymentStatus  string          `json:"paymentStatus"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,notblank,max=150"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,notblank,max=5000"`
}
