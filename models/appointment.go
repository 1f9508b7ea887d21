package models

import (
	"fmt"
	"time"
)

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// ParseAppointmentStatus validates a raw status string at the input boundary.
func ParseAppointmentStatus(raw string) (AppointmentStatus, error) {
	switch s := AppointmentStatus(raw); s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return s, nil
	}
	return "", fmt.Errorf("invalid appointment status %q", raw)
}

// PaymentStatus tracks whether an appointment has been paid.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// PaymentMethod is how a payment was collected.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
	MethodOther    PaymentMethod = "other"
)

func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch m := PaymentMethod(raw); m {
	case MethodCash, MethodCard, MethodTransfer, MethodOther:
		return m, nil
	}
	return "", fmt.Errorf("invalid payment method %q", raw)
}

// Payment is embedded on the appointment document.
type Payment struct {
	Status         PaymentStatus `bson:"status" json:"status"`
	Amount         float64       `bson:"amount" json:"amount"`
	Method         PaymentMethod `bson:"method" json:"method"`
	PaidAt         *time.Time    `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	StripeIntentID string        `bson:"stripeIntentId,omitempty" json:"stripeIntentId,omitempty"`
}

// Appointment is a booked interval owned by a professional.
// Invariant enforced at write time: Start < End.
type Appointment struct {
	ID             string            `bson:"id" json:"id"`
	ProfessionalID string            `bson:"professionalId" json:"professionalId"`
	PatientID      string            `bson:"patientId" json:"patientId"`
	Start          time.Time         `bson:"start" json:"start"`
	End            time.Time         `bson:"end" json:"end"`
	Cost           float64           `bson:"cost" json:"cost"`
	Status         AppointmentStatus `bson:"status" json:"status"`
	Notes          string            `bson:"notes,omitempty" json:"notes,omitempty"`
	Payment        Payment           `bson:"payment" json:"payment"`
	CreatedAt      time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Interval returns the appointment's time range as a calendar interval.
func (a *Appointment) Interval() CalendarInterval {
	return CalendarInterval{Start: a.Start, End: a.End}
}
