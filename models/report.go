package models

import "time"

// ReportRow is one line of the monthly financial report.
type ReportRow struct {
	Date          string        `json:"date"`
	PatientName   string        `json:"patientName"`
	PatientCedula string        `json:"patientCedula"`
	Concept       string        `json:"concept"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Amount        float64       `json:"amount"`
}

// UpcomingAppointment is a dashboard summary entry.
type UpcomingAppointment struct {
	ID          string    `json:"id"`
	PatientName string    `json:"patientName"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
}

// DashboardStats aggregates the professional's landing-page numbers.
type DashboardStats struct {
	TotalPatients       int64                 `json:"totalPatients"`
	AppointmentsToday   int64                 `json:"appointmentsToday"`
	PendingAppointments int64                 `json:"pendingAppointments"`
	MonthIncome         float64               `json:"monthIncome"`
	Upcoming            []UpcomingAppointment `json:"upcoming"`
}
