package models

import "time"

// ClinicalRecord is one entry of a patient's clinical history.
type ClinicalRecord struct {
	ID        string    `bson:"id" json:"id"`
	Date      time.Time `bson:"date" json:"date"`
	Note      string    `bson:"note" json:"note"`
	Diagnosis string    `bson:"diagnosis,omitempty" json:"diagnosis,omitempty"`
}

// PatientFile references an object uploaded to external storage.
type PatientFile struct {
	Name string    `bson:"name" json:"name"`
	URL  string    `bson:"url" json:"url"`
	Type string    `bson:"type" json:"type"`
	Date time.Time `bson:"date" json:"date"`
}

// Patient is a contact record scoped to exactly one professional,
// identified by national ID (cedula) within that scope.
type Patient struct {
	ID              string           `bson:"id" json:"id"`
	ProfessionalID  string           `bson:"professionalId" json:"professionalId"`
	Cedula          string           `bson:"cedula" json:"cedula"`
	Name            string           `bson:"name" json:"name"`
	Phone           string           `bson:"phone,omitempty" json:"phone,omitempty"`
	Email           string           `bson:"email,omitempty" json:"email,omitempty"`
	ClinicalHistory []ClinicalRecord `bson:"clinicalHistory" json:"clinicalHistory"`
	Files           []PatientFile    `bson:"files,omitempty" json:"files,omitempty"`
	CreatedAt       time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time        `bson:"updatedAt" json:"updatedAt"`
}
