package models

import "time"

// Security carries credentials that must never be serialized to clients.
type Security struct {
	Password     string `bson:"-" json:"password,omitempty"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	Token        string `bson:"-" json:"token,omitempty"`
	TokenHash    string `bson:"tokenHash,omitempty" json:"-"`
	FCMToken     string `bson:"fcmToken,omitempty" json:"-"`
}

// Professional is the practitioner account that owns patients, appointments
// and a weekly availability schedule.
type Professional struct {
	ID                  string              `bson:"id" json:"id"`
	Email               string              `bson:"email" json:"email"`
	Name                string              `bson:"name" json:"name"`
	Specialty           string              `bson:"specialty" json:"specialty"`
	MedicalRegistration string              `bson:"medicalRegistration" json:"medicalRegistration"`
	Security            Security            `bson:"security" json:"-"`
	Availability        *WeeklyAvailability `bson:"availability,omitempty" json:"availability,omitempty"`
	CreatedAt           time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// PublicProfile is the subset of a professional exposed on the public
// booking page. No credentials, no schedule internals.
type PublicProfile struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Specialty           string `json:"specialty"`
	MedicalRegistration string `json:"medicalRegistration"`
}

func (p *Professional) PublicProfile() PublicProfile {
	return PublicProfile{
		ID:                  p.ID,
		Name:                p.Name,
		Specialty:           p.Specialty,
		MedicalRegistration: p.MedicalRegistration,
	}
}

// WeeklyOrDefault returns the stored schedule, synthesizing defaults when
// the professional never configured one.
func (p *Professional) WeeklyOrDefault() WeeklyAvailability {
	if p.Availability == nil {
		return DefaultWeeklyAvailability()
	}
	return *p.Availability
}
