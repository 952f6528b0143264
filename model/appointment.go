package model

import "time"

// Appointment statuses. Every appointment starts out pending; any status may
// be set from any other via the update endpoint (the graph is intentionally
// unconstrained).
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Patient genders accepted on booking.
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderPrivate = "private"
)

// Consultation modes.
const (
	ModeVoice = "voice"
	ModeVideo = "video"
)

// Appointment is an anonymous booking; it carries the patient's contact data
// directly and is not linked to a User account. Deletion is a hard delete,
// so there is deliberately no DeletedAt column.
type Appointment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PatientName     string    `gorm:"type:varchar(100);not null" json:"patientName"`
	PatientNumber   string    `gorm:"type:varchar(10);not null" json:"patientNumber"`
	PatientEmail    string    `gorm:"type:varchar(191)" json:"patientEmail,omitempty"`
	PatientGender   string    `gorm:"type:varchar(10);not null" json:"patientGender"`
	AppointmentTime time.Time `gorm:"not null" json:"appointmentTime"`
	PreferredMode   string    `gorm:"type:varchar(10);not null" json:"preferredMode"`
	Status          string    `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

// IsValidStatus reports whether s is one of the defined appointment statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsValidGender reports whether s is one of the accepted patient genders.
func IsValidGender(s string) bool {
	switch s {
	case GenderMale, GenderFemale, GenderPrivate:
		return true
	}
	return false
}

// IsValidMode reports whether s is one of the consultation modes.
func IsValidMode(s string) bool {
	switch s {
	case ModeVoice, ModeVideo:
		return true
	}
	return false
}
