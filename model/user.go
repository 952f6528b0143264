package model

import "time"

// User roles. New registrations always start as a patient.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// User is an account that can authenticate against the API. Emails are
// stored lower-cased and uniqueness is enforced by the database index, so a
// registration race between two requests with the same address is resolved
// by the store rejecting the second insert.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(191);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(100);not null" json:"-"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Role      string    `gorm:"type:varchar(20);not null;default:patient" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsValidRole reports whether s is one of the defined user roles.
func IsValidRole(s string) bool {
	switch s {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}
