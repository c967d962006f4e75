// internal/domain/user/entity.go
package user

import (
	"database/sql"
	"time"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAgent    Role = "agent"
	RoleAdmin    Role = "admin"
)

// ValidRole reports whether the given role is one of the three known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// User is a registered account. Email is unique and immutable after
// creation; role changes only through an admin action.
type User struct {
	ID    string `json:"id" db:"id"`
	Email string `json:"email" db:"email"`
	Role  Role   `json:"role" db:"role"`

	// Profile
	FullName string         `json:"full_name" db:"full_name"`
	PhotoURL sql.NullString `json:"photo_url,omitempty" db:"photo_url"`
	Phone    sql.NullString `json:"phone,omitempty" db:"phone"`
	Address  sql.NullString `json:"address,omitempty" db:"address"`

	LastLogin sql.NullTime `json:"last_login,omitempty" db:"last_login"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
}

func (u User) IsAdmin() bool    { return u.Role == RoleAdmin }
func (u User) IsAgent() bool    { return u.Role == RoleAgent }
func (u User) IsCustomer() bool { return u.Role == RoleCustomer }
