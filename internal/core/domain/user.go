package domain

import "time"

// Role is the closed set of account categories. Anything outside the
// enumeration is rejected at the edge, never defaulted.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
	RoleShop     Role = "shop"
)

// ParseRole maps a raw string onto the role enumeration.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleCustomer, RoleShop:
		return Role(s), true
	}
	return "", false
}

// User models an account. Username, email and phone number are each
// independently unique. PasswordHash is never serialised; Banned blocks
// every protected operation regardless of role.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Banned       bool      `json:"banned"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CoverURL     string    `json:"cover_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
