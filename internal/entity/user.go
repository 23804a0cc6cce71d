package entity

import "time"

type Role string

const (
	RoleVolunteer Role = "volunteer"
	RoleAuthority Role = "authority"
)

type User struct {
	ID                int        `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	Phone             string     `json:"phone"`
	Role              Role       `json:"role"`
	IsVerified        bool       `json:"isVerified"`
	VerificationToken *string    `json:"-"`
	CreatedAt         time.Time  `json:"createdAt"`
	LastLogin         *time.Time `json:"lastLogin,omitempty"`
}

// UserRef is the identity slice of a user exposed alongside tasks.
type UserRef struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=255"`
	Phone    string `json:"phone" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=volunteer authority"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  UserRef `json:"user"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"omitempty,min=1,max=255"`
	Phone string `json:"phone"`
}

// AuthUser is the authenticated caller extracted from a verified token.
// Lifecycle operations trust it verbatim.
type AuthUser struct {
	ID    int
	Email string
	Name  string
	Role  Role
}

func (a AuthUser) IsAuthority() bool {
	return a.Role == RoleAuthority
}
