package model

import (
	"time"

	"github.com/muhammadheryan/eyewear-store/constant"
)

// UserEntity represents the users table entity
type UserEntity struct {
	ID           string        `db:"id" json:"id"`
	FullName     string        `db:"full_name" json:"full_name"`
	Email        string        `db:"email" json:"email"`
	Phone        string        `db:"phone" json:"phone"`
	PasswordHash string        `db:"password_hash" json:"-"`
	Role         constant.Role `db:"role" json:"role"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time    `db:"updated_at" json:"updated_at,omitempty"`
}

// UserFilter for querying users
type UserFilter struct {
	ID    string
	Email string
	Phone string
}

// RegisterRequest for user sign up
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest for email/password sign in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type LoginResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Token string `json:"token"`
}

type RegisterResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Profile is the public part of a user used for display and authorization.
type Profile struct {
	ID       string        `json:"id"`
	FullName string        `json:"full_name"`
	Role     constant.Role `json:"role"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required"`
}

// Session is a validated token.
type Session struct {
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthChange is delivered to auth-change subscribers.
type AuthChange struct {
	Event  constant.AuthEvent `json:"event"`
	UserID string             `json:"user_id"`
}
