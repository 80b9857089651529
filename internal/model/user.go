package model

import (
	"net/mail"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID          int64       `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Password    string      `json:"-"`
	Role        Role        `json:"role"`
	Permissions Permissions `json:"permissions"`
	IsActive    bool        `json:"is_active"`
	LastLogin   *time.Time  `json:"last_login"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) HasPermission(name string) bool {
	return u.Permissions.Has(name)
}

type UserCreateRequest struct {
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	Password    string       `json:"password"`
	Role        Role         `json:"role"`
	Permissions *Permissions `json:"permissions"`
}

func (p UserCreateRequest) Validate() []string {
	var errs []string
	name := strings.TrimSpace(p.Username)
	if len(name) < 3 || len(name) > 50 {
		errs = append(errs, "Nom d'utilisateur invalide (3 à 50 caractères)")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(p.Email)); err != nil {
		errs = append(errs, "Email invalide")
	}
	if len(p.Password) < 6 {
		errs = append(errs, "Mot de passe trop court (6 caractères minimum)")
	}
	if p.Role != "" && !p.Role.Valid() {
		errs = append(errs, "Rôle invalide")
	}
	return errs
}

// UserUpdateRequest carries only the fields the admin screen can touch.
// Nil pointers mean "leave unchanged".
type UserUpdateRequest struct {
	Email       *string      `json:"email"`
	Password    *string      `json:"password"`
	Role        *Role        `json:"role"`
	Permissions *Permissions `json:"permissions"`
	IsActive    *bool        `json:"is_active"`
}

type LoginRequest struct {
	Login    string `json:"login"` // username or email
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
