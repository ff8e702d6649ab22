package account

import (
	"time"

	"github.com/google/uuid"
)

type CreateAccountRequest struct {
	Name     string     `json:"name" binding:"required,min=2,max=255"`
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=8,max=72"`
	Role     string     `json:"role" binding:"required,oneof=ORG_ADMIN CHIEF_TEACHING CHIEF_ADMIN_TECHNICAL CHIEF_CONTRACT EMPLOYEE"`
	PersonID *uuid.UUID `json:"person_id" binding:"omitempty"`
}

type UpdateAccountRequest struct {
	Name     *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Role     *string    `json:"role" binding:"omitempty,oneof=ORG_ADMIN CHIEF_TEACHING CHIEF_ADMIN_TECHNICAL CHIEF_CONTRACT EMPLOYEE"`
	PersonID *uuid.UUID `json:"person_id" binding:"omitempty"`
	IsActive *bool      `json:"is_active" binding:"omitempty"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type AccountResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	PersonID  *uuid.UUID `json:"person_id,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}
