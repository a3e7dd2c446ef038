package models

import "time"

// RoleAdmin is the only role the system issues.
const RoleAdmin = "admin"

// AdminUser mirrors an identity-provider user record that carries the admin
// claim. The document ID equals the provider UID.
type AdminUser struct {
	UID         string    `json:"uid" firestore:"-"`
	Email       string    `json:"email" firestore:"email" validate:"required,email"`
	DisplayName string    `json:"displayName" firestore:"displayName" validate:"required,notblank"`
	Role        string    `json:"role" firestore:"role"`
	Permissions []string  `json:"permissions" firestore:"permissions"`
	IsActive    bool      `json:"isActive" firestore:"isActive"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
}
