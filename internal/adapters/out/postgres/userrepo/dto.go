// Package userrepo holds the database mapping for customer accounts.
// Accounts are created and managed by the identity collaborator; this service
// only reads the users table to attach the customer to order listings, so no
// repository methods are exposed here.
package userrepo

import (
	"github.com/google/uuid"
)

// UserDTO represents the database structure for customer accounts.
type UserDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Email string `gorm:"index"`
}

// TableName specifies the database table name for user accounts.
func (UserDTO) TableName() string {
	return "users"
}
