// Package directory holds the read-only reference data other services own:
// users and repair categories.
package directory

import (
	"context"
	"errors"

	"repairdesk/internal/shared/authorization"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
)

type User struct {
	ID             uint
	FullName       string
	Email          string
	Role           authorization.UserRole
	TelegramChatID *int64
}

type Category struct {
	ID          uint
	Name        string
	Description string
}

type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*User, error)
	// ListNotifiable returns users with one of roles and a chat id set.
	ListNotifiable(ctx context.Context, roles []authorization.UserRole) ([]*User, error)
}

type CategoryRepository interface {
	GetByID(ctx context.Context, id uint) (*Category, error)
	Exists(ctx context.Context, id uint) (bool, error)
}
