package setting

import (
	"context"
)

// Repository defines the interface for system setting persistence
type Repository interface {
	// GetByCategory retrieves all settings in a category
	GetByCategory(ctx context.Context, category string) ([]*SystemSetting, error)

	// Upsert creates or updates a setting keyed by category and key
	Upsert(ctx context.Context, setting *SystemSetting) error
}
