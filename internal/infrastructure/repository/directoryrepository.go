package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"repairdesk/internal/domain/directory"
	"repairdesk/internal/infrastructure/persistence/models"
	"repairdesk/internal/shared/authorization"
	"repairdesk/internal/shared/db"
)

var (
	ErrUserNotFound     = directory.ErrUserNotFound
	ErrCategoryNotFound = directory.ErrCategoryNotFound
)

// UserRepository reads users maintained by the account service.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*directory.User, error) {
	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return userToDomain(&model), nil
}

func (r *UserRepository) ListNotifiable(ctx context.Context, roles []authorization.UserRole) ([]*directory.User, error) {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = role.String()
	}

	var rows []models.UserModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("role IN ? AND telegram_chat_id IS NOT NULL", names).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifiable users: %w", err)
	}

	users := make([]*directory.User, len(rows))
	for i := range rows {
		users[i] = userToDomain(&rows[i])
	}
	return users, nil
}

func userToDomain(m *models.UserModel) *directory.User {
	return &directory.User{
		ID:             m.ID,
		FullName:       m.FullName,
		Email:          m.Email,
		Role:           authorization.ParseUserRole(m.Role),
		TelegramChatID: m.TelegramChatID,
	}
}

// CategoryRepository reads repair categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*directory.Category, error) {
	var model models.CategoryModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &directory.Category{ID: model.ID, Name: model.Name, Description: model.Description}, nil
}

func (r *CategoryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.CategoryModel{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check category: %w", err)
	}
	return count > 0, nil
}
