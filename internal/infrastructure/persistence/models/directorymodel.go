package models

// UserModel is the subset of the users table this service reads.
type UserModel struct {
	ID             uint   `gorm:"primaryKey"`
	FullName       string `gorm:"size:100;not null"`
	Email          string `gorm:"uniqueIndex;size:255;not null"`
	Role           string `gorm:"size:20;not null;default:'user';index"`
	TelegramChatID *int64
	CreatedAt      int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt      int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (UserModel) TableName() string {
	return "users"
}

type CategoryModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:100;not null"`
	Description string `gorm:"size:500"`
}

func (CategoryModel) TableName() string {
	return "categories"
}
