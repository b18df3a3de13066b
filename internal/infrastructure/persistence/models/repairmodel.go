package models

// RepairModel is the GORM model for repair_requests.
type RepairModel struct {
	ID                uint    `gorm:"primaryKey"`
	Title             string  `gorm:"size:200;not null"`
	Description       string  `gorm:"type:text;not null"`
	CategoryID        uint    `gorm:"not null;index"`
	Location          string  `gorm:"size:200;not null"`
	Priority          string  `gorm:"size:20;not null;index"`
	Status            string  `gorm:"size:20;not null;index"`
	RequesterID       uint    `gorm:"not null;index"`
	AssigneeID        *uint   `gorm:"index"`
	CompletionDetails *string `gorm:"type:text"`
	ImagePath         *string `gorm:"size:500"`
	Version           int     `gorm:"not null;default:1"`
	CreatedAt         int64   `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt         int64   `gorm:"autoUpdateTime:milli;not null"`
	CompletedAt       *int64

	// Child rows are removed explicitly by the repository, in dependency order.
}

func (RepairModel) TableName() string {
	return "repair_requests"
}

// RepairImageModel holds photos attached at submission or edit time.
type RepairImageModel struct {
	ID           uint   `gorm:"primaryKey"`
	RepairID     uint   `gorm:"not null;index"`
	FilePath     string `gorm:"size:500;not null"`
	OriginalName string `gorm:"size:255;not null"`
	FileSize     int64  `gorm:"not null"`
	UploadedAt   int64  `gorm:"autoCreateTime:milli;not null"`
}

func (RepairImageModel) TableName() string {
	return "repair_images"
}

// CompletionImageModel holds photos attached when a repair is completed.
type CompletionImageModel struct {
	ID           uint   `gorm:"primaryKey"`
	RepairID     uint   `gorm:"not null;index"`
	FilePath     string `gorm:"size:500;not null"`
	OriginalName string `gorm:"size:255;not null"`
	FileSize     int64  `gorm:"not null"`
	UploadedAt   int64  `gorm:"autoCreateTime:milli;not null"`
}

func (CompletionImageModel) TableName() string {
	return "completion_images"
}

// StatusHistoryModel is the append-only status log.
type StatusHistoryModel struct {
	ID        uint    `gorm:"primaryKey"`
	RepairID  uint    `gorm:"not null;index"`
	OldStatus string  `gorm:"size:20;not null"`
	NewStatus string  `gorm:"size:20;not null"`
	Notes     *string `gorm:"type:text"`
	ChangedBy uint    `gorm:"not null"`
	CreatedAt int64   `gorm:"autoCreateTime:milli;not null;index"`
}

func (StatusHistoryModel) TableName() string {
	return "status_history"
}
