package repair

import "time"

// RepairView is the denormalised read model of a repair.
type RepairView struct {
	ID                uint
	Title             string
	Description       string
	CategoryID        uint
	CategoryName      string
	Location          string
	Priority          string
	Status            string
	RequesterID       uint
	RequesterName     string
	RequesterEmail    string
	AssigneeID        *uint
	AssigneeName      *string
	CompletionDetails *string
	LegacyImagePath   *string
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CompletedAt       *time.Time

	// Populated only for single-record reads.
	Images           []ImageView
	CompletionImages []ImageView
	History          []HistoryView
}

type ImageView struct {
	ID           uint
	FilePath     string
	OriginalName string
	FileSize     int64
	UploadedAt   time.Time
}

type HistoryView struct {
	ID            uint
	OldStatus     string
	NewStatus     string
	Notes         *string
	ChangedBy     uint
	ChangedByName string
	CreatedAt     time.Time
}
