package dto

import (
	"path"
	"time"

	"repairdesk/internal/domain/repair"
	"repairdesk/internal/shared/constants"
)

type RepairDTO struct {
	ID                uint         `json:"id"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	DescriptionHTML   string       `json:"description_html,omitempty"`
	CategoryID        uint         `json:"category_id"`
	CategoryName      string       `json:"category_name"`
	Location          string       `json:"location"`
	Priority          string       `json:"priority"`
	Status            string       `json:"status"`
	RequesterID       uint         `json:"requester_id"`
	RequesterName     string       `json:"requester_name"`
	RequesterEmail    string       `json:"requester_email"`
	AssigneeID        *uint        `json:"assignee_id"`
	AssigneeName      *string      `json:"assignee_name"`
	CompletionDetails *string      `json:"completion_details"`
	ImagePath         *string      `json:"image_path,omitempty"`
	ImageURL          *string      `json:"image_url,omitempty"`
	Version           int          `json:"version"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
	CompletedAt       *time.Time   `json:"completed_at"`
	Images            []ImageDTO   `json:"images"`
	CompletionImages  []ImageDTO   `json:"completion_images"`
	History           []HistoryDTO `json:"history"`
}

type ImageDTO struct {
	ID           uint      `json:"id"`
	FilePath     string    `json:"file_path"`
	URL          string    `json:"url"`
	OriginalName string    `json:"original_name"`
	FileSize     int64     `json:"file_size"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type HistoryDTO struct {
	ID            uint      `json:"id"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	Notes         *string   `json:"notes"`
	ChangedBy     uint      `json:"changed_by"`
	ChangedByName string    `json:"changed_by_name"`
	CreatedAt     time.Time `json:"created_at"`
}

// FileURL maps a stored relative path to its public URL.
func FileURL(relPath string) string {
	return path.Join(constants.UploadsURLPrefix, relPath)
}

// ToRepairDTO converts a read model. Nested collections are included when
// the view carries them.
func ToRepairDTO(v *repair.RepairView) *RepairDTO {
	if v == nil {
		return nil
	}

	d := &RepairDTO{
		ID:                v.ID,
		Title:             v.Title,
		Description:       v.Description,
		CategoryID:        v.CategoryID,
		CategoryName:      v.CategoryName,
		Location:          v.Location,
		Priority:          v.Priority,
		Status:            v.Status,
		RequesterID:       v.RequesterID,
		RequesterName:     v.RequesterName,
		RequesterEmail:    v.RequesterEmail,
		AssigneeID:        v.AssigneeID,
		AssigneeName:      v.AssigneeName,
		CompletionDetails: v.CompletionDetails,
		ImagePath:         v.LegacyImagePath,
		Version:           v.Version,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
		CompletedAt:       v.CompletedAt,
	}
	if v.LegacyImagePath != nil {
		url := FileURL(*v.LegacyImagePath)
		d.ImageURL = &url
	}

	if v.Images != nil {
		d.Images = toImageDTOs(v.Images)
	}
	if v.CompletionImages != nil {
		d.CompletionImages = toImageDTOs(v.CompletionImages)
	}
	if v.History != nil {
		d.History = make([]HistoryDTO, len(v.History))
		for i, h := range v.History {
			d.History[i] = HistoryDTO{
				ID:            h.ID,
				OldStatus:     h.OldStatus,
				NewStatus:     h.NewStatus,
				Notes:         h.Notes,
				ChangedBy:     h.ChangedBy,
				ChangedByName: h.ChangedByName,
				CreatedAt:     h.CreatedAt,
			}
		}
	}
	return d
}

func ToRepairDTOs(views []*repair.RepairView) []*RepairDTO {
	out := make([]*RepairDTO, len(views))
	for i, v := range views {
		out[i] = ToRepairDTO(v)
	}
	return out
}

func toImageDTOs(images []repair.ImageView) []ImageDTO {
	out := make([]ImageDTO, len(images))
	for i, img := range images {
		out[i] = ImageDTO{
			ID:           img.ID,
			FilePath:     img.FilePath,
			URL:          FileURL(img.FilePath),
			OriginalName: img.OriginalName,
			FileSize:     img.FileSize,
			UploadedAt:   img.UploadedAt,
		}
	}
	return out
}
