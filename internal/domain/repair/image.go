package repair

import (
	"fmt"
	"time"
)

type ImageKind string

const (
	ImageKindRepair     ImageKind = "repair"
	ImageKindCompletion ImageKind = "completion"
)

func (k ImageKind) IsValid() bool {
	return k == ImageKindRepair || k == ImageKindCompletion
}

// Image is a stored photo attached to a repair, either at submission time
// or as evidence of completion.
type Image struct {
	id           uint
	repairID     uint
	kind         ImageKind
	filePath     string
	originalName string
	fileSize     int64
	uploadedAt   time.Time
}

func NewImage(repairID uint, kind ImageKind, filePath, originalName string, fileSize int64) (*Image, error) {
	if repairID == 0 {
		return nil, fmt.Errorf("repair ID is required")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid image kind: %s", kind)
	}
	if filePath == "" {
		return nil, fmt.Errorf("file path is required")
	}
	return &Image{
		repairID:     repairID,
		kind:         kind,
		filePath:     filePath,
		originalName: originalName,
		fileSize:     fileSize,
		uploadedAt:   time.Now(),
	}, nil
}

func ReconstructImage(id, repairID uint, kind ImageKind, filePath, originalName string, fileSize int64, uploadedAt time.Time) *Image {
	return &Image{
		id:           id,
		repairID:     repairID,
		kind:         kind,
		filePath:     filePath,
		originalName: originalName,
		fileSize:     fileSize,
		uploadedAt:   uploadedAt,
	}
}

func (i *Image) ID() uint              { return i.id }
func (i *Image) RepairID() uint        { return i.repairID }
func (i *Image) Kind() ImageKind       { return i.kind }
func (i *Image) FilePath() string      { return i.filePath }
func (i *Image) OriginalName() string  { return i.originalName }
func (i *Image) FileSize() int64       { return i.fileSize }
func (i *Image) UploadedAt() time.Time { return i.uploadedAt }

func (i *Image) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("image ID is already set")
	}
	i.id = id
	return nil
}
