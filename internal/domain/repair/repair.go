package repair

import (
	"fmt"
	"strings"
	"time"

	vo "repairdesk/internal/domain/repair/valueobjects"
)

const (
	maxTitleLength    = 200
	maxLocationLength = 200
)

// Repair is a maintenance request raised by a user and resolved by staff.
type Repair struct {
	id                uint
	title             string
	description       string
	categoryID        uint
	location          string
	priority          vo.Priority
	status            vo.Status
	requesterID       uint
	assigneeID        *uint
	completionDetails *string
	imagePath         *string
	version           int
	versionBumped     bool
	createdAt         time.Time
	updatedAt         time.Time
	completedAt       *time.Time
}

func NewRepair(
	title string,
	description string,
	categoryID uint,
	location string,
	priority vo.Priority,
	requesterID uint,
) (*Repair, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	location = strings.TrimSpace(location)

	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if len([]rune(title)) > maxTitleLength {
		return nil, fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	}
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}
	if categoryID == 0 {
		return nil, fmt.Errorf("category is required")
	}
	if location == "" {
		return nil, fmt.Errorf("location is required")
	}
	if len([]rune(location)) > maxLocationLength {
		return nil, fmt.Errorf("location exceeds maximum length of %d characters", maxLocationLength)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if requesterID == 0 {
		return nil, fmt.Errorf("requester ID is required")
	}

	now := time.Now()
	return &Repair{
		title:       title,
		description: description,
		categoryID:  categoryID,
		location:    location,
		priority:    priority,
		status:      vo.StatusPending,
		requesterID: requesterID,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructRepair(
	id uint,
	title string,
	description string,
	categoryID uint,
	location string,
	priority vo.Priority,
	status vo.Status,
	requesterID uint,
	assigneeID *uint,
	completionDetails *string,
	imagePath *string,
	version int,
	createdAt, updatedAt time.Time,
	completedAt *time.Time,
) (*Repair, error) {
	if id == 0 {
		return nil, fmt.Errorf("repair ID cannot be zero")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &Repair{
		id:                id,
		title:             title,
		description:       description,
		categoryID:        categoryID,
		location:          location,
		priority:          priority,
		status:            status,
		requesterID:       requesterID,
		assigneeID:        assigneeID,
		completionDetails: completionDetails,
		imagePath:         imagePath,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
		completedAt:       completedAt,
	}, nil
}

func (r *Repair) ID() uint {
	return r.id
}

func (r *Repair) Title() string {
	return r.title
}

func (r *Repair) Description() string {
	return r.description
}

func (r *Repair) CategoryID() uint {
	return r.categoryID
}

func (r *Repair) Location() string {
	return r.location
}

func (r *Repair) Priority() vo.Priority {
	return r.priority
}

func (r *Repair) Status() vo.Status {
	return r.status
}

func (r *Repair) RequesterID() uint {
	return r.requesterID
}

func (r *Repair) AssigneeID() *uint {
	return r.assigneeID
}

func (r *Repair) CompletionDetails() *string {
	return r.completionDetails
}

// LegacyImagePath is the single image column used before multi-image
// uploads existed. Nil when absent.
func (r *Repair) LegacyImagePath() *string {
	return r.imagePath
}

func (r *Repair) Version() int {
	return r.version
}

func (r *Repair) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Repair) UpdatedAt() time.Time {
	return r.updatedAt
}

func (r *Repair) CompletedAt() *time.Time {
	return r.completedAt
}

func (r *Repair) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("repair ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("repair ID cannot be zero")
	}
	r.id = id
	return nil
}

// EditFields carries the requester-editable fields. Nil means unchanged.
type EditFields struct {
	Title       *string
	Description *string
	CategoryID  *uint
	Location    *string
	Priority    *vo.Priority
}

// IsEmpty reports whether no field was supplied.
func (f EditFields) IsEmpty() bool {
	return f.Title == nil && f.Description == nil && f.CategoryID == nil &&
		f.Location == nil && f.Priority == nil
}

// ApplyEdit changes only the supplied fields. It validates all of them
// before touching the aggregate.
func (r *Repair) ApplyEdit(f EditFields) error {
	if f.Title != nil {
		t := strings.TrimSpace(*f.Title)
		if t == "" {
			return fmt.Errorf("title cannot be empty")
		}
		if len([]rune(t)) > maxTitleLength {
			return fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
		}
		f.Title = &t
	}
	if f.Description != nil {
		d := strings.TrimSpace(*f.Description)
		if d == "" {
			return fmt.Errorf("description cannot be empty")
		}
		f.Description = &d
	}
	if f.CategoryID != nil && *f.CategoryID == 0 {
		return fmt.Errorf("category cannot be empty")
	}
	if f.Location != nil {
		l := strings.TrimSpace(*f.Location)
		if l == "" {
			return fmt.Errorf("location cannot be empty")
		}
		if len([]rune(l)) > maxLocationLength {
			return fmt.Errorf("location exceeds maximum length of %d characters", maxLocationLength)
		}
		f.Location = &l
	}
	if f.Priority != nil && !f.Priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", *f.Priority)
	}

	if f.Title != nil {
		r.title = *f.Title
	}
	if f.Description != nil {
		r.description = *f.Description
	}
	if f.CategoryID != nil {
		r.categoryID = *f.CategoryID
	}
	if f.Location != nil {
		r.location = *f.Location
	}
	if f.Priority != nil {
		r.priority = *f.Priority
	}
	r.touch(time.Now())
	return nil
}

// ChangeStatus moves the repair to newStatus and returns the history entry
// recording the move. assigneeID and completionDetails are only applied
// when supplied. Entering completed requires non-blank completion details
// and stamps completedAt.
func (r *Repair) ChangeStatus(
	newStatus vo.Status,
	assigneeID *uint,
	completionDetails *string,
	changedBy uint,
	now time.Time,
) (*StatusHistoryEntry, error) {
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", newStatus)
	}
	if !r.status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("cannot transition from %s to %s", r.status, newStatus)
	}

	var details *string
	if completionDetails != nil {
		d := strings.TrimSpace(*completionDetails)
		details = &d
	}
	if newStatus.IsCompleted() && (details == nil || *details == "") {
		return nil, ErrCompletionDetailsRequired
	}

	oldStatus := r.status
	r.status = newStatus
	if assigneeID != nil {
		id := *assigneeID
		r.assigneeID = &id
	}
	if details != nil {
		r.completionDetails = details
	}
	if newStatus.IsCompleted() {
		completedAt := now
		r.completedAt = &completedAt
	}
	r.touch(now)

	var notes *string
	if details != nil && *details != "" {
		notes = details
	}
	return NewStatusHistoryEntry(r.id, oldStatus, newStatus, notes, changedBy, now), nil
}

// ClearLegacyImage drops the legacy image reference and returns the path it
// pointed to.
func (r *Repair) ClearLegacyImage() *string {
	old := r.imagePath
	if old != nil {
		r.imagePath = nil
		r.touch(time.Now())
	}
	return old
}

// touch advances the version at most once per loaded aggregate, so one
// unit of work saves with a single version step.
func (r *Repair) touch(now time.Time) {
	r.updatedAt = now
	if !r.versionBumped {
		r.version++
		r.versionBumped = true
	}
}

// TouchImages records that the image set changed without any field change.
func (r *Repair) TouchImages(now time.Time) {
	r.touch(now)
}

// IsDirty reports whether the aggregate changed since it was loaded.
func (r *Repair) IsDirty() bool {
	return r.versionBumped
}
