package repair

import (
	vo "repairdesk/internal/domain/repair/valueobjects"
	"repairdesk/internal/shared/authorization"
)

// Actor is the authenticated user performing an operation.
type Actor struct {
	UserID   uint
	Role     authorization.UserRole
	FullName string
}

func (a Actor) IsPrivileged() bool {
	return a.Role.IsPrivileged()
}

// CanEdit reports whether actor may change the descriptive fields of r.
func CanEdit(actor Actor, r *Repair) bool {
	return AuthorizeEdit(actor, r) == nil
}

// AuthorizeEdit explains why an edit is refused. Staff may always edit;
// the requester only while the repair is pending.
func AuthorizeEdit(actor Actor, r *Repair) error {
	if actor.IsPrivileged() {
		return nil
	}
	if r.RequesterID() != actor.UserID {
		return ErrNotRequester
	}
	if !r.Status().IsPending() {
		return ErrNotPending
	}
	return nil
}

// CanTransition reports whether actor may move r to newStatus.
func CanTransition(actor Actor, r *Repair, newStatus vo.Status) bool {
	return actor.IsPrivileged() && r.Status().CanTransitionTo(newStatus)
}

func CanDelete(actor Actor) bool {
	return actor.Role.IsAdmin()
}

// CanView reports whether actor may read r. Base users only see their own.
func CanView(actor Actor, requesterID uint) bool {
	return authorization.CanAccessResourceByOwnerID(actor.UserID, actor.Role, requesterID)
}
