package repair

import "errors"

var (
	ErrNotFound                  = errors.New("repair not found")
	ErrVersionConflict           = errors.New("repair was modified concurrently")
	ErrNotRequester              = errors.New("only the requester may edit this repair")
	ErrNotPending                = errors.New("repair can only be edited while pending")
	ErrNotPrivileged             = errors.New("only technicians and admins may change repair status")
	ErrNotAdmin                  = errors.New("only admins may delete repairs")
	ErrNotVisible                = errors.New("repair belongs to another user")
	ErrCompletionDetailsRequired = errors.New("completion details are required to complete a repair")
	ErrInvalidKeepList           = errors.New("invalid keep list")
)
