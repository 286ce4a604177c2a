package services

import (
	"errors"
	"fmt"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrNeedsOnboarding  = errors.New("profile needs onboarding")
	ErrBlockNotFound    = errors.New("block not found")
	ErrInvalidParent    = errors.New("parent must be an existing stack outside the block's own subtree")
	ErrTreeCycle        = errors.New("block tree contains a parent cycle")
	ErrUnknownBlockType = errors.New("unknown block type")
	ErrUnknownField     = errors.New("unknown field")
	ErrImmutableField   = errors.New("field cannot be changed")
	ErrFieldType        = errors.New("wrong value type for field")
	ErrStackNotEmpty    = errors.New("stack still has children")
	ErrSearchTooShort   = errors.New("search query too short")
	ErrSelfFriend       = errors.New("cannot add yourself as a friend")
	ErrAlreadyFriend    = errors.New("already in friends list")
	ErrFriendNotFound   = errors.New("friend not found")
	ErrUnauthorized     = errors.New("authentication required")
	ErrSessionClosed    = errors.New("editor session closed")
)

// AccessDeniedError is returned when a private profile is requested by a
// viewer who is neither the owner nor on the owner's friend list. FriendCode
// lets the rejected viewer ask the owner for access out of band.
type AccessDeniedError struct {
	FriendCode string
}

func (e *AccessDeniedError) Error() string {
	return "profile is private"
}

// SaveFailedError means the local cache was written but the remote commit
// failed. The data is unsynced, not lost.
type SaveFailedError struct {
	Err error
}

func (e *SaveFailedError) Error() string {
	return fmt.Sprintf("saved locally, sync failed: %v", e.Err)
}

func (e *SaveFailedError) Unwrap() error {
	return e.Err
}
