package storage

import "errors"

// Common storage errors
var (
	// ErrRoomNotFound indicates that room was not found in storage
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomAlreadyExists indicates that room with this id already exists
	ErrRoomAlreadyExists = errors.New("room already exists")

	// ErrSubmissionNotFound indicates that template submission was not found
	ErrSubmissionNotFound = errors.New("submission not found")
)
