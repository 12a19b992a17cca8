package domain

import "errors"

var (
	ErrDuplicateRoom   = errors.New("room already exists")
	ErrRoomNotFound    = errors.New("room not found")
	ErrInvalidRoomType = errors.New("invalid room type")
	ErrRoomCapacity    = errors.New("room at capacity")
	ErrLogSealed       = errors.New("work log sealed")
	ErrLogNotFound     = errors.New("work log not found")
)
