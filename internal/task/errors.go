package task

import "errors"

var (
	ErrEmptyText       = errors.New("task text is empty")
	ErrDuplicateTask   = errors.New("task already exists")
	ErrIndexOutOfRange = errors.New("task index out of range")
)
