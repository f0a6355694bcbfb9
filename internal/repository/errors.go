package repository

import "errors"

var (
	ErrNotFound         = errors.New("snapshot not found")
	ErrSaveFailed       = errors.New("snapshot save failed")
	ErrConnectionFailed = errors.New("storage connection failed")
)
