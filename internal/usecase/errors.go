package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrResolution   = errors.New("entity resolution failed")
	ErrPersistence  = errors.New("persistence failed")
	ErrCommit       = errors.New("batch commit failed")
)
