package domain

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrBackend        = errors.New("booking service unavailable")
)
