package domain

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrNoResults      = errors.New("no results found")
	ErrSlotEmpty      = errors.New("storage slot is empty")
)
