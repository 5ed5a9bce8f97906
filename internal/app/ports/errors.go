package ports

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrProductionRejected = errors.New("production rejected")
)
