package domain

import "errors"

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrNoConnection        = errors.New("no connection within degree bound")
	ErrProviderUnavailable = errors.New("provider unavailable")
)
