package consumer

import (
	"errors"
)

var (
	ErrInvalidMessage = errors.New("invalid submit request message")
)
