package chattemplate

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownVariant = errors.New("unknown chat template")
	ErrNoMessages     = errors.New("chat template: no messages to render")
)

type unknownVariantError struct {
	name string
}

func (e unknownVariantError) Error() string {
	return fmt.Sprintf("unknown chat template %q", e.name)
}

func (e unknownVariantError) Unwrap() error {
	return ErrUnknownVariant
}
