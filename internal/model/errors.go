package model

import "errors"

// Errors returned by shape, animation and scene operations. They are always
// wrapped with context; compare with errors.Is.
var (
	ErrInvalidTiming        = errors.New("invalid timing")
	ErrOverlappingAnimation = errors.New("overlapping animation")
	ErrInvalidSize          = errors.New("invalid size")
	ErrNotFound             = errors.New("not found")
	ErrNullAnimation        = errors.New("null animation")
	ErrUnbound              = errors.New("animation is not attached to a shape")
	ErrAlreadyBound         = errors.New("animation is already attached to a shape")
	ErrEmptyScene           = errors.New("scene has no shapes")
)
