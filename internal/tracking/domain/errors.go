package domain

import "errors"

// Reasons carried by invalid media reference errors.
var (
	// ErrBothProvided is returned when a movie id and a tv show id are both set
	ErrBothProvided = errors.New("both movie id and tv show id provided")

	// ErrNoneProvided is returned when neither id is set
	ErrNoneProvided = errors.New("neither movie id nor tv show id provided")

	// ErrTypeMismatch is returned when the stored type tag disagrees with the ids
	ErrTypeMismatch = errors.New("media type does not match the provided id")

	// ErrUnknownShowType is returned for a type tag outside MOVIE and TVSHOW
	ErrUnknownShowType = errors.New("unknown show type")
)
