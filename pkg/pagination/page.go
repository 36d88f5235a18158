package pagination

import (
	"fmt"
	"time"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultMaxAge   = 24 * time.Hour
)

// Request is the caller-supplied page selector. A zero Request asks for the
// first page at the default size.
type Request struct {
	Size  int
	Token string
}

// Page is one ordered slice of a read path.
type Page[T any] struct {
	Items         []T
	NextPageToken string
}

// HasMore reports whether another page can be requested.
func (p Page[T]) HasMore() bool {
	return p.NextPageToken != ""
}

// Window is a resolved request: the rows to skip and the rows to return.
type Window struct {
	Offset int
	Limit  int
}

// Options tunes a Paginator.
type Options struct {
	DefaultSize int
	MaxSize     int
	MaxAge      time.Duration
}

// Paginator turns opaque page tokens into offset windows and back.
type Paginator struct {
	encoder *CursorEncoder
	opts    Options
}

// NewPaginator creates a paginator. Zero option values fall back to the
// package defaults.
func NewPaginator(key []byte, opts Options) (*Paginator, error) {
	encoder, err := NewCursorEncoder(key)
	if err != nil {
		return nil, err
	}

	if opts.DefaultSize <= 0 {
		opts.DefaultSize = DefaultPageSize
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = MaxPageSize
	}
	if opts.DefaultSize > opts.MaxSize {
		opts.DefaultSize = opts.MaxSize
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = DefaultMaxAge
	}

	return &Paginator{encoder: encoder, opts: opts}, nil
}

// Window resolves a request into an offset and limit.
func (p *Paginator) Window(req Request) (Window, error) {
	size := req.Size
	if size <= 0 {
		size = p.opts.DefaultSize
	}
	if size > p.opts.MaxSize {
		size = p.opts.MaxSize
	}

	offset, err := CalculateOffset(p.encoder, req.Token, 0, p.opts.MaxAge)
	if err != nil {
		return Window{}, err
	}

	return Window{Offset: offset, Limit: size}, nil
}

// Build trims rows fetched with a limit of w.Limit+1 down to one page and
// issues the next token when the extra row was present.
func Build[T any](p *Paginator, w Window, rows []T) (Page[T], error) {
	if len(rows) <= w.Limit {
		return Page[T]{Items: rows}, nil
	}

	token, err := p.encoder.EncodeCursor(CreateOffsetCursor(w.Offset + w.Limit))
	if err != nil {
		return Page[T]{}, err
	}

	return Page[T]{Items: rows[:w.Limit], NextPageToken: token}, nil
}

// CalculateOffset calculates the offset from a page token
func CalculateOffset(encoder *CursorEncoder, pageToken string, defaultOffset int, maxAge time.Duration) (int, error) {
	if pageToken == "" {
		return defaultOffset, nil
	}

	cursor, err := encoder.DecodeCursor(pageToken)
	if err != nil {
		return 0, fmt.Errorf("invalid page token: %w", err)
	}

	if cursor.IsExpired(maxAge) {
		return 0, fmt.Errorf("page token expired")
	}

	if cursor.Offset < 0 {
		return 0, fmt.Errorf("invalid page token: negative offset")
	}

	return cursor.Offset, nil
}
