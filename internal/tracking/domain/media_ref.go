package domain

import (
	"context"
	"fmt"

	"github.com/reeltrack/reeltrack/internal/tracking/constants"
	"github.com/reeltrack/reeltrack/pkg/errors"
)

// ShowType is the discriminant stored next to every engagement row.
type ShowType string

const (
	ShowTypeMovie  ShowType = "MOVIE"
	ShowTypeTVShow ShowType = "TVSHOW"
)

// Valid reports whether t is a known tag.
func (t ShowType) Valid() bool {
	return t == ShowTypeMovie || t == ShowTypeTVShow
}

// ParseShowType parses a stored or user-supplied tag.
func ParseShowType(s string) (ShowType, error) {
	t := ShowType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownShowType, s)
	}
	return t, nil
}

// MediaRef identifies exactly one catalog item, either a Movie or a TVShow.
// The zero value is not a valid reference; values come from Resolver.Resolve
// or MediaRefFromColumns.
type MediaRef struct {
	kind ShowType
	id   int64
}

// Kind returns the reference tag.
func (r MediaRef) Kind() ShowType { return r.kind }

// ID returns the referenced catalog id.
func (r MediaRef) ID() int64 { return r.id }

// IsZero reports whether r was never resolved.
func (r MediaRef) IsZero() bool { return r.kind == "" }

// IsMovie reports whether r points at a Movie.
func (r MediaRef) IsMovie() bool { return r.kind == ShowTypeMovie }

// IsTVShow reports whether r points at a TVShow.
func (r MediaRef) IsTVShow() bool { return r.kind == ShowTypeTVShow }

func (r MediaRef) String() string {
	switch r.kind {
	case ShowTypeMovie:
		return fmt.Sprintf("movie:%d", r.id)
	case ShowTypeTVShow:
		return fmt.Sprintf("tvshow:%d", r.id)
	default:
		return "media:none"
	}
}

// Columns returns the persisted (movie_id, tv_id, type) triple.
func (r MediaRef) Columns() (movieID, tvID *int64, kind ShowType) {
	id := r.id
	switch r.kind {
	case ShowTypeMovie:
		return &id, nil, r.kind
	case ShowTypeTVShow:
		return nil, &id, r.kind
	default:
		return nil, nil, ""
	}
}

// MediaRefFromColumns rebuilds a reference from a stored triple. Exactly one
// id must be set and it must agree with the tag.
func MediaRefFromColumns(movieID, tvID *int64, kind ShowType) (MediaRef, error) {
	switch {
	case movieID != nil && tvID != nil:
		return MediaRef{}, errors.InvalidReference(ErrBothProvided)
	case movieID == nil && tvID == nil:
		return MediaRef{}, errors.InvalidReference(ErrNoneProvided)
	case !kind.Valid():
		return MediaRef{}, errors.InvalidReference(fmt.Errorf("%w: %q", ErrUnknownShowType, string(kind)))
	case movieID != nil && kind != ShowTypeMovie, tvID != nil && kind != ShowTypeTVShow:
		return MediaRef{}, errors.InvalidReference(ErrTypeMismatch)
	case movieID != nil:
		return MediaRef{kind: ShowTypeMovie, id: *movieID}, nil
	default:
		return MediaRef{kind: ShowTypeTVShow, id: *tvID}, nil
	}
}

// CatalogReader answers catalog existence checks.
type CatalogReader interface {
	MovieExists(ctx context.Context, id int64) (bool, error)
	TVShowExists(ctx context.Context, id int64) (bool, error)
}

// Resolver validates caller supplied id pairs against the catalog.
type Resolver struct {
	catalog CatalogReader
}

// NewResolver creates a resolver backed by catalog.
func NewResolver(catalog CatalogReader) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve turns an optional (movieID, tvShowID) pair into a MediaRef. It only
// reads the catalog.
func (r *Resolver) Resolve(ctx context.Context, movieID, tvShowID *int64) (MediaRef, error) {
	switch {
	case movieID != nil && tvShowID != nil:
		return MediaRef{}, errors.InvalidReference(ErrBothProvided)
	case movieID == nil && tvShowID == nil:
		return MediaRef{}, errors.InvalidReference(ErrNoneProvided)
	case movieID != nil:
		return r.resolve(ctx, ShowTypeMovie, *movieID)
	default:
		return r.resolve(ctx, ShowTypeTVShow, *tvShowID)
	}
}

// ResolveMovie is shorthand for Resolve(ctx, &id, nil).
func (r *Resolver) ResolveMovie(ctx context.Context, id int64) (MediaRef, error) {
	return r.resolve(ctx, ShowTypeMovie, id)
}

// ResolveTVShow is shorthand for Resolve(ctx, nil, &id).
func (r *Resolver) ResolveTVShow(ctx context.Context, id int64) (MediaRef, error) {
	return r.resolve(ctx, ShowTypeTVShow, id)
}

func (r *Resolver) resolve(ctx context.Context, kind ShowType, id int64) (MediaRef, error) {
	var (
		exists   bool
		err      error
		resource string
	)
	if kind == ShowTypeMovie {
		resource = constants.ResourceMovie
		exists, err = r.catalog.MovieExists(ctx, id)
	} else {
		resource = constants.ResourceTVShow
		exists, err = r.catalog.TVShowExists(ctx, id)
	}
	if err != nil {
		return MediaRef{}, err
	}
	if !exists {
		return MediaRef{}, errors.NotFound(resource, id)
	}
	return MediaRef{kind: kind, id: id}, nil
}
