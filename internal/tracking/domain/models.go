package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/reeltrack/reeltrack/pkg/errors"
)

// Movie is a catalog item with a single release.
type Movie struct {
	ID          int64
	Title       string
	Description *string
	ReleaseYear int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields required at ingestion.
func (m *Movie) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return errors.Validation("title", "is required")
	}
	if m.ReleaseYear < 0 {
		return errors.Validation("release_year", "must not be negative")
	}
	return nil
}

// TVShow is a catalog item that airs over a span of years.
type TVShow struct {
	ID          int64
	Title       string
	Description *string
	StartYear   int
	EndYear     *int // nil while ongoing
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Ongoing reports whether the show has no end year.
func (s *TVShow) Ongoing() bool {
	return s.EndYear == nil
}

// Validate checks the fields required at ingestion.
func (s *TVShow) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return errors.Validation("title", "is required")
	}
	if s.StartYear < 0 {
		return errors.Validation("start_year", "must not be negative")
	}
	if s.EndYear != nil && *s.EndYear < s.StartYear {
		return errors.Validation("end_year", "must not be before start_year")
	}
	return nil
}

// Review is a rated opinion of one catalog item. A user may hold several
// reviews of the same item.
type Review struct {
	ID        string
	UserID    string
	Media     MediaRef
	Rating    float64
	Comment   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Watched records that a user has seen an item. One per user and item.
type Watched struct {
	ID        string
	UserID    string
	Media     MediaRef
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WatchlistEntry records that a user intends to watch an item. One per user
// and item.
type WatchlistEntry struct {
	ID        string
	UserID    string
	Media     MediaRef
	CreatedAt time.Time
	UpdatedAt time.Time
}

// List is a named, user owned set of movies and tv shows.
type List struct {
	ID          string
	Name        string
	Description *string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy reports whether userID owns the list.
func (l *List) OwnedBy(userID string) bool {
	return l.OwnerID == userID
}

// ListContents holds both membership sets of a list in insertion order.
type ListContents struct {
	List    *List
	Movies  []*Movie
	TVShows []*TVShow
}

// Counts are live aggregates for one catalog item.
type Counts struct {
	Reviews     int64 `json:"reviews"`
	Watched     int64 `json:"watched"`
	Watchlisted int64 `json:"watchlisted"`
	Lists       int64 `json:"lists"`
}

// UserCounts are live aggregates for one user.
type UserCounts struct {
	Reviews     int64 `json:"reviews"`
	Watched     int64 `json:"watched"`
	Watchlisted int64 `json:"watchlisted"`
	Lists       int64 `json:"lists"`
}

// Policy holds the product limits applied to user input.
type Policy struct {
	MinRating         float64
	MaxRating         float64
	MaxCommentLength  int
	MaxListNameLength int
}

// DefaultPolicy returns the inclusive 0..10 rating range.
func DefaultPolicy() Policy {
	return Policy{
		MinRating:         0,
		MaxRating:         10,
		MaxCommentLength:  4000,
		MaxListNameLength: 120,
	}
}

// ValidateRating checks a rating against the inclusive range.
func (p Policy) ValidateRating(rating float64) error {
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return errors.Validation("rating", "must be a finite number")
	}
	if rating < p.MinRating || rating > p.MaxRating {
		return errors.Validation("rating", fmt.Sprintf("must be between %g and %g", p.MinRating, p.MaxRating))
	}
	return nil
}

// ValidateComment checks an optional comment.
func (p Policy) ValidateComment(comment *string) error {
	if comment == nil || p.MaxCommentLength <= 0 {
		return nil
	}
	if utf8.RuneCountInString(*comment) > p.MaxCommentLength {
		return errors.Validation("comment", "is too long")
	}
	return nil
}

// ValidateListName trims and checks a list name.
func (p Policy) ValidateListName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.Validation("name", "is required")
	}
	if p.MaxListNameLength > 0 && utf8.RuneCountInString(name) > p.MaxListNameLength {
		return "", errors.Validation("name", "is too long")
	}
	return name, nil
}

// ValidateUserID rejects empty owners.
func ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errors.Validation("user_id", "is required")
	}
	return nil
}
