package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/reeltrack/reeltrack/internal/tracking/domain"
)

type mediaView struct {
	Type string `json:"media_type"`
	ID   int64  `json:"media_id"`
}

type reviewView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Media     mediaView `json:"media"`
	Rating    float64   `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type entryView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Media     mediaView `json:"media"`
	CreatedAt time.Time `json:"created_at"`
}

type movieView struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	ReleaseYear int     `json:"release_year"`
}

type tvShowView struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	StartYear   int     `json:"start_year"`
	EndYear     *int    `json:"end_year,omitempty"`
}

type listView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	OwnerID     string       `json:"owner_id"`
	Movies      []movieView  `json:"movies,omitempty"`
	TVShows     []tvShowView `json:"tv_shows,omitempty"`
}

type pageView[T any] struct {
	Items         []T    `json:"items"`
	NextPageToken string `json:"next_page_token,omitempty"`
}

func toMediaView(ref domain.MediaRef) mediaView {
	return mediaView{Type: string(ref.Kind()), ID: ref.ID()}
}

func toReviewView(r *domain.Review) reviewView {
	return reviewView{
		ID:        r.ID,
		UserID:    r.UserID,
		Media:     toMediaView(r.Media),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func toMovieView(m *domain.Movie) movieView {
	return movieView{ID: m.ID, Title: m.Title, Description: m.Description, ReleaseYear: m.ReleaseYear}
}

func toTVShowView(s *domain.TVShow) tvShowView {
	return tvShowView{ID: s.ID, Title: s.Title, Description: s.Description, StartYear: s.StartYear, EndYear: s.EndYear}
}

func toListView(l *domain.List) listView {
	return listView{ID: l.ID, Name: l.Name, Description: l.Description, OwnerID: l.OwnerID}
}

func mapItems[T, V any](items []T, fn func(T) V) []V {
	out := make([]V, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

// mediaFlags binds --movie and --tvshow. Only flags the user set are passed on
// so the service can reject zero or two references.
type mediaFlags struct {
	movieID  int64
	tvShowID int64
}

func (f *mediaFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.movieID, "movie", 0, "Movie id")
	cmd.Flags().Int64Var(&f.tvShowID, "tvshow", 0, "TV show id")
}

func (f *mediaFlags) ids(cmd *cobra.Command) (movieID, tvShowID *int64) {
	if cmd.Flags().Changed("movie") {
		movieID = &f.movieID
	}
	if cmd.Flags().Changed("tvshow") {
		tvShowID = &f.tvShowID
	}
	return movieID, tvShowID
}
