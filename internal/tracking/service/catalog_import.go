package service

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	"github.com/reeltrack/reeltrack/pkg/errors"
	"github.com/reeltrack/reeltrack/pkg/interfaces"
)

// CatalogFile is the YAML document accepted by ImportCatalog.
//
//	movies:
//	  - title: Inception
//	    release_year: 2010
//	tv_shows:
//	  - title: Dark
//	    start_year: 2017
//	    end_year: 2020
type CatalogFile struct {
	Movies  []MovieEntry  `yaml:"movies"`
	TVShows []TVShowEntry `yaml:"tv_shows"`
}

// MovieEntry is one movie in a catalog file.
type MovieEntry struct {
	Title       string  `yaml:"title"`
	Description *string `yaml:"description"`
	ReleaseYear int     `yaml:"release_year"`
}

// TVShowEntry is one tv show in a catalog file.
type TVShowEntry struct {
	Title       string  `yaml:"title"`
	Description *string `yaml:"description"`
	StartYear   int     `yaml:"start_year"`
	EndYear     *int    `yaml:"end_year"`
}

// ImportResult reports what an import created.
type ImportResult struct {
	Movies  []*domain.Movie
	TVShows []*domain.TVShow
}

// DecodeCatalog parses a catalog file. Unknown keys are rejected.
func DecodeCatalog(r io.Reader) (*CatalogFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file CatalogFile
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return &file, nil
		}
		return nil, errors.Wrap(errors.ErrorTypeValidation, "decode catalog file", err)
	}
	return &file, nil
}

// ImportCatalog inserts every entry of file in one transaction. Nothing is
// written if any entry is invalid.
func (s *CatalogService) ImportCatalog(ctx context.Context, file *CatalogFile) (*ImportResult, error) {
	now := s.now()
	result := &ImportResult{
		Movies:  make([]*domain.Movie, 0, len(file.Movies)),
		TVShows: make([]*domain.TVShow, 0, len(file.TVShows)),
	}

	for i, e := range file.Movies {
		movie := &domain.Movie{
			Title:       e.Title,
			Description: e.Description,
			ReleaseYear: e.ReleaseYear,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := movie.Validate(); err != nil {
			return nil, fmt.Errorf("movies[%d]: %w", i, err)
		}
		result.Movies = append(result.Movies, movie)
	}
	for i, e := range file.TVShows {
		show := &domain.TVShow{
			Title:       e.Title,
			Description: e.Description,
			StartYear:   e.StartYear,
			EndYear:     e.EndYear,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := show.Validate(); err != nil {
			return nil, fmt.Errorf("tv_shows[%d]: %w", i, err)
		}
		result.TVShows = append(result.TVShows, show)
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, movie := range result.Movies {
			if err := s.catalog.CreateMovie(ctx, movie); err != nil {
				return err
			}
		}
		for _, show := range result.TVShows {
			if err := s.catalog.CreateTVShow(ctx, show); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("Failed to import catalog", err)
	}

	s.logger.Info("Catalog imported",
		interfaces.Int("movies", len(result.Movies)),
		interfaces.Int("tv_shows", len(result.TVShows)))
	return result, nil
}
