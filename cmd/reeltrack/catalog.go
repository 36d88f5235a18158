package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/reeltrack/reeltrack/internal/container"
	"github.com/reeltrack/reeltrack/internal/tracking/service"
	"github.com/reeltrack/reeltrack/pkg/errors"
)

func newCatalogCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the movie and tv show catalog",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "import <file>",
			Short: "Import movies and tv shows from a YAML file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()

				file, err := service.DecodeCatalog(f)
				if err != nil {
					return err
				}

				return root.withTracker(cmd.Context(), func(ctx context.Context, c *container.TrackerContainer) error {
					result, err := c.Catalog.ImportCatalog(ctx, file)
					if err != nil {
						return err
					}
					return printJSON(cmd, map[string]interface{}{
						"movies":   mapItems(result.Movies, toMovieView),
						"tv_shows": mapItems(result.TVShows, toTVShowView),
					})
				})
			},
		},
		newCatalogGetCmd(root, "movie"),
		newCatalogGetCmd(root, "tvshow"),
		newCatalogDeleteCmd(root, "movie"),
		newCatalogDeleteCmd(root, "tvshow"),
	)
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Validation("id", fmt.Sprintf("%q is not an integer", s))
	}
	return id, nil
}

func newCatalogGetCmd(root *rootOptions, kind string) *cobra.Command {
	return &cobra.Command{
		Use:   "get-" + kind + " <id>",
		Short: "Show a " + kind,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return root.withTracker(cmd.Context(), func(ctx context.Context, c *container.TrackerContainer) error {
				if kind == "movie" {
					movie, err := c.Catalog.GetMovie(ctx, id)
					if err != nil {
						return err
					}
					return printJSON(cmd, toMovieView(movie))
				}
				show, err := c.Catalog.GetTVShow(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd, toTVShowView(show))
			})
		},
	}
}

func newCatalogDeleteCmd(root *rootOptions, kind string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-" + kind + " <id>",
		Short: "Delete a " + kind + " that nobody has reviewed, watched or watchlisted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return root.withTracker(cmd.Context(), func(ctx context.Context, c *container.TrackerContainer) error {
				if kind == "movie" {
					err = c.Catalog.DeleteMovie(ctx, id)
				} else {
					err = c.Catalog.DeleteTVShow(ctx, id)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %d\n", kind, id)
				return nil
			})
		},
	}
}
