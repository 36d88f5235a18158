package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reeltrack/reeltrack/internal/container"
	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	"github.com/reeltrack/reeltrack/pkg/pagination"
)

func toWatchedView(w *domain.Watched) entryView {
	return entryView{ID: w.ID, UserID: w.UserID, Media: toMediaView(w.Media), CreatedAt: w.CreatedAt}
}

func toWatchlistView(e *domain.WatchlistEntry) entryView {
	return entryView{ID: e.ID, UserID: e.UserID, Media: toMediaView(e.Media), CreatedAt: e.CreatedAt}
}

func bindPage(cmd *cobra.Command, req *pagination.Request) {
	cmd.Flags().IntVar(&req.Size, "page-size", 0, "Items per page")
	cmd.Flags().StringVar(&req.Token, "page-token", "", "Token from a previous page")
}

func newReviewCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Record and browse reviews",
	}

	var (
		add     mediaFlags
		userID  string
		rating  float64
		comment string
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record a review of a movie or tv show",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			movieID, tvShowID := add.ids(cmd)
			var text *string
			if cmd.Flags().Changed("comment") {
				text = &comment
			}
			return root.withTracker(cmd.Context(), func(ctx context.Context, c *container.TrackerContainer) error {
				ref, err := c.Engagement.Resolve(ctx, movieID, tvShowID)
				if err != nil {
					return err
				}
				review, err := c.Engagement.RecordReview(ctx, userID, ref, rating, text)
				if err != nil {
					return err
				}
				return printJSON(cmd, toReviewView(review))
			})
		},
	}
	add.bind(addCmd)
	addCmd.Flags().StringVar(&userID, "user", "", "Reviewing user")
	addCmd.Flags().Float64Var(&rating, "rating", 0, "Rating")
	addCmd.Flags().StringVar(&comment, "comment", "", "Optional comment")
	_ = addCmd.MarkFlagRequired("rating")

	var (
		browse mediaFlags
		byUser string
		req    pagination.Request
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List reviews of an item or by a user, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			movieID, tvShowID := browse.ids(cmd)
			return root.withTracker(cmd.Context(), func(ctx context.Context, c *container.TrackerContainer) error {
				var (
					page pagination.Page[*domain.Review]
					err  error
				)
				if byUser != "" {
					page, err = c.Engagement.ListReviewsByUser(ctx, byUser, req)
				} else {
					ref, rerr := c.Engagement.Resolve(ctx, movieID, tvShowID)
					if rerr != nil {
						return rerr
					}
					page, err = c.Engagement.ListReviewsFor(ctx, ref, req)
				}
				if err != nil {
					return err
				}
				return printJSON(cmd, pageView[reviewView]{
					Items:         mapItems(page.Items, toReviewView),
					NextPageToken: page.NextPageToken,
				})
			})
		},
	}
	browse.bind(listCmd)
	listCmd.Flags().StringVar(&byUser, "user", "", "List this user's reviews instead")
	bindPage(listCmd, &req)

	var deleteUser string
	deleteCmd := &cobra.Command{
		Use:   "delete <review-id>",
		Short: "Delete one of your reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.withTracker(cmd.Context(), func(ctx context.Context, c *container.TrackerContainer) error {
				if err := c.Engagement.DeleteReview(ctx, args[0], deleteUser); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted review %s\n", args[0])
				return nil
			})
		},
	}
	deleteCmd.Flags().StringVar(&deleteUser, "user", "", "Requesting user")

	cmd.AddCommand(addCmd, listCmd, deleteCmd)
	return cmd
}

// entryCommands builds add/remove/list for the watched and watchlist sets,
// which share a shape.
type entryCommands struct {
	use    string
	short  string
	add    func(ctx context.Context, c *container.TrackerContainer, userID string, ref domain.MediaRef) (entryView, error)
	remove func(ctx context.Context, c *container.TrackerContainer, userID string, ref domain.MediaRef) error
	list   func(ctx context.Context, c *container.TrackerContainer, userID string, req pagination.Request) (pageView[entryView], error)
}

func (e entryCommands) build(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{Use: e.use, Short: e.short}

	mutate := func(name, short string, run func(ctx context.Context, cmd *cobra.Command, c *container.TrackerContainer, userID string, ref domain.MediaRef) error) *cobra.Command {
		var (
			media  mediaFlags
			userID string
		)
		sub := &cobra.Command{
			Use:   name,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				movieID, tvShowID := media.ids(cmd)
				return root.withTracker(cmd.Context(), func(ctx context.Context, c *container.TrackerContainer) error {
					ref, err := c.Engagement.Resolve(ctx, movieID, tvShowID)
					if err != nil {
						return err
					}
					return run(ctx, cmd, c, userID, ref)
				})
			},
		}
		media.bind(sub)
		sub.Flags().StringVar(&userID, "user", "", "User id")
		return sub
	}

	addCmd := mutate("add", "Add an item; adding twice is a no-op", func(ctx context.Context, cmd *cobra.Command, c *container.TrackerContainer, userID string, ref domain.MediaRef) error {
		view, err := e.add(ctx, c, userID, ref)
		if err != nil {
			return err
		}
		return printJSON(cmd, view)
	})
	removeCmd := mutate("remove", "Remove an item if present", func(ctx context.Context, cmd *cobra.Command, c *container.TrackerContainer, userID string, ref domain.MediaRef) error {
		if err := e.remove(ctx, c, userID, ref); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", ref)
		return nil
	})

	var (
		userID string
		req    pagination.Request
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's items, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.withTracker(cmd.Context(), func(ctx context.Context, c *container.TrackerContainer) error {
				page, err := e.list(ctx, c, userID, req)
				if err != nil {
					return err
				}
				return printJSON(cmd, page)
			})
		},
	}
	listCmd.Flags().StringVar(&userID, "user", "", "User id")
	bindPage(listCmd, &req)

	cmd.AddCommand(addCmd, removeCmd, listCmd)
	return cmd
}

func newWatchedCmd(root *rootOptions) *cobra.Command {
	return entryCommands{
		use:   "watched",
		short: "Track what a user has watched",
		add: func(ctx context.Context, c *container.TrackerContainer, userID string, ref domain.MediaRef) (entryView, error) {
			w, err := c.Engagement.MarkWatched(ctx, userID, ref)
			if err != nil {
				return entryView{}, err
			}
			return toWatchedView(w), nil
		},
		remove: func(ctx context.Context, c *container.TrackerContainer, userID string, ref domain.MediaRef) error {
			return c.Engagement.RemoveWatched(ctx, userID, ref)
		},
		list: func(ctx context.Context, c *container.TrackerContainer, userID string, req pagination.Request) (pageView[entryView], error) {
			page, err := c.Engagement.ListWatchedFor(ctx, userID, req)
			if err != nil {
				return pageView[entryView]{}, err
			}
			return pageView[entryView]{Items: mapItems(page.Items, toWatchedView), NextPageToken: page.NextPageToken}, nil
		},
	}.build(root)
}

func newWatchlistCmd(root *rootOptions) *cobra.Command {
	return entryCommands{
		use:   "watchlist",
		short: "Track what a user wants to watch",
		add: func(ctx context.Context, c *container.TrackerContainer, userID string, ref domain.MediaRef) (entryView, error) {
			e, err := c.Engagement.AddToWatchlist(ctx, userID, ref)
			if err != nil {
				return entryView{}, err
			}
			return toWatchlistView(e), nil
		},
		remove: func(ctx context.Context, c *container.TrackerContainer, userID string, ref domain.MediaRef) error {
			return c.Engagement.RemoveFromWatchlist(ctx, userID, ref)
		},
		list: func(ctx context.Context, c *container.TrackerContainer, userID string, req pagination.Request) (pageView[entryView], error) {
			page, err := c.Engagement.ListWatchlistFor(ctx, userID, req)
			if err != nil {
				return pageView[entryView]{}, err
			}
			return pageView[entryView]{Items: mapItems(page.Items, toWatchlistView), NextPageToken: page.NextPageToken}, nil
		},
	}.build(root)
}
