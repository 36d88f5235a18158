package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reeltrack/reeltrack/internal/container"
	"github.com/reeltrack/reeltrack/pkg/errors"
	"github.com/reeltrack/reeltrack/pkg/pagination"
)

func newListCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Manage custom lists",
	}

	var (
		owner       string
		name        string
		description string
	)
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an empty list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var desc *string
			if cmd.Flags().Changed("description") {
				desc = &description
			}
			return root.withTracker(cmd.Context(), func(ctx context.Context, c *container.TrackerContainer) error {
				list, err := c.Lists.CreateList(ctx, owner, name, desc)
				if err != nil {
					return err
				}
				return printJSON(cmd, toListView(list))
			})
		},
	}
	createCmd.Flags().StringVar(&owner, "user", "", "Owning user")
	createCmd.Flags().StringVar(&name, "name", "", "List name")
	createCmd.Flags().StringVar(&description, "description", "", "Optional description")

	showCmd := &cobra.Command{
		Use:   "show <list-id>",
		Short: "Show a list with its movies and tv shows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.withTracker(cmd.Context(), func(ctx context.Context, c *container.TrackerContainer) error {
				contents, err := c.Lists.ListContents(ctx, args[0])
				if err != nil {
					return err
				}
				view := toListView(contents.List)
				view.Movies = mapItems(contents.Movies, toMovieView)
				view.TVShows = mapItems(contents.TVShows, toTVShowView)
				return printJSON(cmd, view)
			})
		},
	}

	var (
		byOwner string
		req     pagination.Request
	)
	ownedCmd := &cobra.Command{
		Use:   "owned",
		Short: "List a user's lists, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.withTracker(cmd.Context(), func(ctx context.Context, c *container.TrackerContainer) error {
				page, err := c.Lists.ListsByOwner(ctx, byOwner, req)
				if err != nil {
					return err
				}
				return printJSON(cmd, pageView[listView]{
					Items:         mapItems(page.Items, toListView),
					NextPageToken: page.NextPageToken,
				})
			})
		},
	}
	ownedCmd.Flags().StringVar(&byOwner, "user", "", "Owning user")
	bindPage(ownedCmd, &req)

	var deleteUser string
	deleteCmd := &cobra.Command{
		Use:   "delete <list-id>",
		Short: "Delete a list; catalog items are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.withTracker(cmd.Context(), func(ctx context.Context, c *container.TrackerContainer) error {
				if err := c.Lists.DeleteList(ctx, args[0], deleteUser); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted list %s\n", args[0])
				return nil
			})
		},
	}
	deleteCmd.Flags().StringVar(&deleteUser, "user", "", "Requesting user")

	cmd.AddCommand(
		createCmd,
		showCmd,
		ownedCmd,
		deleteCmd,
		newListMemberCmd(root, "add", "Add a movie or tv show to a list"),
		newListMemberCmd(root, "remove", "Remove a movie or tv show from a list"),
	)
	return cmd
}

func newListMemberCmd(root *rootOptions, action, short string) *cobra.Command {
	var (
		media  mediaFlags
		userID string
	)
	cmd := &cobra.Command{
		Use:   action + " <list-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID := args[0]
			movieID, tvShowID := media.ids(cmd)
			if (movieID == nil) == (tvShowID == nil) {
				return errors.Validation("media", "exactly one of --movie or --tvshow is required")
			}
			return root.withTracker(cmd.Context(), func(ctx context.Context, c *container.TrackerContainer) error {
				var err error
				switch {
				case action == "add" && movieID != nil:
					err = c.Lists.AddMovieToList(ctx, listID, *movieID, userID)
				case action == "add":
					err = c.Lists.AddTVShowToList(ctx, listID, *tvShowID, userID)
				case movieID != nil:
					err = c.Lists.RemoveMovieFromList(ctx, listID, *movieID, userID)
				default:
					err = c.Lists.RemoveTVShowFromList(ctx, listID, *tvShowID, userID)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "OK\n")
				return nil
			})
		},
	}
	media.bind(cmd)
	cmd.Flags().StringVar(&userID, "user", "", "Requesting user")
	return cmd
}
