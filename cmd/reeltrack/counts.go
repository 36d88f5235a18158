package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/reeltrack/reeltrack/internal/container"
)

func newCountsCmd(root *rootOptions) *cobra.Command {
	var (
		media  mediaFlags
		userID string
	)

	cmd := &cobra.Command{
		Use:   "counts",
		Short: "Show live engagement counts for an item or a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			movieID, tvShowID := media.ids(cmd)
			return root.withTracker(cmd.Context(), func(ctx context.Context, c *container.TrackerContainer) error {
				if userID != "" {
					counts, err := c.Lists.CountsForUser(ctx, userID)
					if err != nil {
						return err
					}
					return printJSON(cmd, counts)
				}

				ref, err := c.Engagement.Resolve(ctx, movieID, tvShowID)
				if err != nil {
					return err
				}
				counts, err := c.Lists.CountsFor(ctx, ref)
				if err != nil {
					return err
				}
				return printJSON(cmd, counts)
			})
		},
	}
	media.bind(cmd)
	cmd.Flags().StringVar(&userID, "user", "", "Count a user's activity instead")
	return cmd
}
