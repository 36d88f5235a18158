package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reeltrack/reeltrack/internal/container"
)

func newMigrateCmd(root *rootOptions) *cobra.Command {
	var (
		status bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := root.load()
			if err != nil {
				return err
			}
			defer log.Sync()

			m, cleanup, err := container.InitializeMigrations(cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			switch {
			case status:
				statuses, err := m.Migrator.Status(ctx)
				if err != nil {
					return err
				}
				for _, s := range statuses {
					applied := "pending"
					if s.AppliedAt != nil {
						applied = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(out, "%-16s %-32s %s\n", s.Version, s.Name, applied)
				}
				return nil

			case dryRun:
				pending, err := m.Migrator.Pending(ctx)
				if err != nil {
					return err
				}
				if len(pending) == 0 {
					fmt.Fprintln(out, "No pending migrations.")
					return nil
				}
				for _, p := range pending {
					fmt.Fprintf(out, "%s %s\n", p.Version, p.Name)
				}
				return nil
			}

			if err := m.Migrator.Migrate(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "Migrations completed successfully!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "Show migration status")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show pending migrations without applying them")
	return cmd
}
