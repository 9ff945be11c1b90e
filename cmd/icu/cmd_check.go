package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/dhamidi/icumsg/catalog"
)

func newCheckCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "check <file|dir>...",
		Short: "Check that every message of the given catalogs parses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := newParser()
			if err != nil {
				return err
			}

			catalogs, failed, err := loadCatalogs(args)
			if err != nil {
				return err
			}

			diags, err := catalog.Check(cmd.Context(), p, catalogs, workers)
			if err != nil {
				return err
			}
			for _, d := range diags {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}

			entries := 0
			for _, c := range catalogs {
				entries += len(c.Entries)
			}
			log.Infof("checked %d messages in %d catalogs", entries, len(catalogs))

			if len(diags) > 0 {
				return fmt.Errorf("%d invalid messages", len(diags))
			}
			if failed {
				return fmt.Errorf("some catalogs could not be loaded")
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "j", runtime.NumCPU(), "number of messages parsed concurrently")

	return cmd
}
