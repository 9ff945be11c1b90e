package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/icumsg/catalog"
)

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <base> <translation>",
		Short: "Compare keys and placeholders of a translation against its base catalog",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := newParser()
			if err != nil {
				return err
			}

			base, err := catalog.Load(args[0])
			if err != nil {
				return err
			}
			other, err := catalog.Load(args[1])
			if err != nil {
				return err
			}

			mismatches := catalog.Compare(p, base, other)
			for _, m := range mismatches {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", other.Path, m)
			}
			if len(mismatches) > 0 {
				return fmt.Errorf("%s differs from %s in %d places", other.Locale, base.Locale, len(mismatches))
			}
			return nil
		},
	}
}
