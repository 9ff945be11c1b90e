package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dhamidi/icumsg/catalog"
	"github.com/dhamidi/icumsg/format"
)

func newFmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <file>",
		Short: "Print every message of a catalog in canonical form",
		Long: `Print every message of a catalog in canonical form, one
key = "message" line per entry, sorted by key.

Messages that do not parse are reported on stderr and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, symbols, err := newParser()
			if err != nil {
				return err
			}

			c, err := catalog.Load(args[0])
			if err != nil {
				return err
			}

			enc := format.NewMessageEncoder(nil, symbols)
			invalid := 0
			for _, e := range c.Entries {
				msg, err := p.ParseString(e.Message)
				if err != nil {
					d, _ := catalog.CheckEntry(p, c, e)
					fmt.Fprintln(cmd.ErrOrStderr(), d)
					invalid++
					continue
				}
				text, err := enc.String(msg)
				if err != nil {
					return fmt.Errorf("%s: %w", e.Key, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", e.Key, strconv.Quote(text))
			}

			if invalid > 0 {
				return fmt.Errorf("%d invalid messages", invalid)
			}
			return nil
		},
	}
}
