package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/icumsg/catalog"
)

func newWatchCmd() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Re-check the catalogs of a directory whenever they change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := newParser()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			w := catalog.NewWatcher(args[0], p, func(r catalog.Report) {
				switch {
				case r.Removed:
					fmt.Fprintf(out, "%s: removed\n", r.Path)
				case r.Err != nil:
					fmt.Fprintln(out, r.Err)
				case len(r.Diagnostics) == 0:
					fmt.Fprintf(out, "%s: ok\n", r.Path)
				default:
					for _, d := range r.Diagnostics {
						fmt.Fprintln(out, d)
					}
				}
			})
			w.Debounce = debounce

			return w.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", catalog.DefaultDebounce, "quiet period before a changed file is re-checked")

	return cmd
}
