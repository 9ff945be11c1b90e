package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/icumsg/lsp"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := newParser()
			if err != nil {
				return err
			}
			server := lsp.NewServer(p, version)
			return server.RunStdio()
		},
	}
}
