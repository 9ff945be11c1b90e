package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/icumsg/format"
	"github.com/dhamidi/icumsg/icu"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse [message]",
		Short: "Parse a message and dump its syntax tree",
		Long: `Parse a message and dump its syntax tree.

If no message is given, the message is read from stdin with a single
trailing newline removed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, symbols, err := newParser()
			if err != nil {
				return err
			}

			var input string
			if len(args) == 1 {
				input = args[0]
			} else {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				input = strings.TrimSuffix(strings.TrimSuffix(string(data), "\n"), "\r")
			}

			msg, err := p.ParseString(input)
			if err != nil {
				var se *icu.SyntaxError
				if errors.As(err, &se) {
					line, col := se.LineCol(input)
					return fmt.Errorf("%d:%d: %w", line, col, err)
				}
				return err
			}

			encoder, err := format.NewEncoder(outputFormat, os.Stdout, symbols)
			if err != nil {
				return err
			}
			if err := encoder.Encode(msg); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, tree, message)")

	return cmd
}
