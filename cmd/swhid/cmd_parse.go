package main

import (
	"fmt"

	"github.com/sourcehash/swhid/pkg/swhid"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <identifier>",
		Short: "Validate an identifier and print its parts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := swhid.ParseQualified(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "kind\t%s\n", id.Core.Kind)
			fmt.Fprintf(out, "hash\t%x\n", id.Core.Hash)
			q := id.Qualifiers
			if q.Origin != "" {
				fmt.Fprintf(out, "origin\t%s\n", q.Origin)
			}
			if q.Visit != nil {
				fmt.Fprintf(out, "visit\t%s\n", q.Visit)
			}
			if q.Anchor != nil {
				fmt.Fprintf(out, "anchor\t%s\n", q.Anchor)
			}
			if q.Path != nil {
				fmt.Fprintf(out, "path\t%s\n", q.Path)
			}
			if q.Lines != nil {
				fmt.Fprintf(out, "lines\t%s\n", q.Lines)
			}
			if q.Bytes != nil {
				fmt.Fprintf(out, "bytes\t%s\n", q.Bytes)
			}
			return nil
		},
	}
}
