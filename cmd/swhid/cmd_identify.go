package main

import (
	"fmt"

	"github.com/sourcehash/swhid/pkg/compute"
	"github.com/sourcehash/swhid/pkg/swhid"
	"github.com/spf13/cobra"
)

func newIdentifyCmd() *cobra.Command {
	var (
		dereference bool
		exclude     []string
		origin      string
	)

	cmd := &cobra.Command{
		Use:   "identify <path>...",
		Short: "Compute the identifier of files, symlinks, or directory trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			computer := compute.New()
			computer.Dereference = cfg.Dereference
			if cmd.Flags().Changed("dereference") {
				computer.Dereference = dereference
			}
			computer.ExcludePatterns = append(computer.ExcludePatterns, cfg.Exclude...)
			computer.ExcludePatterns = append(computer.ExcludePatterns, exclude...)

			for _, path := range args {
				core, err := computer.Identify(path)
				if err != nil {
					return err
				}
				out := core.String()
				if origin != "" {
					qualified := swhid.QualifiedID{Core: core}
					qualified.Qualifiers.Origin = origin
					out = qualified.String()
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", out, path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dereference, "dereference", false, "identify the target of a symlink argument instead of the link itself")
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "glob pattern of entry names to skip during traversal (repeatable)")
	cmd.Flags().StringVar(&origin, "origin", "", "attach an origin qualifier to the output")
	return cmd
}
