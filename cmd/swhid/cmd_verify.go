package main

import (
	"fmt"

	"github.com/sourcehash/swhid/pkg/compute"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	var (
		dereference bool
		exclude     []string
	)

	cmd := &cobra.Command{
		Use:   "verify <path> <identifier>",
		Short: "Check that a path's computed identifier matches an expected one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, expected := args[0], args[1]

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

			ok, err := computer.Verify(path, expected)
			if err != nil {
				return err
			}
			if !ok {
				actual, err := computer.Identify(path)
				if err != nil {
					return err
				}
				return fmt.Errorf("mismatch: %s has identifier %s, expected %s", path, actual, expected)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s\t%s\n", expected, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dereference, "dereference", false, "identify the target of a symlink argument instead of the link itself")
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "glob pattern of entry names to skip during traversal (repeatable)")
	return cmd
}
