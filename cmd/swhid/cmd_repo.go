package main

import (
	"fmt"

	"github.com/sourcehash/swhid/pkg/gitprovider"
	"github.com/spf13/cobra"
)

// newRepoCmd groups the identifiers derived from a live git
// repository: revisions, releases, and snapshots.
func newRepoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo",
		Short: "Compute identifiers from a git repository",
	}
	cmd.AddCommand(newRepoRevisionCmd())
	cmd.AddCommand(newRepoReleaseCmd())
	cmd.AddCommand(newRepoSnapshotCmd())
	return cmd
}

func newRepoRevisionCmd() *cobra.Command {
	var ref string
	cmd := &cobra.Command{
		Use:   "revision [path]",
		Short: "Identifier of the commit a ref points at",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := gitprovider.Open(repoArg(args))
			if err != nil {
				return err
			}
			id, err := repo.Revision(ref)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	cmd.Flags().StringVar(&ref, "ref", "HEAD", "ref to resolve")
	return cmd
}

func newRepoReleaseCmd() *cobra.Command {
	var ref string
	cmd := &cobra.Command{
		Use:   "release [path]",
		Short: "Identifier of an annotated tag",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := gitprovider.Open(repoArg(args))
			if err != nil {
				return err
			}
			id, err := repo.Release(ref)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	cmd.Flags().StringVar(&ref, "ref", "", "tag ref to resolve")
	cmd.MarkFlagRequired("ref")
	return cmd
}

func newRepoSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot [path]",
		Short: "Identifier of the full state of the repository's refs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := gitprovider.Open(repoArg(args))
			if err != nil {
				return err
			}
			id, err := repo.Snapshot()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func repoArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
