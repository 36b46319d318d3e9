package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "swhid",
		Short: "Compute and validate Software Hash Identifiers",
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newIdentifyCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newRepoCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("swhid 0.1.0-dev")
		},
	}
}
