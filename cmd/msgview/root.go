package main

import (
	"github.com/spf13/cobra"
)

var highlight string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "msgview",
		Short:         "Build presentable views of stored SMS and MMS messages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&highlight, "highlight", "", "Search term to mark in message bodies")
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newThreadCmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newContactCmd())

	return cmd
}
