package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "formctl",
		Short:         "FormPilot command line tools",
		Long:          "Validate form definitions, browse and render built-in templates, and issue API tokens.",
		SilenceUsage: true,
	}
	root.AddCommand(newValidateCmd())
	root.AddCommand(newTemplatesCmd())
	root.AddCommand(newTokenCmd())
	return root
}
