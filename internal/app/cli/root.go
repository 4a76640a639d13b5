// Package cli is the catalog command line.
package cli

import (
	"catalog-app/internal/app/cli/hashpassword"
	"catalog-app/internal/app/cli/ingest"
	"catalog-app/internal/app/cli/serve"

	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:           "catalog",
	Short:         "Live catalog of handmade pieces",
	SilenceUsage:  true,
}

func init() {
	RootCmd.AddCommand(
		serve.Command,
		ingest.Command,
		hashpassword.Command,
	)
}

func Execute() error {
	return RootCmd.Execute()
}
