package cli

import (
	"github.com/spf13/cobra"

	"github.com/tigerroll/wpgen/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generator endpoints over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Serve(cmd.Context(), envFilePath, embeddedConfig)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
