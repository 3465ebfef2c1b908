// Package cli defines the wpgen command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tigerroll/wpgen/pkg/generator/core/config"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	"github.com/tigerroll/wpgen/pkg/generator/security"
)

var (
	envFilePath    string
	embeddedConfig config.EmbeddedConfig

	principalID    int64
	principalLogin string
	principalName  string
	principalEmail string
)

var rootCmd = &cobra.Command{
	Use:   "wpgen [command]",
	Short: "Bulk synthetic content generator for WordPress databases",
	Long: `Generate posts, pages, comments and users straight into a WordPress database with
LOAD DATA, or as a downloadable SQL script, and remove them again in one step.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFilePath, "env-file", envOr("ENV_FILE_PATH", ".env"), "Path of the .env file")
	rootCmd.PersistentFlags().Int64Var(&principalID, "user-id", 1, "ID of the acting user, used as fallback author")
	rootCmd.PersistentFlags().StringVar(&principalLogin, "user-login", "admin", "Login of the acting user")
	rootCmd.PersistentFlags().StringVar(&principalName, "user-name", "", "Display name of the acting user (defaults to the login)")
	rootCmd.PersistentFlags().StringVar(&principalEmail, "user-email", "", "Email of the acting user")
}

// Execute runs the command line with the configuration embedded in the binary.
func Execute(ctx context.Context, cfg config.EmbeddedConfig) error {
	embeddedConfig = cfg
	return rootCmd.ExecuteContext(ctx)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// principal is the operator the command acts for. Command line callers are trusted with
// the elevated privilege.
func principal() model.Principal {
	name := principalName
	if name == "" {
		name = principalLogin
	}
	return model.Principal{
		ID:          principalID,
		Login:       principalLogin,
		DisplayName: name,
		Email:       principalEmail,
		Caps:        []string{security.CapManageOptions},
	}
}

func printf(cmd *cobra.Command, format string, a ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, a...)
}
