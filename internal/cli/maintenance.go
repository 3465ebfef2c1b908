package cli

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/tigerroll/wpgen/internal/app"
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete every generated item",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), envFilePath, embeddedConfig, sinkFor(cmd), func(ctx context.Context, d app.Deps) error {
			_, err := d.Loop.Delete(ctx)
			return err
		})
	},
}

var recountCmd = &cobra.Command{
	Use:   "recount",
	Short: "Recompute the comment count of every post",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), envFilePath, embeddedConfig, sinkFor(cmd), func(ctx context.Context, d app.Deps) error {
			msg, err := d.Maintenance.UpdateCommentCounts(ctx)
			if err != nil {
				return err
			}
			cmd.PrintErrln(msg)
			return nil
		})
	},
}

var flushCacheCmd = &cobra.Command{
	Use:   "flush-cache",
	Short: "Flush the persistent object cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), envFilePath, embeddedConfig, sinkFor(cmd), func(ctx context.Context, d app.Deps) error {
			msg, err := d.Maintenance.CacheFlush(ctx)
			if err != nil {
				return err
			}
			cmd.PrintErrln(msg)
			return nil
		})
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report configuration problems that affect bulk loading",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), envFilePath, embeddedConfig, sinkFor(cmd), func(ctx context.Context, d app.Deps) error {
			advisories := d.Engine.Advisories(ctx)
			if len(advisories) == 0 {
				cmd.PrintErrln("No problems found.")
				return nil
			}
			for _, a := range advisories {
				printf(cmd, "%s: %s\n", a.Kind, a.Message)
			}
			return nil
		})
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue nonces for the HTTP endpoints",
	Long: `Prints one nonce per guarded action as JSON. Nonces are signed with
security.token_secret, so the server must share the configured secret.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), envFilePath, embeddedConfig, sinkFor(cmd), func(ctx context.Context, d app.Deps) error {
			nonces, err := d.Guard.Nonces(principal())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(nonces)
		})
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd, recountCmd, flushCacheCmd, checkCmd, tokenCmd)
}
