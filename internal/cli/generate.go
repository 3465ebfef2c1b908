package cli

import (
	"context"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tigerroll/wpgen/internal/app"
	"github.com/tigerroll/wpgen/pkg/generator/client"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
)

type genConfig struct {
	postType  string
	number    int
	chunkSize int
	sql       bool
	out       string
	runID     string
}

var genCfg genConfig

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate items in chunks",
	Long: `Generates the requested number of items chunk by chunk. Options not given on the
command line are taken from the stored settings, and the result is stored back.
In SQL mode nothing is written to the database; the script goes to --out.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&genCfg.postType, "type", "t", "", "Item type: post, page, comment or user")
	generateCmd.Flags().IntVarP(&genCfg.number, "number", "n", 0, "Number of items to generate")
	generateCmd.Flags().IntVarP(&genCfg.chunkSize, "chunk-size", "c", 0, "Items per chunk")
	generateCmd.Flags().BoolVar(&genCfg.sql, "sql", false, "Produce a SQL script instead of writing to the database")
	generateCmd.Flags().StringVarP(&genCfg.out, "out", "o", "-", "Destination of the SQL script (- for stdout)")
	generateCmd.Flags().StringVar(&genCfg.runID, "run-id", "", "Name of the staged SQL run")
}

// submitted collects the flags that were set, in stored option form.
func submitted(cmd *cobra.Command) map[string]string {
	out := make(map[string]string)
	flags := cmd.Flags()
	if flags.Changed("type") {
		out["post_type"] = genCfg.postType
	}
	if flags.Changed("number") {
		out["number"] = strconv.Itoa(genCfg.number)
	}
	if flags.Changed("chunk-size") {
		out["chunk_size"] = strconv.Itoa(genCfg.chunkSize)
	}
	if flags.Changed("sql") {
		out["sql"] = strconv.FormatBool(genCfg.sql)
	}
	return out
}

func runGenerate(cmd *cobra.Command, args []string) error {
	return app.Run(cmd.Context(), envFilePath, embeddedConfig, sinkFor(cmd), func(ctx context.Context, d app.Deps) error {
		s, err := d.Settings.Resolve(ctx, submitted(cmd))
		if err != nil {
			return err
		}

		opts := client.Options{Principal: principal(), RunID: genCfg.runID}
		if s.SQL {
			w, closeFn, err := openOut(cmd, genCfg.out)
			if err != nil {
				return err
			}
			defer closeFn()
			opts.Download = w
		}

		_, err = d.Loop.Run(ctx, s, opts)
		return err
	})
}

func openOut(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, exception.IO("cli", "failed to create "+path, err)
	}
	return f, func() { f.Close() }, nil
}

// sinkFor writes progress to stderr, keeping stdout free for a SQL script.
func sinkFor(cmd *cobra.Command) client.Sink {
	return func(message string) {
		cmd.PrintErrln(message)
	}
}
