package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kyaoi/mdtabs/internal/app"
	"github.com/kyaoi/mdtabs/internal/config"
	"github.com/kyaoi/mdtabs/internal/logging"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mdtabs [flags] <file|dir>",
		Short: "Page through Markdown files as tabs",
		Long: `mdtabs shows every Markdown file of a directory as a tab. Click a tab
or swipe the content with the mouse to change pages.`,
		Example: `  # Browse the notes in a directory
  mdtabs ./notes

  # Only pages tagged "go", tabs of equal width
  mdtabs --tag go --fill equal ./notes`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if _, err := logging.Setup(cfg.Log.File, cfg.Log.Level); err != nil {
				return err
			}
			defer logging.Close()

			return app.Run(cmd.Context(), filepath.Clean(args[0]), cfg)
		},
	}
	config.RegisterFlags(rootCmd.Flags())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "mdtabs:", err)
		stop()
		os.Exit(1)
	}
}
