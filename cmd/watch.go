package cmd

import (
	"context"
	"errors"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/prettymuchbryce/dropfix/internal/marker"
	"github.com/prettymuchbryce/dropfix/internal/report"
	"github.com/prettymuchbryce/dropfix/internal/watch"
)

var (
	watchPath     string
	watchDirs     []string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the Dropbox folder and mark new matching directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		console := report.NewConsole(cmd.OutOrStdout())
		fsys := afero.NewOsFs()

		root, err := resolveRoot(fsys, watchPath, console)
		if err != nil {
			return err
		}

		console.KeyValueTable(report.ToneNeutral, "Watch Configuration", [][2]string{
			{"Dropbox Path", root},
			{"Directories", strings.Join(watchDirs, ", ")},
			{"Debounce", watchDebounce.String()},
		})
		console.Notice("Watching... press Ctrl-C to stop.")

		w, err := watch.New(fsys, root, watchDirs, marker.New(marker.Detect()), watchDebounce)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchPath, "path", "", "Dropbox path (auto-detects if not specified)")
	watchCmd.Flags().StringSliceVar(&watchDirs, "dirs", defaultDirs, "directories to mark when created")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "wait after a create event before marking")
	rootCmd.AddCommand(watchCmd)
}
