package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/prettymuchbryce/dropfix/internal/pathutil"
	"github.com/prettymuchbryce/dropfix/internal/report"
	"github.com/prettymuchbryce/dropfix/internal/syncroot"
)

// defaultDirs are the well-known dependency directories processed when
// --dirs is not given.
var defaultDirs = []string{".venv", ".conda", "node_modules"}

var verbosity int

var rootCmd = &cobra.Command{
	Use:   "dropfix",
	Short: "dropfix - Keep dependency directories out of Dropbox sync",
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		SetupLogging(verbosity)
	},
}

func SetVersion(v string) {
	rootCmd.Version = v
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity (use -v, -vv for more)")
}

// resolveRoot returns the sync root to operate on: the --path value when
// given, otherwise the auto-detected location. A missing root renders a
// styled error with a --path hint before the fatal error is returned.
func resolveRoot(fsys afero.Fs, pathFlag string, console *report.Console) (string, error) {
	if pathFlag != "" {
		path := pathutil.ExpandTilde(pathFlag)
		ok, err := afero.DirExists(fsys, path)
		if err != nil {
			return "", fmt.Errorf("checking %s: %w", path, err)
		}
		if !ok {
			console.Panel(report.ToneError, "Error",
				fmt.Sprintf("Not a directory: %s", path))
			return "", fmt.Errorf("not a directory: %s", path)
		}
		return path, nil
	}

	root, err := syncroot.Detect(fsys)
	if errors.Is(err, syncroot.ErrNotFound) {
		console.Panel(report.ToneError, "Error",
			"Could not find Dropbox directory.",
			"Please specify your Dropbox path with --path")
		return "", err
	}
	return root, err
}
