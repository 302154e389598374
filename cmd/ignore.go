package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/prettymuchbryce/dropfix/internal/app"
	"github.com/prettymuchbryce/dropfix/internal/marker"
	"github.com/prettymuchbryce/dropfix/internal/report"
)

var (
	ignorePath   string
	ignoreDirs   []string
	ignoreDryRun bool
	ignoreYes    bool
)

var ignoreCmd = &cobra.Command{
	Use:   "ignore",
	Short: "Mark matching directories so Dropbox skips them",
	RunE: func(cmd *cobra.Command, args []string) error {
		console := report.NewConsole(cmd.OutOrStdout())
		fsys := afero.NewOsFs()

		root, err := resolveRoot(fsys, ignorePath, console)
		if err != nil {
			return err
		}

		mode := "Active"
		if ignoreDryRun {
			console.Panel(report.ToneNeutral, "", "DRY RUN MODE - No changes will be made")
			mode = "Dry Run"
		}
		console.KeyValueTable(report.ToneNeutral, "Configuration", [][2]string{
			{"Dropbox Path", root},
			{"Mode", mode},
			{"Directories", strings.Join(ignoreDirs, ", ")},
		})

		if !ignoreDryRun && !ignoreYes {
			if !confirm(cmd, "Proceed?") {
				console.Notice("Aborted.")
				return nil
			}
		}

		var m marker.Marker
		if ignoreDryRun {
			m = marker.NewDryRun()
		} else {
			m = marker.New(marker.Detect())
		}

		a := &app.App{Fs: fsys, Marker: m, Reporter: console}
		result, err := a.Ignore(root, ignoreDirs)
		if err != nil {
			return err
		}

		processedLabel := "Directories processed"
		if ignoreDryRun {
			processedLabel = "Directories that would be processed"
		}
		rows := [][2]string{
			{processedLabel, fmt.Sprintf("%d", result.Processed)},
		}
		if result.Failed > 0 {
			rows = append(rows, [2]string{"Errors encountered", fmt.Sprintf("%d", result.Failed)})
		}
		title := "Summary"
		if ignoreDryRun {
			title = "Dry Run Summary"
		}
		console.KeyValueTable(report.ToneNeutral, title, rows)

		if !ignoreDryRun && result.Processed > 0 {
			console.Notice("Note: You may need to restart Dropbox for changes to take effect.")
		}
		return nil
	},
}

// confirm asks a yes/no question on the command's input stream.
// Anything but an explicit yes declines.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s [y/N] ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	ignoreCmd.Flags().StringVar(&ignorePath, "path", "", "Dropbox path (auto-detects if not specified)")
	ignoreCmd.Flags().StringSliceVar(&ignoreDirs, "dirs", defaultDirs, "directories to process")
	ignoreCmd.Flags().BoolVar(&ignoreDryRun, "dry-run", false, "preview changes without applying")
	ignoreCmd.Flags().BoolVarP(&ignoreYes, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(ignoreCmd)
}
