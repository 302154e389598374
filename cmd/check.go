package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/prettymuchbryce/dropfix/internal/app"
	"github.com/prettymuchbryce/dropfix/internal/marker"
	"github.com/prettymuchbryce/dropfix/internal/report"
)

var (
	checkPath   string
	checkDirs   []string
	checkShow   string
	checkOutput string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify which directories Dropbox ignores",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch checkShow {
		case "all", "ignored", "not-ignored":
		default:
			return fmt.Errorf("invalid --show value %q (want all, ignored, or not-ignored)", checkShow)
		}
		switch checkOutput {
		case "text", "yaml":
		default:
			return fmt.Errorf("invalid --output value %q (want text or yaml)", checkOutput)
		}

		console := report.NewConsole(cmd.OutOrStdout())
		fsys := afero.NewOsFs()

		root, err := resolveRoot(fsys, checkPath, console)
		if err != nil {
			return err
		}

		a := &app.App{
			Fs:     fsys,
			Marker: marker.New(marker.Detect()),
		}

		if checkOutput == "yaml" {
			result, err := a.Check(root, checkDirs)
			if err != nil {
				return err
			}
			return report.EncodeYAML(cmd.OutOrStdout(), result.Summary(root))
		}

		console.KeyValueTable(report.ToneNeutral, "Check Configuration", [][2]string{
			{"Dropbox Path", root},
			{"Directories", strings.Join(checkDirs, ", ")},
			{"Filter", checkShow},
		})

		a.Reporter = console
		result, err := a.Check(root, checkDirs)
		if err != nil {
			return err
		}

		if result.Total() == 0 {
			console.Notice("No matching directories found.")
			return nil
		}

		if checkShow != "not-ignored" && len(result.Ignored) > 0 {
			console.Groups(report.ToneOK,
				fmt.Sprintf("Directories ignored by Dropbox (%d)", len(result.Ignored)),
				app.Collapse(result.Ignored))
		}
		if checkShow != "ignored" && len(result.NotIgnored) > 0 {
			console.Groups(report.ToneNeutral,
				fmt.Sprintf("Directories NOT ignored by Dropbox (%d)", len(result.NotIgnored)),
				app.Collapse(result.NotIgnored))
		}
		if len(result.Errored) > 0 {
			console.Groups(report.ToneError,
				fmt.Sprintf("Directories with check errors (%d)", len(result.Errored)),
				app.Collapse(result.Errored))
		}

		rows := [][2]string{
			{"Total directories checked", fmt.Sprintf("%d", result.Total())},
			{"Ignored by Dropbox", fmt.Sprintf("%d", len(result.Ignored))},
			{"Not ignored", fmt.Sprintf("%d", len(result.NotIgnored))},
		}
		if len(result.Errored) > 0 {
			rows = append(rows, [2]string{"Check errors", fmt.Sprintf("%d", len(result.Errored))})
		}
		console.KeyValueTable(report.ToneNeutral, "Summary", rows)

		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkPath, "path", "", "Dropbox path (auto-detects if not specified)")
	checkCmd.Flags().StringSliceVar(&checkDirs, "dirs", defaultDirs, "directories to check")
	checkCmd.Flags().StringVar(&checkShow, "show", "all", "filter results (all, ignored, not-ignored)")
	checkCmd.Flags().StringVar(&checkOutput, "output", "text", "output format (text, yaml)")
	rootCmd.AddCommand(checkCmd)
}
