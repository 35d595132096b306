package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"durazubs/internal/config"
	"durazubs/internal/history"
	"durazubs/internal/pipeline"
	"durazubs/internal/services"
	"durazubs/internal/textutil"
)

type syncFlags struct {
	output    string
	style     string
	translate string
	response  string
	request   string
	header    string
	trailing  string
	tolerance time.Duration
}

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var flags syncFlags

	cmd := &cobra.Command{
		Use:   "sync <timing.ass> <text.ass>",
		Short: "Merge the timing of one track with the text of another",
		Long: `Merge two ASS tracks of the same episode. The timing track supplies the
timeline and the scene blocks; the text track supplies the dialogue text,
shifted onto the timing track by the running offset between the two. Scene
blocks are copied unchanged after the record they follow in the timing track.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applySyncFlags(cmd, cfg, flags); err != nil {
				return err
			}

			logger, closer, err := ctx.newLogger()
			if err != nil {
				return err
			}
			defer closer.Close()

			journal, closeJournal, err := ctx.openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer closeJournal()

			proc, err := pipeline.NewFromConfig(cfg, journal, logger)
			if err != nil {
				return err
			}

			req := pipeline.Request{
				TimingPath: args[0],
				TextPath:   args[1],
				OutputPath: strings.TrimSpace(flags.output),
			}
			if req.OutputPath == "" {
				req.OutputPath = defaultMergedPath(req.TextPath)
			}

			report, err := proc.Run(cmd.Context(), req)
			out := cmd.OutOrStdout()
			if errors.Is(err, services.ErrPending) {
				fmt.Fprintf(out, "Run %s is waiting for a translation response\n", history.ShortID(report.RunID))
				return err
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Wrote %s\n", req.OutputPath)
			fmt.Fprintln(out, renderReport(report))
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Merged output file (default: <text>.merged.ass next to the text track)")
	cmd.Flags().StringVar(&flags.style, "style", "", "Style profile to apply (main, second, none)")
	cmd.Flags().StringVar(&flags.translate, "translate", "", "Scene translation backend (none, file, llm)")
	cmd.Flags().StringVar(&flags.response, "response", "", "Translation response file for the file backend")
	cmd.Flags().StringVar(&flags.request, "request", "", "Translation request file for the file backend")
	cmd.Flags().StringVar(&flags.header, "header", "", "Header source (timing, text)")
	cmd.Flags().StringVar(&flags.trailing, "trailing", "", "Scene blocks after the last dialogue (append, drop)")
	cmd.Flags().DurationVar(&flags.tolerance, "tolerance", 0, "Drift tolerance when placing scene blocks (e.g. 1s, 1500ms)")
	return cmd
}

// applySyncFlags layers explicitly set flags over the loaded configuration
// and validates the result.
func applySyncFlags(cmd *cobra.Command, cfg *config.Config, flags syncFlags) error {
	changed := cmd.Flags().Changed
	if changed("style") {
		cfg.Style.Profile = config.NormalizeProfile(flags.style)
	}
	if changed("translate") {
		cfg.Translation.Backend = strings.ToLower(strings.TrimSpace(flags.translate))
	}
	if changed("response") {
		path, err := config.ExpandPath(strings.TrimSpace(flags.response))
		if err != nil {
			return fmt.Errorf("resolve --response: %w", err)
		}
		cfg.Translation.ResponseFile = path
	}
	if changed("request") {
		path, err := config.ExpandPath(strings.TrimSpace(flags.request))
		if err != nil {
			return fmt.Errorf("resolve --request: %w", err)
		}
		cfg.Translation.RequestFile = path
	}
	if changed("header") {
		cfg.Sync.HeaderSource = strings.ToLower(strings.TrimSpace(flags.header))
	}
	if changed("trailing") {
		cfg.Sync.TrailingBlocks = strings.ToLower(strings.TrimSpace(flags.trailing))
	}
	if changed("tolerance") {
		if flags.tolerance <= 0 {
			return errors.New("--tolerance must be positive")
		}
		cfg.Sync.ToleranceSeconds = flags.tolerance.Seconds()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", services.ErrConfiguration, err)
	}
	return nil
}

func defaultMergedPath(textPath string) string {
	base := filepath.Base(textPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	name := textutil.SanitizeFileName(stem)
	if name == "" {
		name = "merged"
	}
	return filepath.Join(filepath.Dir(textPath), name+".merged.ass")
}

func renderReport(report pipeline.Report) string {
	rows := [][]string{
		{"Run", history.ShortID(report.RunID)},
		{"Records", strconv.Itoa(report.Records)},
		{"Scene blocks placed", strconv.Itoa(report.Placed)},
		{"Scene blocks unplaced", strconv.Itoa(report.Unplaced)},
		{"Offset", formatDelta(report.Delta)},
		{"Dropped (timing)", strconv.Itoa(report.Timing.Dropped())},
		{"Dropped (text)", strconv.Itoa(report.Text.Dropped())},
		{"Translated", strconv.Itoa(report.Translated)},
		{"Styled", yesNo(report.Styled)},
		{"Elapsed", report.Duration.Round(time.Millisecond).String()},
	}
	if report.BonusTrack != "" {
		rows = append(rows, []string{"Scene track", report.BonusTrack})
	}
	return renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}

func formatDelta(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 2, 64) + "s"
}
