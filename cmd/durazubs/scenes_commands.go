package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"durazubs/internal/pipeline"
	"durazubs/internal/trackio"
	"durazubs/internal/translate"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var output string
	var chunkSize int
	var target string

	cmd := &cobra.Command{
		Use:   "extract <file.ass>",
		Short: "Write the translation request for a track's scene dialogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("chunk-size") {
				if chunkSize <= 0 {
					return fmt.Errorf("--chunk-size must be positive")
				}
				cfg.Translation.ChunkSize = chunkSize
			}
			if cmd.Flags().Changed("target") && strings.TrimSpace(target) != "" {
				cfg.Translation.TargetLanguage = strings.TrimSpace(target)
			}

			proc, closer, err := ctx.offlineProcessor()
			if err != nil {
				return err
			}
			defer closer.Close()

			lines, err := trackio.Source{Path: args[0]}.ReadLines(cmd.Context())
			if err != nil {
				return err
			}
			payload, err := proc.LinesToTranslate(lines)
			if err != nil {
				return fmt.Errorf("extract %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if strings.TrimSpace(output) == "" {
				for _, line := range payload {
					fmt.Fprintln(out, line)
				}
				return nil
			}
			sink := trackio.Sink{Path: output, Protected: []string{args[0]}}
			if err := sink.WriteLines(cmd.Context(), payload); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote translation request to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Request file (default: stdout)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "Lines per request chunk (default from translation.chunk_size)")
	cmd.Flags().StringVar(&target, "target", "", "Target language named in the instructions")
	return cmd
}

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "apply <file.ass> <translations>",
		Short: "Inject translated lines into a track's scene dialogue",
		Long: `Inject translated lines into the scene records of a track, in order.
The translations file holds one line per scene record; files ending in .yaml
or .yml hold a YAML list of strings instead.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(output) == "" {
				return fmt.Errorf("--output is required")
			}
			proc, closer, err := ctx.offlineProcessor()
			if err != nil {
				return err
			}
			defer closer.Close()

			lines, err := trackio.Source{Path: args[0]}.ReadLines(cmd.Context())
			if err != nil {
				return err
			}
			translations, err := translate.ReadResponse(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			applied, err := proc.ApplyTranslation(lines, translations)
			if err != nil {
				return fmt.Errorf("apply %s: %w", args[1], err)
			}
			sink := trackio.Sink{Path: output, Protected: []string{args[0], args[1]}}
			if err := sink.WriteLines(cmd.Context(), applied); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d translated lines to %s\n", len(translations), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	return cmd
}

// offlineProcessor builds a processor without a translation backend, for
// commands that only handle files.
func (c *commandContext) offlineProcessor() (*pipeline.Processor, io.Closer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, closer, err := c.newLogger()
	if err != nil {
		return nil, nil, err
	}
	proc, err := pipeline.NewProcessor(pipeline.Options{
		Sync:      pipeline.SyncOptions(cfg),
		Profile:   pipeline.StyleProfile(cfg.Style.Profile),
		ChunkSize: cfg.Translation.ChunkSize,
		Target:    cfg.Translation.TargetLanguage,
		Logger:    logger,
	})
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return proc, closer, nil
}
