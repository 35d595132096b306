package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"durazubs/internal/config"
	"durazubs/internal/pipeline"
	"durazubs/internal/stylist"
	"durazubs/internal/trackio"
)

func newStyleCommand(ctx *commandContext) *cobra.Command {
	var output string
	var profileName string

	cmd := &cobra.Command{
		Use:   "style <file.ass>",
		Short: "Restyle every dialogue record of a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(output) == "" {
				return errors.New("--output is required")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			name := cfg.Style.Profile
			if cmd.Flags().Changed("profile") {
				name = config.NormalizeProfile(profileName)
			}
			profile, err := resolveProfile(name)
			if err != nil {
				return err
			}

			lines, err := trackio.Source{Path: args[0]}.ReadLines(cmd.Context())
			if err != nil {
				return err
			}
			styled, err := stylist.Apply(lines, profile)
			if err != nil {
				return fmt.Errorf("style %s: %w", args[0], err)
			}
			sink := trackio.Sink{Path: output, Protected: []string{args[0]}}
			if err := sink.WriteLines(cmd.Context(), styled); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied style %s to %s\n", profile.Name(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	cmd.Flags().StringVar(&profileName, "profile", "", "Style profile (main, second; default from style.profile)")
	return cmd
}

func resolveProfile(name string) (stylist.Profile, error) {
	switch name {
	case "":
		return nil, errors.New("no style profile selected; pass --profile main or --profile second")
	case "main", "second":
		return pipeline.StyleProfile(name), nil
	default:
		return nil, fmt.Errorf("unknown style profile %q (want main or second)", name)
	}
}
