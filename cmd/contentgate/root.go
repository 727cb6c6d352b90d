// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/contentgate/internal/config"
	"github.com/tomtom215/contentgate/internal/dataset"
	"github.com/tomtom215/contentgate/internal/logging"
	"github.com/tomtom215/contentgate/internal/metrics"
	"github.com/tomtom215/contentgate/internal/models"
	"github.com/tomtom215/contentgate/internal/policy"
)

// payloadError is a failure whose {"error": ...} document has already been
// written to stdout.
type payloadError struct {
	msg string
}

func (e *payloadError) Error() string {
	return e.msg
}

// app is the state shared by the root command and its subcommands.
type app struct {
	stdout     io.Writer
	configPath string
	cfg        *config.Config
}

// analyzeFlags are the root command's local flags.
type analyzeFlags struct {
	data        string
	age         int
	verified    string
	output      string
	metricsFile string
}

// execute runs the command line and returns the process exit status.
func execute(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		var payload *payloadError
		if !errors.As(err, &payload) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	var flags analyzeFlags

	cmd := &cobra.Command{
		Use:   "contentgate",
		Short: "Age-gated content rating and analysis",
		Long: `contentgate rates posts and stories, keeps only what the viewer's age
profile allows, and prints topic, story and recommendation analysis as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(commandMode(cmd))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd.Context(), flags)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: CONFIG_PATH or ./contentgate.yaml)")

	cmd.Flags().StringVar(&flags.data, "data", "", "Path to JSON data file")
	cmd.Flags().IntVar(&flags.age, "age", 0, "User age")
	cmd.Flags().StringVar(&flags.verified, "verified", "", "Age verification status (true|false)")
	cmd.Flags().StringVar(&flags.output, "output", "", "Also write the analysis to this file")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	for _, name := range []string{"data", "age", "verified"} {
		_ = cmd.MarkFlagRequired(name)
	}

	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newRateCmd(a))
	cmd.AddCommand(newAuditCmd(a))
	return cmd
}

// commandMode names the running command for the log "mode" field.
func commandMode(cmd *cobra.Command) string {
	if !cmd.HasParent() {
		return "analyze"
	}
	return cmd.Name()
}

// loadConfig loads configuration and initializes logging. Logs always go to
// stderr.
func (a *app) loadConfig(mode string) error {
	cfg, err := config.LoadWithKoanf(a.configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	settings := cfg.LoggingSettings()
	settings.Mode = mode
	logging.Init(settings)
	a.cfg = cfg
	return nil
}

// parseVerified treats only a case-insensitive "true" as verified.
func parseVerified(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

func (a *app) runAnalyze(ctx context.Context, flags analyzeFlags) error {
	profile := policy.AgeProfile{Verified: parseVerified(flags.verified), Age: flags.age}
	if err := profile.Validate(); err != nil {
		return a.fail(err.Error())
	}

	ctx = logging.ContextWithNewCorrelationID(ctx)
	log := logging.Ctx(ctx)

	in, err := dataset.Load(flags.data)
	if err != nil {
		return a.fail("Failed to load data: " + err.Error())
	}

	eng, err := newEngine(a.cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	session := policy.New()
	session.SetProfile(profile.Verified, profile.Age)
	allowed := session.AllowedRatings()
	log.Debug().
		Bool("verified", profile.Verified).
		Str("allowed", allowed.String()).
		Msg("Age policy derived")

	out, err := eng.pipeline.Run(ctx, in, allowed)
	if err != nil {
		return a.fail("Analysis failed: " + err.Error())
	}

	if err := writeJSON(a.stdout, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if flags.output != "" {
		if err := dataset.Export(flags.output, out); err != nil {
			log.Warn().Err(err).Msg("Analysis export failed")
		}
	}

	metricsFile := flags.metricsFile
	if metricsFile == "" {
		metricsFile = a.cfg.Metrics.Textfile
	}
	if metricsFile != "" {
		if err := metrics.WriteTextfile(metricsFile); err != nil {
			log.Warn().Err(err).Str("path", metricsFile).Msg("Metrics export failed")
		}
	}
	return nil
}

// fail writes the error document to stdout and returns a payloadError.
func (a *app) fail(msg string) error {
	logging.Error().Msg(msg)
	if err := writeJSON(a.stdout, models.ErrorResponse{Error: msg}); err != nil {
		return fmt.Errorf("write error payload: %w", err)
	}
	return &payloadError{msg: msg}
}

// writeJSON writes v as one compact JSON line.
func writeJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
