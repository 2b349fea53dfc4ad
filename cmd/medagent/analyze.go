package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sandevgo/medagent/internal/core"
	"github.com/sandevgo/medagent/internal/service/ui"
	"github.com/spf13/cobra"
)

var analyzeFile string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [report text]",
	Short: "Run the diagnosis pipeline once and print the results",
	Long: `Runs the full specialist panel against a patient report given as
arguments or read from a file, prints each specialist's notes and the
final synthesis, and persists the session like the web server does.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ctx, cleanup := setupLogger(ctx)
		defer cleanup()

		initEnv(ctx)

		report, err := readReport(args)
		if err != nil {
			return err
		}

		deps := buildPipeline(ctx)
		defer func() { _ = deps.cleanup.Shutdown(ctx) }()

		var result *core.SessionResult
		err = runWithSpinner(ctx, "Consulting the specialist panel...", func(ctx context.Context) error {
			var runErr error
			result, runErr = deps.pipeline.Run(ctx, report)
			return runErr
		})
		if err != nil {
			return err
		}

		printResult(result)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "read the patient report from a file")
	rootCmd.AddCommand(analyzeCmd)
}

func readReport(args []string) (string, error) {
	if analyzeFile != "" {
		data, err := os.ReadFile(analyzeFile)
		if err != nil {
			return "", fmt.Errorf("failed to read report file: %w", err)
		}
		report := strings.TrimSpace(string(data))
		if report == "" {
			return "", errors.New("report file is empty")
		}
		return report, nil
	}

	report := strings.TrimSpace(strings.Join(args, " "))
	if report == "" {
		return "", errors.New("provide a patient report as arguments or via --file")
	}
	return report, nil
}

func printResult(result *core.SessionResult) {
	fmt.Println(ui.MetaStyle.Render("Session " + result.SessionID))
	fmt.Println()

	for _, key := range core.SpecialistKeys {
		fmt.Println(ui.SectionStyle.Render("== " + key + " =="))
		fmt.Println(result.Outputs[key])
		fmt.Println()
	}

	fmt.Println(ui.FinalStyle.Render("== Final Multidisciplinary Diagnosis =="))
	fmt.Println(result.Final())
	fmt.Println()
	fmt.Println(ui.MetaStyle.Render("Logs: " + result.LogJSON + ", " + result.LogTXT))
}
