package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/recipeql/v1/internal/application/assistant"
	"github.com/recipeql/v1/internal/infrastructure/ai/ollama"
	"github.com/recipeql/v1/internal/infrastructure/config"
	"github.com/recipeql/v1/internal/infrastructure/dataset"
	"github.com/recipeql/v1/internal/infrastructure/persistence/memory"
	"github.com/recipeql/v1/internal/ports/inbound"
	"github.com/recipeql/v1/pkg/logger"
	"github.com/spf13/cobra"
)

func newAskCommand() *cobra.Command {
	var (
		configPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer one question and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// Keep the terminal clean; structured logs go to the log
			// file only when one is configured.
			log, err := logger.New(logger.Config{
				Level:  "error",
				Format: "console",
				File:   cfg.App.LogFile,
			})
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ds, err := dataset.Load(cfg.Dataset.Path, log)
			if err != nil {
				return err
			}

			svc := assistant.NewService(
				ds,
				ollama.NewClient(cfg.AI, log),
				memory.NewCacheRepository(),
				cfg.AI,
				log,
			)

			answer := svc.Ask(cmd.Context(), question)

			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(answer)
			}
			renderAnswer(cmd.OutOrStdout(), answer)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table or json")

	return cmd
}

func renderAnswer(w io.Writer, answer *inbound.Answer) {
	switch answer.Status {
	case inbound.StatusTranslateFailed:
		fmt.Fprintln(w, "Failed to generate query. Please try again.")
		return

	case inbound.StatusRows:
		fmt.Fprintln(w, "Generated query plan:")
		fmt.Fprintln(w, answer.PlanText)
		fmt.Fprintln(w)
		renderTable(w, answer)
		if answer.Summary != "" {
			fmt.Fprintln(w, "\nKey insights:")
			fmt.Fprintln(w, answer.Summary)
		}

	case inbound.StatusFallback:
		fmt.Fprintln(w, "No matching recipes in the dataset. AI-generated recipe:")
		fmt.Fprintln(w)
		fmt.Fprintln(w, answer.Fallback)
	}

	for _, warning := range answer.Warnings {
		fmt.Fprintln(w, "Warning:", warning)
	}
}

func renderTable(w io.Writer, answer *inbound.Answer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(answer.Result.Columns))
	for i, col := range answer.Result.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, r := range answer.Result.Rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = v
		}
		t.AppendRow(row)
	}

	t.Render()
	fmt.Fprintf(w, "(%d of %d matching rows)\n", len(answer.Result.Rows), answer.Result.Total)
}
