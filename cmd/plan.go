package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kochimetro/induction/config"
	"github.com/kochimetro/induction/core/planner"
	"github.com/kochimetro/induction/infra/ingest"
	"github.com/kochimetro/induction/infra/logger"
	"github.com/kochimetro/induction/pkg/export"
)

var (
	trainsetsPath string
	jobCardsPath  string
	cleaningPath  string
	outPath       string
	outFormat     string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute an induction plan from depot CSV exports",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&trainsetsPath, "trainsets", "trainsets.csv", "trainsets CSV file")
	planCmd.Flags().StringVar(&jobCardsPath, "job-cards", "", "job cards CSV file")
	planCmd.Flags().StringVar(&cleaningPath, "cleaning-slots", "", "cleaning slots CSV file")
	planCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	planCmd.Flags().StringVarP(&outFormat, "format", "f", "csv", "output format: csv or json")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logg := logger.New("plan-command")

	in := planner.Input{}
	if in.Trains, err = ingest.ReadRowsFile(trainsetsPath); err != nil {
		return fmt.Errorf("read trainsets: %w", err)
	}
	if jobCardsPath != "" {
		if in.JobCards, err = ingest.ReadRowsFile(jobCardsPath); err != nil {
			return fmt.Errorf("read job cards: %w", err)
		}
	}
	if cleaningPath != "" {
		if in.CleaningSlots, err = ingest.ReadRowsFile(cleaningPath); err != nil {
			return fmt.Errorf("read cleaning slots: %w", err)
		}
	}

	p := planner.New(logg, nil)
	result, warnings, err := p.Recompute(in, cfg.Planner)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logg.Warnf("%s: %s", w.Row, w.Reason)
	}

	var out io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	switch outFormat {
	case "csv":
		return export.WriteCSV(out, result)
	case "json":
		return export.WriteJSON(out, result)
	default:
		return fmt.Errorf("unsupported format: %s", outFormat)
	}
}
