package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kochimetro/induction/internal/fleetgen"
)

var (
	genDir    string
	genTrains int
	genSlots  int
	genSeed   int64
)

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Fleet related commands",
}

var fleetGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a synthetic depot snapshot as CSV files",
	RunE:  runFleetGen,
}

func init() {
	fleetGenCmd.Flags().StringVar(&genDir, "dir", ".", "output directory")
	fleetGenCmd.Flags().IntVar(&genTrains, "trains", 25, "number of trainsets")
	fleetGenCmd.Flags().IntVar(&genSlots, "slots", 6, "number of cleaning slots")
	fleetGenCmd.Flags().Int64Var(&genSeed, "seed", time.Now().UnixNano(), "random seed")
	fleetCmd.AddCommand(fleetGenCmd)
	rootCmd.AddCommand(fleetCmd)
}

func runFleetGen(cmd *cobra.Command, args []string) error {
	fleet := fleetgen.Generate(fleetgen.Options{Trains: genTrains, Slots: genSlots, Seed: genSeed})
	if err := fleetgen.WriteCSVs(genDir, fleet); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "generated %d trainsets, %d job cards, %d cleaning slots in %s\n",
		len(fleet.Trains), len(fleet.JobCards), len(fleet.Slots), genDir)
	return nil
}
