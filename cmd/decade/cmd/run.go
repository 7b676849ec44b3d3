package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/decade/game"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a full simulation without interaction",
	Long: `Run the simulation for a number of months with no player input.

Useful for watching baseline drift, stress-testing a config, or filling a
journal with a reference run.

Example:
  decade run -f examples/configs/headless.yaml --months 120`,
	RunE: runRun,
}

var (
	runMonths  int
	runVerbose bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVarP(&runMonths, "months", "m", game.MaxMonths, "months to simulate")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "debug logging")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(runVerbose)

	ctx := context.Background()
	engine, closer, err := buildEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closer()

	for i := 0; i < runMonths; i++ {
		if err := engine.Advance(ctx); err != nil {
			if errors.Is(err, game.ErrGameOver) {
				break
			}
			return fmt.Errorf("advance: %w", err)
		}
	}

	st := engine.State()
	bold.Printf("Simulated %d months\n", st.GameMonth)
	fmt.Printf("  Cash:         $%.2f\n", st.Cash)
	fmt.Printf("  Deposit:      $%.2f\n", st.Deposit)
	fmt.Printf("  Debt:         $%.2f\n", st.Debt)
	fmt.Printf("  Credit score: %d\n", st.CreditScore)
	fmt.Printf("  Net worth:    $%.2f\n", st.NetWorth)
	bold.Printf("Rank: %s\n", engine.Rank())
	return nil
}
