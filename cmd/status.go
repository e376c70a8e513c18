package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print today's hydration progress and exit",
	Long:  `Print today's intake, goal, sip size and streak in a simple text format and exit.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	// Ensure config is loaded
	if cfg == nil {
		initConfig()
	}

	logFile, err := setupLogging()
	if err != nil {
		return err
	}
	defer logFile.Close()

	ledger := openLedger()
	now := time.Now()
	// An unstamped snapshot is left for the first TUI launch, which opens setup.
	if !ledger.FirstRun() {
		ledger.RolloverIfNewDay(now)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Hydration for %s:\n", now.Format("Mon, Jan 2 2006"))
	fmt.Fprintf(out, "  Intake: %d/%d ml\n", ledger.CurrentIntakeMl(), ledger.DailyGoalMl())
	fmt.Fprintf(out, "  Sip:    %d ml\n", ledger.SipAmountMl())
	fmt.Fprintf(out, "  Streak: %d day(s)\n", ledger.StreakDays())

	if last, ok := ledger.LastIntakeTimestamp(); ok {
		fmt.Fprintf(out, "  Last drink: %s (%s ago)\n",
			last.Format("15:04"), now.Sub(last).Truncate(time.Minute))
	} else {
		fmt.Fprintln(out, "  Last drink: never")
	}

	if ledger.GoalMet() {
		fmt.Fprintln(out, "Goal met for today.")
	}

	return nil
}
