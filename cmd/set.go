package cmd

import (
	"errors"
	"fmt"

	"github.com/cwarden/dew/internal/hydration"
	"github.com/cwarden/dew/internal/parser"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <goal|sip> <volume>",
	Short: "Change the daily goal or sip amount",
	Long: `Change a hydration preference. Volumes default to millilitres and
accept units, for example 2000, 2l, 33cl or 8oz.`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"goal", "sip"},
	RunE:      runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	if cfg == nil {
		initConfig()
	}

	logFile, err := setupLogging()
	if err != nil {
		return err
	}
	defer logFile.Close()

	ml, err := parser.NewVolumeParser().Parse(args[1])
	if err != nil {
		return fmt.Errorf("invalid volume %q: %w", args[1], err)
	}

	ledger := openLedger()

	switch args[0] {
	case "goal":
		err = ledger.SetDailyGoalMl(ml)
	case "sip":
		err = ledger.SetSipAmountMl(ml)
	default:
		return fmt.Errorf("unknown preference %q, expected goal or sip", args[0])
	}
	if errors.Is(err, hydration.ErrInvalidPreference) {
		return fmt.Errorf("%s rejected: %w", args[0], err)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Daily goal %d ml, sip %d ml\n", ledger.DailyGoalMl(), ledger.SipAmountMl())
	return nil
}
