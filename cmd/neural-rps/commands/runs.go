package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ZachBeta/neural-rps/internal/infrastructure/store"
)

// Flag variables for the runs command
var (
	runsDB    string
	runsLimit int
)

// RunsCmd lists recorded training runs.
var RunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded training runs",
	Long:  `List training runs recorded in the run database, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := dbPath(runsDB)
		if path == "" {
			return fmt.Errorf("no run database configured (set --db or NEURAL_RPS_DB)")
		}

		runs, err := store.NewRunStore(path)
		if err != nil {
			return fmt.Errorf("failed to open run database: %w", err)
		}
		defer runs.Close()

		list, err := runs.ListRuns(runsLimit)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}

		if len(list) == 0 {
			fmt.Println("No runs recorded")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tENCODING\tOPPONENT\tEPISODES\tAVG REWARD\tINVALID\tFINISHED")
		fmt.Fprintln(w, strings.Repeat("-", 80))
		for _, run := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4f\t%d\t%s\n",
				shortID(run.ID), run.Config.Encoding, run.Config.Opponent,
				run.Stats.Episodes, run.Stats.AvgReward, run.Stats.InvalidSteps,
				run.Stats.FinishedAt.Format("2006-01-02 15:04:05"))
		}
		w.Flush()

		return nil
	},
}

// shortID abbreviates a run ID for table display. IDs shorter than the
// abbreviation pass through unchanged.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}

func init() {
	RunsCmd.Flags().StringVar(&runsDB, "db", "", "Run database path (default $NEURAL_RPS_DB)")
	RunsCmd.Flags().IntVarP(&runsLimit, "limit", "l", 20, "Max runs to list")
}
