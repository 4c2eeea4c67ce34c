package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ZachBeta/neural-rps/internal/application/training"
	"github.com/ZachBeta/neural-rps/internal/domain/rl"
	"github.com/ZachBeta/neural-rps/internal/infrastructure/report"
	"github.com/ZachBeta/neural-rps/internal/infrastructure/store"
)

// Flag variables for the train command
var (
	trainEpisodes    int
	trainUpdateEvery int
	trainEncoding    string
	trainOpponent    string
	trainSeed        int64
	trainReportEvery int
	trainReportPath  string
	trainModelOut    string
	trainDB          string
)

// TrainCmd trains the policy-gradient agent.
var TrainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the policy-gradient agent",
	Long: `Train the linear policy/value agent on the card game.

The opponent either draws uniformly at random (solo variant) or plays
from its own dealt hand (dealt variant). Progress charts stream to the
report file, and finished runs are recorded in the SQLite run database
when one is configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := rl.DefaultTrainConfig()
		cfg.Episodes = trainEpisodes
		cfg.EpisodesPerUpdate = trainUpdateEvery
		cfg.Encoding = rl.Encoding(trainEncoding)
		cfg.Opponent = rl.Opponent(trainOpponent)
		cfg.Seed = trainSeed
		cfg.ReportEvery = trainReportEvery

		if cfg.Episodes < 1 {
			return fmt.Errorf("episodes must be at least 1, got %d", cfg.Episodes)
		}
		if cfg.EpisodesPerUpdate < 1 {
			return fmt.Errorf("update-every must be at least 1, got %d", cfg.EpisodesPerUpdate)
		}
		if cfg.Encoding != rl.EncodingWide && cfg.Encoding != rl.EncodingCompact {
			return fmt.Errorf("unknown encoding %q (want wide or compact)", trainEncoding)
		}
		if cfg.Opponent != rl.OpponentRandom && cfg.Opponent != rl.OpponentDealt {
			return fmt.Errorf("unknown opponent %q (want random or dealt)", trainOpponent)
		}

		opts := make([]training.Option, 0, 2)

		switch trainReportPath {
		case "":
		case "-":
			opts = append(opts, training.WithSink(report.NewWriterSink(os.Stdout)))
		default:
			sink, err := report.NewFileSink(trainReportPath)
			if err != nil {
				return fmt.Errorf("failed to open report file: %w", err)
			}
			defer sink.Close()
			opts = append(opts, training.WithSink(sink))
		}

		if path := dbPath(trainDB); path != "" {
			runs, err := store.NewRunStore(path)
			if err != nil {
				return fmt.Errorf("failed to open run database: %w", err)
			}
			defer runs.Close()
			opts = append(opts, training.WithRunStore(runs))
		}

		trainer := training.New(cfg, rl.DefaultAgentConfig(), log, opts...)

		fmt.Printf("Training for %d episodes (encoding: %s, opponent: %s)\n",
			cfg.Episodes, cfg.Encoding, cfg.Opponent)

		stats, err := trainer.Run()
		if err != nil {
			return fmt.Errorf("training failed: %w", err)
		}

		if trainModelOut != "" {
			if err := trainer.Agent().SaveWeights(trainModelOut); err != nil {
				return fmt.Errorf("failed to save model: %w", err)
			}
		}

		runID, err := trainer.SaveRun(stats, trainModelOut)
		if err != nil {
			return err
		}

		fmt.Println("\nTraining Complete!")
		fmt.Printf("  Episodes:       %d\n", stats.Episodes)
		fmt.Printf("  Updates:        %d\n", stats.Updates)
		fmt.Printf("  Average reward: %.4f\n", stats.AvgReward)
		fmt.Printf("  Invalid steps:  %d\n", stats.InvalidSteps)
		if trainModelOut != "" {
			fmt.Printf("  Model saved:    %s\n", trainModelOut)
		}
		if runID != "" {
			fmt.Printf("  Run recorded:   %s\n", runID)
		}

		return nil
	},
}

func init() {
	TrainCmd.Flags().IntVarP(&trainEpisodes, "episodes", "e", 1000, "Training episodes")
	TrainCmd.Flags().IntVarP(&trainUpdateEvery, "update-every", "u", 10, "Episodes per policy update")
	TrainCmd.Flags().StringVar(&trainEncoding, "encoding", "wide", "State encoding (wide|compact)")
	TrainCmd.Flags().StringVar(&trainOpponent, "opponent", "random", "Opponent mode (random|dealt)")
	TrainCmd.Flags().Int64Var(&trainSeed, "seed", 0, "Random seed (0 = from entropy)")
	TrainCmd.Flags().IntVar(&trainReportEvery, "report-every", 100, "Episodes between chart snapshots")
	TrainCmd.Flags().StringVarP(&trainReportPath, "report", "r", "", "ASCII report output file (- for stdout)")
	TrainCmd.Flags().StringVarP(&trainModelOut, "model-out", "o", "", "Path to save trained weights")
	TrainCmd.Flags().StringVar(&trainDB, "db", "", "Run database path (default $NEURAL_RPS_DB)")
}
