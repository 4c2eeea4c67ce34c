// Package training provides the rollout-and-update training service.
package training

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ZachBeta/neural-rps/internal/domain/game"
	"github.com/ZachBeta/neural-rps/internal/domain/rl"
	"github.com/ZachBeta/neural-rps/internal/infrastructure/env"
	"github.com/ZachBeta/neural-rps/internal/infrastructure/policy"
	"github.com/ZachBeta/neural-rps/internal/infrastructure/report"
	"github.com/ZachBeta/neural-rps/internal/infrastructure/store"
)

// actionLabels name the three actions in chart output.
var actionLabels = []string{game.Rock.String(), game.Paper.String(), game.Scissors.String()}

// wideInputLabels name the 9-dimensional state slots.
var wideInputLabels = []string{
	"LastR", "LastP", "LastS",
	"HandR", "HandP", "HandS",
	"OppR", "OppP", "OppS",
}

// compactInputLabels name the 6-dimensional state slots.
var compactInputLabels = []string{
	"LastR", "LastP", "LastS",
	"HasR", "HasP", "HasS",
}

// Trainer owns the single environment and single agent of a run and
// drives the strict reset / step-until-terminal / accumulate / update
// sequence. Nothing here executes concurrently.
type Trainer struct {
	config rl.TrainConfig
	agent  *policy.LinearAgent
	env    env.Environment
	log    *logrus.Logger
	visual *report.Visualizer
	runs   *store.RunStore

	windows []store.RewardWindow
}

// Option customizes a Trainer.
type Option func(*Trainer)

// WithSink streams ASCII chart snapshots to sink during the run.
func WithSink(sink report.Sink) Option {
	return func(t *Trainer) {
		t.visual = report.NewVisualizer(sink)
	}
}

// WithRunStore records the finished run in s.
func WithRunStore(s *store.RunStore) Option {
	return func(t *Trainer) {
		t.runs = s
	}
}

// New builds a trainer for the configured environment variant. Seed 0
// seeds the run's random source from entropy; any other value makes the
// run reproducible.
func New(cfg rl.TrainConfig, agentCfg rl.AgentConfig, log *logrus.Logger, opts ...Option) *Trainer {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	agentCfg.StateDim = cfg.Encoding.Dims()

	t := &Trainer{
		config: cfg,
		agent:  policy.NewLinearAgent(agentCfg, rng),
		env:    env.New(cfg, rng),
		log:    log,
		visual: report.NewVisualizer(report.Discard),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Agent returns the trained agent.
func (t *Trainer) Agent() *policy.LinearAgent {
	return t.agent
}

// Run trains for the configured number of episodes and returns the run
// statistics. The trajectory is consumed and cleared after every
// EpisodesPerUpdate episodes.
func (t *Trainer) Run() (rl.RunStats, error) {
	stats := rl.RunStats{StartedAt: time.Now()}

	if t.config.Episodes < 1 {
		return stats, fmt.Errorf("episodes must be at least 1, got %d", t.config.Episodes)
	}
	if t.config.EpisodesPerUpdate < 1 {
		return stats, fmt.Errorf("episodes per update must be at least 1, got %d", t.config.EpisodesPerUpdate)
	}

	var traj rl.Trajectory
	var windowReward float64
	episodeRewards := make([]float64, 0, t.config.Episodes)

	for episode := 1; episode <= t.config.Episodes; episode++ {
		episodeReward, invalid, err := t.rollout(&traj)
		if err != nil {
			return stats, fmt.Errorf("episode %d: %w", episode, err)
		}

		stats.TotalReward += episodeReward
		windowReward += episodeReward
		episodeRewards = append(episodeRewards, episodeReward)
		if invalid {
			stats.InvalidSteps++
		}

		if episode%t.config.EpisodesPerUpdate == 0 {
			result := t.agent.Update(&traj)
			traj.Clear()
			stats.Updates++

			avg := windowReward / float64(t.config.EpisodesPerUpdate)
			t.windows = append(t.windows, store.RewardWindow{
				Index:     len(t.windows),
				AvgReward: avg,
			})
			windowReward = 0

			t.log.WithFields(logrus.Fields{
				"episode":    episode,
				"avg_reward": avg,
				"samples":    result.Samples,
				"value_loss": result.ValueLoss,
				"clip_frac":  result.ClipFraction,
			}).Debug("policy updated")
		}

		if t.config.ReportEvery > 0 && episode%t.config.ReportEvery == 0 {
			if err := t.snapshot(episodeRewards); err != nil {
				return stats, fmt.Errorf("report snapshot: %w", err)
			}
			t.log.WithField("episode", episode).Info("training progress")
		}
	}

	stats.Episodes = t.config.Episodes
	stats.AvgReward = stats.TotalReward / float64(t.config.Episodes)
	stats.FinishedAt = time.Now()

	return stats, nil
}

// rollout plays one episode to termination, appending every step to the
// trajectory. It reports the episode reward and whether the episode was
// ended by an illegal action.
func (t *Trainer) rollout(traj *rl.Trajectory) (float64, bool, error) {
	t.env.Reset()

	var episodeReward float64
	for !t.env.Done() {
		state := t.env.State()
		valid := t.env.ValidActions()

		action, err := t.agent.SampleAction(state, valid)
		if err != nil {
			return episodeReward, false, err
		}
		value := t.agent.Value(state)

		result, err := t.env.Step(action)
		if err != nil {
			return episodeReward, false, err
		}

		episodeReward += result.Reward
		traj.Append(state, action, result.Reward, value)

		if result.Fault == game.FaultInvalidAction || result.Fault == game.FaultNoLegalMoves {
			return episodeReward, true, nil
		}
	}

	return episodeReward, false, nil
}

// snapshot writes the current action distribution, policy weights, and
// reward trend to the report sink.
func (t *Trainer) snapshot(episodeRewards []float64) error {
	t.env.Reset()
	state := t.env.State()

	if err := t.visual.ActionProbs(t.agent.PolicyProbs(state), actionLabels); err != nil {
		return err
	}

	inputLabels := wideInputLabels
	if t.config.Encoding == rl.EncodingCompact {
		inputLabels = compactInputLabels
	}
	if err := t.visual.Weights(t.agent.PolicyWeights(), inputLabels, actionLabels); err != nil {
		return err
	}

	return t.visual.Progress(episodeRewards, t.config.ReportEvery)
}

// SaveRun records the finished run, returning its generated ID. It is a
// no-op without a run store.
func (t *Trainer) SaveRun(stats rl.RunStats, modelPath string) (string, error) {
	if t.runs == nil {
		return "", nil
	}

	run := &store.Run{
		ID:        uuid.NewString(),
		Config:    t.config,
		Stats:     stats,
		ModelPath: modelPath,
	}
	if err := t.runs.SaveRun(run, t.windows); err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return run.ID, nil
}
