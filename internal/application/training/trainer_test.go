package training

import (
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/ZachBeta/neural-rps/internal/domain/rl"
	"github.com/ZachBeta/neural-rps/internal/infrastructure/store"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type captureSink struct {
	lines []string
}

func (s *captureSink) WriteLine(line string) error {
	s.lines = append(s.lines, line)
	return nil
}

func testConfig() rl.TrainConfig {
	cfg := rl.DefaultTrainConfig()
	cfg.Episodes = 50
	cfg.EpisodesPerUpdate = 10
	cfg.ReportEvery = 25
	cfg.Seed = 42
	return cfg
}

func TestTrainerRun(t *testing.T) {
	trainer := New(testConfig(), rl.DefaultAgentConfig(), quietLogger())

	stats, err := trainer.Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if stats.Episodes != 50 {
		t.Errorf("episodes = %d, want 50", stats.Episodes)
	}
	if stats.Updates != 5 {
		t.Errorf("updates = %d, want 5", stats.Updates)
	}
	if stats.InvalidSteps != 0 {
		t.Errorf("sampling over valid actions should never step invalidly, got %d", stats.InvalidSteps)
	}
	if stats.AvgReward != stats.TotalReward/50 {
		t.Errorf("avg reward %v inconsistent with total %v", stats.AvgReward, stats.TotalReward)
	}
	if !stats.FinishedAt.After(stats.StartedAt) && !stats.FinishedAt.Equal(stats.StartedAt) {
		t.Error("finish time precedes start time")
	}
}

func TestTrainerRejectsZeroUpdateCadence(t *testing.T) {
	cfg := testConfig()
	cfg.EpisodesPerUpdate = 0

	_, err := New(cfg, rl.DefaultAgentConfig(), quietLogger()).Run()
	if err == nil {
		t.Fatal("zero update cadence must be rejected, not divided by")
	}
}

func TestTrainerRejectsZeroEpisodes(t *testing.T) {
	cfg := testConfig()
	cfg.Episodes = 0

	_, err := New(cfg, rl.DefaultAgentConfig(), quietLogger()).Run()
	if err == nil {
		t.Fatal("a run with no episodes must be rejected")
	}
}

func TestTrainerRunIsReproducibleWithSeed(t *testing.T) {
	statsA, err := New(testConfig(), rl.DefaultAgentConfig(), quietLogger()).Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	statsB, err := New(testConfig(), rl.DefaultAgentConfig(), quietLogger()).Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if statsA.TotalReward != statsB.TotalReward {
		t.Errorf("seeded runs diverged: %v vs %v", statsA.TotalReward, statsB.TotalReward)
	}
}

func TestTrainerSnapshotsToSink(t *testing.T) {
	sink := &captureSink{}
	trainer := New(testConfig(), rl.DefaultAgentConfig(), quietLogger(), WithSink(sink))

	if _, err := trainer.Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	joined := strings.Join(sink.lines, "\n")
	for _, want := range []string{"Action probabilities:", "Policy weights:", "Training progress:"} {
		if !strings.Contains(joined, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestTrainerDealtOpponent(t *testing.T) {
	cfg := testConfig()
	cfg.Opponent = rl.OpponentDealt
	cfg.Encoding = rl.EncodingCompact

	trainer := New(cfg, rl.DefaultAgentConfig(), quietLogger())
	stats, err := trainer.Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stats.Episodes != 50 {
		t.Errorf("episodes = %d, want 50", stats.Episodes)
	}
}

func TestTrainerSaveRun(t *testing.T) {
	runs, err := store.NewRunStore(":memory:")
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}
	defer runs.Close()

	trainer := New(testConfig(), rl.DefaultAgentConfig(), quietLogger(), WithRunStore(runs))
	stats, err := trainer.Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	runID, err := trainer.SaveRun(stats, "models/test.bin")
	if err != nil {
		t.Fatalf("save run failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected a run ID")
	}

	saved, err := runs.GetRun(runID)
	if err != nil {
		t.Fatalf("get run failed: %v", err)
	}
	if saved == nil {
		t.Fatal("run not found after save")
	}
	if saved.Stats.Episodes != 50 {
		t.Errorf("saved episodes = %d, want 50", saved.Stats.Episodes)
	}

	windows, err := runs.GetRewardWindows(runID)
	if err != nil {
		t.Fatalf("get windows failed: %v", err)
	}
	if len(windows) != 5 {
		t.Errorf("got %d reward windows, want 5", len(windows))
	}
}

func TestTrainerSaveRunWithoutStore(t *testing.T) {
	trainer := New(testConfig(), rl.DefaultAgentConfig(), quietLogger())
	stats, err := trainer.Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	runID, err := trainer.SaveRun(stats, "")
	if err != nil {
		t.Fatalf("save without store should be a no-op, got %v", err)
	}
	if runID != "" {
		t.Errorf("run ID = %q, want empty", runID)
	}
}

func TestTrainerReportDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.ReportEvery = 0

	sink := &captureSink{}
	trainer := New(cfg, rl.DefaultAgentConfig(), quietLogger(), WithSink(sink))
	if _, err := trainer.Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(sink.lines) != 0 {
		t.Errorf("report disabled but %d lines written", len(sink.lines))
	}
}
