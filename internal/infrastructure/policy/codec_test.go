package policy

import (
	"math"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/ZachBeta/neural-rps/internal/domain/rl"
)

func TestLinearAgentWeightRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.bin")

	saved := newTestAgent(20)
	probe := []float64{1, 0, 0, 1, 0.5, 1, 0, 0, 1}

	// Train a little so the weights are not just the init.
	var traj rl.Trajectory
	traj.Append(probe, 2, 1.0, 0)
	saved.Update(&traj)

	if err := saved.SaveWeights(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded := newTestAgent(21)
	if err := loaded.LoadWeights(path); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	wantProbs := saved.PolicyProbs(probe)
	gotProbs := loaded.PolicyProbs(probe)
	for i := range wantProbs {
		if math.Abs(gotProbs[i]-wantProbs[i]) > 1e-12 {
			t.Errorf("prob[%d] = %v, want %v", i, gotProbs[i], wantProbs[i])
		}
	}

	if got, want := loaded.Value(probe), saved.Value(probe); math.Abs(got-want) > 1e-12 {
		t.Errorf("value = %v, want %v", got, want)
	}
}

func TestLinearAgentLoadDimensionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.bin")

	cfg := rl.DefaultAgentConfig()
	cfg.StateDim = rl.EncodingCompact.Dims()
	small := NewLinearAgent(cfg, rand.New(rand.NewSource(22)))
	if err := small.SaveWeights(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	wide := newTestAgent(23)
	probe := []float64{1, 0, 0, 1, 1, 1, 0, 0, 1}
	wantProbs := wide.PolicyProbs(probe)

	if err := wide.LoadWeights(path); err == nil {
		t.Fatal("loading mismatched dimensions must fail")
	}

	// The failed load must not have corrupted the existing weights.
	gotProbs := wide.PolicyProbs(probe)
	for i := range wantProbs {
		if gotProbs[i] != wantProbs[i] {
			t.Errorf("prob[%d] changed after failed load: %v -> %v", i, wantProbs[i], gotProbs[i])
		}
	}
}

func TestLinearAgentLoadMissingFile(t *testing.T) {
	agent := newTestAgent(24)
	if err := agent.LoadWeights(filepath.Join(t.TempDir(), "absent.bin")); err == nil {
		t.Error("loading a missing file must fail")
	}
}

func TestNetworkWeightRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.bin")
	rng := rand.New(rand.NewSource(25))

	saved := NewNetwork(27, 16, 9, rng)
	if err := saved.SaveWeights(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded := NewNetwork(27, 16, 9, rng)
	if err := loaded.LoadWeights(path); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	probe := make([]float64, 27)
	probe[0] = 1
	probe[13] = -1
	probe[26] = 0.5

	want, err := saved.Forward(probe)
	if err != nil {
		t.Fatalf("forward failed: %v", err)
	}
	got, err := loaded.Forward(probe)
	if err != nil {
		t.Fatalf("forward failed: %v", err)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("output[%d] = %v, want %v (bit-exact round trip)", i, got[i], want[i])
		}
	}
}

func TestNetworkLoadDimensionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.bin")
	rng := rand.New(rand.NewSource(26))

	small := NewNetwork(27, 8, 9, rng)
	if err := small.SaveWeights(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	network := NewNetwork(27, 16, 9, rng)
	probe := make([]float64, 27)
	probe[5] = 1
	want, err := network.Forward(probe)
	if err != nil {
		t.Fatalf("forward failed: %v", err)
	}

	if err := network.LoadWeights(path); err == nil {
		t.Fatal("loading a different hidden size must fail")
	}

	got, err := network.Forward(probe)
	if err != nil {
		t.Fatalf("forward failed: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("output[%d] changed after failed load", i)
		}
	}
}
