package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureSink collects lines in memory for assertions.
type captureSink struct {
	lines []string
}

func (s *captureSink) WriteLine(line string) error {
	s.lines = append(s.lines, line)
	return nil
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	if err := sink.WriteLine("alpha"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := sink.WriteLine("beta"); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if buf.String() != "alpha\nbeta\n" {
		t.Errorf("buffer = %q", buf.String())
	}
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "out.txt")

	sink, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := sink.WriteLine("first"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := sink.WriteLine("second"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "first\nsecond\n" {
		t.Errorf("file contents = %q", data)
	}
}

func TestVisualizerActionProbs(t *testing.T) {
	sink := &captureSink{}
	v := NewVisualizer(sink)

	err := v.ActionProbs([]float64{0.5, 0.25, 0.25}, []string{"Rock", "Paper", "Scissors"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(sink.lines))
	}
	if !strings.Contains(sink.lines[1], "Rock") || !strings.Contains(sink.lines[1], "0.500") {
		t.Errorf("rock line = %q", sink.lines[1])
	}

	// Bar lengths track the probabilities.
	rockBars := strings.Count(sink.lines[1], "#")
	paperBars := strings.Count(sink.lines[2], "#")
	if rockBars <= paperBars {
		t.Errorf("rock bar (%d) should be longer than paper bar (%d)", rockBars, paperBars)
	}
}

func TestVisualizerProgress(t *testing.T) {
	sink := &captureSink{}
	v := NewVisualizer(sink)

	rewards := []float64{-1, -1, 1, 1}
	if err := v.Progress(rewards, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	joined := strings.Join(sink.lines, "\n")
	if !strings.Contains(joined, "last 2 avg reward: 1.0000") {
		t.Errorf("progress output missing window average:\n%s", joined)
	}
	if !strings.Contains(joined, "episodes: 4") {
		t.Errorf("progress output missing episode count:\n%s", joined)
	}
}

func TestVisualizerProgressEmpty(t *testing.T) {
	sink := &captureSink{}
	if err := NewVisualizer(sink).Progress(nil, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.lines) != 0 {
		t.Errorf("empty rewards should produce no output, got %v", sink.lines)
	}
}

func TestVisualizerWeights(t *testing.T) {
	sink := &captureSink{}
	v := NewVisualizer(sink)

	weights := [][]float64{{0.5, -0.25}, {0.1, 0.2}}
	err := v.Weights(weights, []string{"a", "b"}, []string{"x", "y"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	joined := strings.Join(sink.lines, "\n")
	for _, want := range []string{"x:", "y:", "+0.5000", "-0.2500"} {
		if !strings.Contains(joined, want) {
			t.Errorf("weights output missing %q:\n%s", want, joined)
		}
	}
}

func TestDiscardSink(t *testing.T) {
	if err := Discard.WriteLine("anything"); err != nil {
		t.Errorf("discard sink errored: %v", err)
	}
}
