package report

import (
	"fmt"
	"strings"
)

const barWidth = 40

// Visualizer renders ASCII charts of the agent's internals to a Sink.
type Visualizer struct {
	sink Sink
}

// NewVisualizer creates a visualizer writing to sink.
func NewVisualizer(sink Sink) *Visualizer {
	return &Visualizer{sink: sink}
}

// ActionProbs renders a horizontal bar per action probability.
func (v *Visualizer) ActionProbs(probs []float64, labels []string) error {
	if err := v.sink.WriteLine("Action probabilities:"); err != nil {
		return err
	}
	for i, p := range probs {
		label := fmt.Sprintf("action %d", i)
		if i < len(labels) {
			label = labels[i]
		}
		bar := strings.Repeat("#", int(p*barWidth+0.5))
		if err := v.sink.WriteLine(fmt.Sprintf("  %-8s %6.3f |%-*s|", label, p, barWidth, bar)); err != nil {
			return err
		}
	}
	return nil
}

// Weights renders each policy weight row with one value per input label.
func (v *Visualizer) Weights(weights [][]float64, inputLabels, outputLabels []string) error {
	if err := v.sink.WriteLine("Policy weights:"); err != nil {
		return err
	}
	for i, row := range weights {
		label := fmt.Sprintf("output %d", i)
		if i < len(outputLabels) {
			label = outputLabels[i]
		}
		if err := v.sink.WriteLine(fmt.Sprintf("  %s:", label)); err != nil {
			return err
		}
		for j, w := range row {
			in := fmt.Sprintf("input %d", j)
			if j < len(inputLabels) {
				in = inputLabels[j]
			}
			if err := v.sink.WriteLine(fmt.Sprintf("    %-8s %+.4f", in, w)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Progress renders the moving-average reward over the trailing window.
func (v *Visualizer) Progress(episodeRewards []float64, window int) error {
	if len(episodeRewards) == 0 {
		return nil
	}
	if window > len(episodeRewards) {
		window = len(episodeRewards)
	}

	var avg float64
	for _, r := range episodeRewards[len(episodeRewards)-window:] {
		avg += r
	}
	avg /= float64(window)

	if err := v.sink.WriteLine("Training progress:"); err != nil {
		return err
	}
	if err := v.sink.WriteLine(fmt.Sprintf("  episodes: %d", len(episodeRewards))); err != nil {
		return err
	}
	return v.sink.WriteLine(fmt.Sprintf("  last %d avg reward: %.4f", window, avg))
}
