package policy

import (
	"fmt"
	"math"
	"math/rand"
)

// Network is the two-layer feed-forward shape: a ReLU hidden layer
// followed by a softmax output distribution.
type Network struct {
	InputSize  int
	HiddenSize int
	OutputSize int

	// Weights1 is hidden×input, Weights2 is output×hidden.
	Weights1 [][]float64
	Bias1    []float64
	Weights2 [][]float64
	Bias2    []float64
}

// NewNetwork creates a network with Xavier-initialized weights and zero
// biases.
func NewNetwork(inputSize, hiddenSize, outputSize int, rng *rand.Rand) *Network {
	nn := &Network{
		InputSize:  inputSize,
		HiddenSize: hiddenSize,
		OutputSize: outputSize,
		Weights1:   make([][]float64, hiddenSize),
		Bias1:      make([]float64, hiddenSize),
		Weights2:   make([][]float64, outputSize),
		Bias2:      make([]float64, outputSize),
	}

	w1Bound := math.Sqrt(6.0 / float64(inputSize+hiddenSize))
	w2Bound := math.Sqrt(6.0 / float64(hiddenSize+outputSize))

	for i := range nn.Weights1 {
		nn.Weights1[i] = make([]float64, inputSize)
		for j := range nn.Weights1[i] {
			nn.Weights1[i][j] = (rng.Float64()*2 - 1) * w1Bound
		}
	}
	for i := range nn.Weights2 {
		nn.Weights2[i] = make([]float64, hiddenSize)
		for j := range nn.Weights2[i] {
			nn.Weights2[i][j] = (rng.Float64()*2 - 1) * w2Bound
		}
	}

	return nn
}

// Forward runs one pass and returns the output probability distribution.
func (nn *Network) Forward(input []float64) ([]float64, error) {
	if len(input) != nn.InputSize {
		return nil, fmt.Errorf("input size mismatch: expected %d, got %d", nn.InputSize, len(input))
	}

	hidden := nn.hiddenActivations(input)

	logits := make([]float64, nn.OutputSize)
	for i := range logits {
		logits[i] = nn.Bias2[i] + dot(nn.Weights2[i], hidden)
	}

	return softmax(logits), nil
}

// Predict returns the arg-max output index for the input.
func (nn *Network) Predict(input []float64) (int, error) {
	output, err := nn.Forward(input)
	if err != nil {
		return 0, err
	}
	return argmax(output), nil
}

// Train runs plain gradient descent against target distributions using
// the softmax cross-entropy gradient, one sample at a time per epoch.
func (nn *Network) Train(inputs, targets [][]float64, learningRate float64, epochs int) error {
	if len(inputs) != len(targets) {
		return fmt.Errorf("inputs/targets length mismatch: %d vs %d", len(inputs), len(targets))
	}

	for epoch := 0; epoch < epochs; epoch++ {
		for s := range inputs {
			if err := nn.trainSample(inputs[s], targets[s], learningRate); err != nil {
				return err
			}
		}
	}
	return nil
}

func (nn *Network) trainSample(input, target []float64, learningRate float64) error {
	if len(target) != nn.OutputSize {
		return fmt.Errorf("target size mismatch: expected %d, got %d", nn.OutputSize, len(target))
	}

	hidden := nn.hiddenActivations(input)
	output, err := nn.Forward(input)
	if err != nil {
		return err
	}

	// Output delta for softmax + cross-entropy.
	outDelta := make([]float64, nn.OutputSize)
	for i := range outDelta {
		outDelta[i] = output[i] - target[i]
	}

	// Backpropagate into the hidden layer before touching Weights2.
	hiddenDelta := make([]float64, nn.HiddenSize)
	for j := 0; j < nn.HiddenSize; j++ {
		var sum float64
		for i := 0; i < nn.OutputSize; i++ {
			sum += nn.Weights2[i][j] * outDelta[i]
		}
		hiddenDelta[j] = sum * reluDerivative(hidden[j])
	}

	for i := 0; i < nn.OutputSize; i++ {
		for j := 0; j < nn.HiddenSize; j++ {
			nn.Weights2[i][j] -= learningRate * outDelta[i] * hidden[j]
		}
		nn.Bias2[i] -= learningRate * outDelta[i]
	}

	for j := 0; j < nn.HiddenSize; j++ {
		for k := 0; k < nn.InputSize; k++ {
			nn.Weights1[j][k] -= learningRate * hiddenDelta[j] * input[k]
		}
		nn.Bias1[j] -= learningRate * hiddenDelta[j]
	}

	return nil
}

func (nn *Network) hiddenActivations(input []float64) []float64 {
	hidden := make([]float64, nn.HiddenSize)
	for i := range hidden {
		hidden[i] = relu(nn.Bias1[i] + dot(nn.Weights1[i], input))
	}
	return hidden
}
