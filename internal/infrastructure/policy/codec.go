package policy

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Weight files are little-endian: a header of 4-byte integers giving the
// matrix dimensions, then the flattened row-major contents of each
// matrix and bias as 8-byte floats, in a fixed order. Network files
// carry (input, hidden, output) then W1, b1, W2, b2; linear agent files
// carry (stateDim, numActions) then the policy rows and value vector.

// SaveWeights writes the network weights to path.
func (nn *Network) SaveWeights(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create weight file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	dims := []int32{int32(nn.InputSize), int32(nn.HiddenSize), int32(nn.OutputSize)}
	if err := binary.Write(w, binary.LittleEndian, dims); err != nil {
		return fmt.Errorf("failed to write dimensions: %w", err)
	}

	for _, section := range [][][]float64{nn.Weights1, {nn.Bias1}, nn.Weights2, {nn.Bias2}} {
		for _, row := range section {
			if err := binary.Write(w, binary.LittleEndian, row); err != nil {
				return fmt.Errorf("failed to write weights: %w", err)
			}
		}
	}

	return w.Flush()
}

// LoadWeights reads weights from path into the network. The file's
// dimension header must match the network's configured dimensions; on
// any failure the network's existing weights are left untouched.
func (nn *Network) LoadWeights(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open weight file: %w", err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	dims := make([]int32, 3)
	if err := binary.Read(r, binary.LittleEndian, dims); err != nil {
		return fmt.Errorf("failed to read dimensions: %w", err)
	}
	if int(dims[0]) != nn.InputSize || int(dims[1]) != nn.HiddenSize || int(dims[2]) != nn.OutputSize {
		return fmt.Errorf("dimension mismatch: file has %dx%dx%d, network is %dx%dx%d",
			dims[0], dims[1], dims[2], nn.InputSize, nn.HiddenSize, nn.OutputSize)
	}

	weights1, err := readMatrix(r, nn.HiddenSize, nn.InputSize)
	if err != nil {
		return fmt.Errorf("failed to read input weights: %w", err)
	}
	bias1, err := readVector(r, nn.HiddenSize)
	if err != nil {
		return fmt.Errorf("failed to read hidden bias: %w", err)
	}
	weights2, err := readMatrix(r, nn.OutputSize, nn.HiddenSize)
	if err != nil {
		return fmt.Errorf("failed to read output weights: %w", err)
	}
	bias2, err := readVector(r, nn.OutputSize)
	if err != nil {
		return fmt.Errorf("failed to read output bias: %w", err)
	}

	nn.Weights1 = weights1
	nn.Bias1 = bias1
	nn.Weights2 = weights2
	nn.Bias2 = bias2
	return nil
}

// SaveWeights writes the agent's policy and value weights to path.
func (a *LinearAgent) SaveWeights(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create weight file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	dims := []int32{int32(a.config.StateDim), int32(a.config.NumActions)}
	if err := binary.Write(w, binary.LittleEndian, dims); err != nil {
		return fmt.Errorf("failed to write dimensions: %w", err)
	}

	for _, row := range a.policyWeights {
		if err := binary.Write(w, binary.LittleEndian, row); err != nil {
			return fmt.Errorf("failed to write policy weights: %w", err)
		}
	}
	if err := binary.Write(w, binary.LittleEndian, a.valueWeights); err != nil {
		return fmt.Errorf("failed to write value weights: %w", err)
	}

	return w.Flush()
}

// LoadWeights reads weights from path into the agent. The header must
// match the agent's configured dimensions; on any failure the agent's
// existing weights are left untouched.
func (a *LinearAgent) LoadWeights(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open weight file: %w", err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	dims := make([]int32, 2)
	if err := binary.Read(r, binary.LittleEndian, dims); err != nil {
		return fmt.Errorf("failed to read dimensions: %w", err)
	}
	if int(dims[0]) != a.config.StateDim || int(dims[1]) != a.config.NumActions {
		return fmt.Errorf("dimension mismatch: file has state %d actions %d, agent has state %d actions %d",
			dims[0], dims[1], a.config.StateDim, a.config.NumActions)
	}

	policy, err := readMatrix(r, a.config.NumActions, a.config.StateDim)
	if err != nil {
		return fmt.Errorf("failed to read policy weights: %w", err)
	}
	value, err := readVector(r, a.config.StateDim)
	if err != nil {
		return fmt.Errorf("failed to read value weights: %w", err)
	}

	a.policyWeights = policy
	a.valueWeights = value
	return nil
}

func readMatrix(r io.Reader, rows, cols int) ([][]float64, error) {
	m := make([][]float64, rows)
	for i := range m {
		row, err := readVector(r, cols)
		if err != nil {
			return nil, err
		}
		m[i] = row
	}
	return m, nil
}

func readVector(r io.Reader, n int) ([]float64, error) {
	v := make([]float64, n)
	if err := binary.Read(r, binary.LittleEndian, v); err != nil {
		return nil, err
	}
	return v, nil
}
