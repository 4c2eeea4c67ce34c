package policy

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ZachBeta/neural-rps/internal/domain/rl"
)

// LinearAgent is a single-layer policy/value model: policy logits are
// W_policy·state, the value estimate is W_value·state. The update rule
// is a REINFORCE-with-baseline variant whose per-sample gradient signal
// is clipped directly, not a canonical PPO ratio clip. Saved models
// depend on this exact rule, so it is preserved as is.
type LinearAgent struct {
	config rl.AgentConfig
	rng    *rand.Rand

	// policyWeights is NumActions rows of StateDim columns.
	policyWeights [][]float64
	// valueWeights projects the state to a scalar.
	valueWeights []float64
}

// NewLinearAgent creates an agent with small random initial weights.
func NewLinearAgent(config rl.AgentConfig, rng *rand.Rand) *LinearAgent {
	a := &LinearAgent{
		config:        config,
		rng:           rng,
		policyWeights: make([][]float64, config.NumActions),
		valueWeights:  make([]float64, config.StateDim),
	}

	for i := range a.policyWeights {
		a.policyWeights[i] = make([]float64, config.StateDim)
		for j := range a.policyWeights[i] {
			a.policyWeights[i][j] = (rng.Float64()*2 - 1) * 0.1
		}
	}
	for j := range a.valueWeights {
		a.valueWeights[j] = (rng.Float64()*2 - 1) * 0.1
	}

	return a
}

// PolicyProbs returns the action distribution for the state: softmax of
// the policy logits. Components are non-negative and sum to 1.
func (a *LinearAgent) PolicyProbs(state []float64) []float64 {
	logits := make([]float64, a.config.NumActions)
	for i, row := range a.policyWeights {
		logits[i] = dot(row, state)
	}
	return softmax(logits)
}

// Predict returns the arg-max action under the current policy.
func (a *LinearAgent) Predict(state []float64) int {
	return argmax(a.PolicyProbs(state))
}

// Value returns the scalar value estimate: a linear projection with no
// activation.
func (a *LinearAgent) Value(state []float64) float64 {
	return dot(a.valueWeights, state)
}

// SampleAction draws an action restricted to validActions. Probability
// mass on invalid actions is zeroed and the remainder renormalized; if
// no mass survives, the draw is uniform over exactly the valid actions.
// A single uniform draw selects the index.
func (a *LinearAgent) SampleAction(state []float64, validActions []int) (int, error) {
	if len(validActions) == 0 {
		return 0, fmt.Errorf("no valid actions to sample from")
	}

	probs := a.PolicyProbs(state)

	masked := make([]float64, len(probs))
	var total float64
	for _, action := range validActions {
		masked[action] = probs[action]
		total += probs[action]
	}

	if total > 0 {
		for i := range masked {
			masked[i] /= total
		}
	} else {
		uniform := 1.0 / float64(len(validActions))
		for _, action := range validActions {
			masked[action] = uniform
		}
	}

	r := a.rng.Float64()
	var cumSum float64
	for i, p := range masked {
		cumSum += p
		if r < cumSum {
			return i, nil
		}
	}
	return validActions[len(validActions)-1], nil
}

// Update consumes one trajectory: discounted returns are computed
// backward, advantages are plain baseline subtraction, and each sample
// nudges the weights once, in trajectory order, before the trajectory is
// discarded by the caller.
func (a *LinearAgent) Update(traj *rl.Trajectory) rl.UpdateResult {
	n := traj.Len()
	if n == 0 {
		return rl.UpdateResult{}
	}

	returns := traj.Returns(a.config.Gamma)

	var sumReturn, sumAdvantage, valueLoss float64
	var clipped int

	for i := 0; i < n; i++ {
		state := traj.States[i]
		action := traj.Actions[i]
		advantage := returns[i] - traj.Values[i]

		sumReturn += returns[i]
		sumAdvantage += advantage

		// Gradient signal for the taken action, floored against tiny
		// probabilities and clipped to a fixed symmetric range.
		probs := a.PolicyProbs(state)
		taken := math.Max(probs[action], a.config.ProbEpsilon)
		grad := advantage / taken
		if math.Abs(grad) > a.config.ClipRange {
			clipped++
		}
		grad = clip(grad, a.config.ClipRange)

		row := a.policyWeights[action]
		for j := range row {
			row[j] += a.config.PolicyLR * grad * state[j]
		}

		// Value step toward the observed return.
		valueError := returns[i] - traj.Values[i]
		valueLoss += valueError * valueError
		for j := range a.valueWeights {
			a.valueWeights[j] += a.config.ValueLR * valueError * state[j]
		}
	}

	return rl.UpdateResult{
		Samples:       n,
		MeanReturn:    sumReturn / float64(n),
		MeanAdvantage: sumAdvantage / float64(n),
		ClipFraction:  float64(clipped) / float64(n),
		ValueLoss:     valueLoss / float64(n),
	}
}

// PolicyWeights returns the policy weight rows for inspection and
// visualization. Callers must not mutate the result.
func (a *LinearAgent) PolicyWeights() [][]float64 {
	return a.policyWeights
}
