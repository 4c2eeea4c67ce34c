// Package rl provides domain types for the policy-gradient learner.
package rl

import "time"

// Encoding selects the state-vector layout produced by an environment.
type Encoding string

const (
	// EncodingWide is the 9-dimensional layout: one-hot of the acting
	// side's last play, hand counts normalized by the initial count, and
	// one-hot of the opponent's last play.
	EncodingWide Encoding = "wide"
	// EncodingCompact is the 6-dimensional layout: one-hot of the acting
	// side's last play and a has-at-least-one indicator per kind.
	EncodingCompact Encoding = "compact"
)

// Dims returns the state-vector length for the encoding.
func (e Encoding) Dims() int {
	if e == EncodingCompact {
		return 6
	}
	return 9
}

// Opponent selects where the opposing play comes from.
type Opponent string

const (
	// OpponentRandom draws the opposing play uniformly from all three
	// kinds regardless of any hand.
	OpponentRandom Opponent = "random"
	// OpponentDealt plays from an actual dealt opposing hand and the
	// acting side alternates each step.
	OpponentDealt Opponent = "dealt"
)

// AgentConfig configures the linear policy/value agent.
type AgentConfig struct {
	// StateDim is the state-vector length.
	StateDim int `json:"stateDim"`

	// NumActions is the number of discrete actions.
	NumActions int `json:"numActions"`

	// Gamma is the discount factor.
	Gamma float64 `json:"gamma"`

	// PolicyLR is the policy learning rate.
	PolicyLR float64 `json:"policyLR"`

	// ValueLR is the value learning rate.
	ValueLR float64 `json:"valueLR"`

	// ClipRange bounds the per-sample gradient signal symmetrically.
	ClipRange float64 `json:"clipRange"`

	// ProbEpsilon floors the taken-action probability in the gradient
	// denominator.
	ProbEpsilon float64 `json:"probEpsilon"`
}

// DefaultAgentConfig returns the default agent configuration.
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		StateDim:    EncodingWide.Dims(),
		NumActions:  3,
		Gamma:       0.99,
		PolicyLR:    0.01,
		ValueLR:     0.01,
		ClipRange:   0.2,
		ProbEpsilon: 1e-8,
	}
}

// TrainConfig configures a training run.
type TrainConfig struct {
	// Episodes is the total number of episodes to roll out.
	Episodes int `json:"episodes"`

	// EpisodesPerUpdate is the update cadence: the trajectory is
	// consumed and cleared after this many episodes.
	EpisodesPerUpdate int `json:"episodesPerUpdate"`

	// Encoding is the state-vector layout.
	Encoding Encoding `json:"encoding"`

	// Opponent is the opposing-play source.
	Opponent Opponent `json:"opponent"`

	// Seed seeds the run's random source; 0 seeds from entropy.
	Seed int64 `json:"seed"`

	// ReportEvery is the episode interval between chart snapshots.
	ReportEvery int `json:"reportEvery"`
}

// DefaultTrainConfig returns the default training configuration.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Episodes:          1000,
		EpisodesPerUpdate: 10,
		Encoding:          EncodingWide,
		Opponent:          OpponentRandom,
		ReportEvery:       100,
	}
}

// UpdateResult summarizes one policy/value update.
type UpdateResult struct {
	// Samples is the number of trajectory steps consumed.
	Samples int `json:"samples"`

	// MeanReturn is the mean discounted return across the samples.
	MeanReturn float64 `json:"meanReturn"`

	// MeanAdvantage is the mean advantage across the samples.
	MeanAdvantage float64 `json:"meanAdvantage"`

	// ClipFraction is the fraction of gradient signals that hit the clip
	// bound.
	ClipFraction float64 `json:"clipFraction"`

	// ValueLoss is the mean squared return-minus-value error.
	ValueLoss float64 `json:"valueLoss"`
}

// RunStats summarizes a completed training run.
type RunStats struct {
	// Episodes is the number of episodes rolled out.
	Episodes int `json:"episodes"`

	// Updates is the number of policy updates performed.
	Updates int64 `json:"updates"`

	// TotalReward is the reward summed over every episode.
	TotalReward float64 `json:"totalReward"`

	// AvgReward is the mean per-episode reward.
	AvgReward float64 `json:"avgReward"`

	// InvalidSteps counts episodes ended by an illegal action.
	InvalidSteps int `json:"invalidSteps"`

	// StartedAt and FinishedAt bracket the run.
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}
