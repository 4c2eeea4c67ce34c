package rl

// Trajectory is the ordered record of rollout steps accumulated between
// updates. The four slices are parallel: one entry per step. It is built
// incrementally, consumed once by the update rule, and cleared; it is
// never persisted.
type Trajectory struct {
	States  [][]float64
	Actions []int
	Rewards []float64
	Values  []float64
}

// Append records one step: the state at decision time, the chosen
// action, the immediate reward, and the value estimate produced before
// the action was taken.
func (t *Trajectory) Append(state []float64, action int, reward, value float64) {
	t.States = append(t.States, state)
	t.Actions = append(t.Actions, action)
	t.Rewards = append(t.Rewards, reward)
	t.Values = append(t.Values, value)
}

// Len returns the number of recorded steps.
func (t *Trajectory) Len() int {
	return len(t.States)
}

// Clear discards the accumulated steps, keeping capacity.
func (t *Trajectory) Clear() {
	t.States = t.States[:0]
	t.Actions = t.Actions[:0]
	t.Rewards = t.Rewards[:0]
	t.Values = t.Values[:0]
}

// Returns computes the discounted return at each step, working backward
// from the end of the trajectory: return[i] = reward[i] + gamma*return[i+1],
// with the return beyond the last step taken as 0.
func (t *Trajectory) Returns(gamma float64) []float64 {
	returns := make([]float64, len(t.Rewards))
	var cumReturn float64
	for i := len(t.Rewards) - 1; i >= 0; i-- {
		cumReturn = t.Rewards[i] + gamma*cumReturn
		returns[i] = cumReturn
	}
	return returns
}
