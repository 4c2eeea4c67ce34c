// Package policy provides the policy/value models and their update rule.
package policy

import "math"

// softmax converts logits to a probability distribution. The max logit
// is subtracted before exponentiating; this keeps the transform finite
// for any finite input and is required behavior, not an optimization.
func softmax(logits []float64) []float64 {
	maxVal := logits[0]
	for _, v := range logits {
		if v > maxVal {
			maxVal = v
		}
	}

	probs := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		probs[i] = math.Exp(v - maxVal)
		sum += probs[i]
	}

	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// argmax returns the index of the largest value.
func argmax(values []float64) int {
	maxIdx := 0
	maxVal := values[0]
	for i := 1; i < len(values); i++ {
		if values[i] > maxVal {
			maxVal = values[i]
			maxIdx = i
		}
	}
	return maxIdx
}

// clip bounds v to the symmetric range [-bound, bound].
func clip(v, bound float64) float64 {
	return math.Min(math.Max(v, -bound), bound)
}

// relu is the rectified linear unit.
func relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// reluDerivative is 1 where the unit was active, 0 elsewhere.
func reluDerivative(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

// dot computes the inner product of two equal-length vectors.
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
