package recognize

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// GreedyDecode collapses a [SeqLen x classes] logit matrix into a string
// under CTC rules: per position take the argmax class, merge consecutive
// repeats, drop blanks. Confidence is the product of the softmax
// probabilities of the emitted characters (1.0 when nothing is emitted,
// matching an intentionally empty field).
func GreedyDecode(logits []float32, classes int, vocab Vocab) (string, float64) {
	if classes <= 0 || len(logits) < classes {
		return "", 0
	}
	steps := len(logits) / classes

	var out []byte
	conf := 1.0
	prev := -1
	row := make([]float64, classes)
	for t := 0; t < steps; t++ {
		for c := 0; c < classes; c++ {
			row[c] = float64(logits[t*classes+c])
		}
		best := floats.MaxIdx(row)
		p := softmaxAt(row, best)
		if best != BlankIndex && best != prev {
			out = append(out, vocab.Token(best)...)
			conf *= p
		}
		prev = best
	}
	return string(out), conf
}

// softmaxAt returns softmax(row)[idx], shifted by the row max for stability.
func softmaxAt(row []float64, idx int) float64 {
	m := floats.Max(row)
	var sum float64
	for _, v := range row {
		sum += math.Exp(v - m)
	}
	if sum == 0 {
		return 0
	}
	return math.Exp(row[idx]-m) / sum
}
