package quiz

import (
	"math/rand/v2"

	"github.com/grilled-pork-chop/civitest/internal/bank"
)

// Shuffle returns a copy of items in uniformly random order. The input is
// never modified, and each call draws fresh randomness.
func Shuffle[T any](items []T) []T {
	out := append([]T(nil), items...)
	// Fisher–Yates: swap each position with a uniform pick from [0, i].
	for i := len(out) - 1; i >= 1; i-- {
		j := rand.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ShuffledQuestion is a bank question with its choices in randomized order.
// OriginalToShuffled[i] is the position of original choice i after shuffling,
// so ShuffledChoices[OriginalToShuffled[i]] == Choices[i] always holds.
type ShuffledQuestion struct {
	bank.Question
	ShuffledChoices    []bank.Choice
	OriginalToShuffled []int
}

// CorrectShuffledIndex returns the index of the first correct choice within
// the shuffled order, or -1.
func (sq ShuffledQuestion) CorrectShuffledIndex() int {
	for i, c := range sq.ShuffledChoices {
		if c.Correct {
			return i
		}
	}
	return -1
}

// ShuffleChoices builds a ShuffledQuestion with randomized choice order and
// the original→shuffled index map. Pure: the input question is not mutated.
func ShuffleChoices(q bank.Question) ShuffledQuestion {
	indices := make([]int, len(q.Choices))
	for i := range indices {
		indices[i] = i
	}
	perm := Shuffle(indices)

	shuffled := make([]bank.Choice, len(q.Choices))
	mapping := make([]int, len(q.Choices))
	for pos, orig := range perm {
		shuffled[pos] = q.Choices[orig]
		mapping[orig] = pos
	}

	return ShuffledQuestion{
		Question:           q,
		ShuffledChoices:    shuffled,
		OriginalToShuffled: mapping,
	}
}
