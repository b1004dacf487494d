package brainfuck

import (
	"github.com/Manu343726/brainfuck/pkg/utils"
)

// JumpTable maps every bracket of a program to the index of its partner
type JumpTable struct {
	targets []int
	pairs   int
}

const noTarget = -1

// Match returns the index of the bracket paired with the one at index i.
// Returns false if there is no bracket at i.
func (t JumpTable) Match(i int) (int, bool) {
	if i < 0 || i >= len(t.targets) || t.targets[i] == noTarget {
		return 0, false
	}
	return t.targets[i], true
}

// Len returns the number of bracket pairs
func (t JumpTable) Len() int {
	return t.pairs
}

// Pairs returns the loops of the program as a map from the index of each '['
// to the index of its ']'
func (t JumpTable) Pairs() map[int]int {
	pairs := make(map[int]int, t.pairs)
	for i, target := range t.targets {
		if target > i {
			pairs[i] = target
		}
	}
	return pairs
}

// Resolve pairs the brackets of a program. The program is scanned right to
// left: every ']' is pushed on a stack and every '[' pops its partner.
// A '[' found with an empty stack, or any ']' left on the stack after the
// scan, fails with ErrUnbalancedBrackets.
func Resolve(program []byte) (JumpTable, error) {
	targets := make([]int, len(program))
	closing := utils.NewStack[int](16)
	pairs := 0

	for i := len(program) - 1; i >= 0; i-- {
		targets[i] = noTarget

		switch program[i] {
		case ']':
			closing.Push(i)
		case '[':
			if closing.Empty() {
				return JumpTable{}, utils.MakeError(ErrUnbalancedBrackets, "unmatched '[' at offset %d", i)
			}
			j, _ := closing.Pop()
			targets[i] = j
			targets[j] = i
			pairs++
		}
	}

	if j, ok := closing.Peek(); ok {
		return JumpTable{}, utils.MakeError(ErrUnbalancedBrackets, "unmatched ']' at offset %d", j)
	}

	return JumpTable{targets: targets, pairs: pairs}, nil
}
