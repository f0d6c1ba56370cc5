package dice

// ABOUTME: Rolls parsed notation with an injectable random source
// ABOUTME: Renders one line per roll plus a grand total

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Source yields uniform integers in [0, n).
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Result is a single roll of a notation.
type Result struct {
	Dice     []int
	Modifier int
	Total    int
}

// Session is a sequence of rolls of one notation.
type Session struct {
	Notation Notation
	Rolls    []Result
}

// Total sums the totals of every roll.
func (s *Session) Total() int {
	sum := 0
	for _, r := range s.Rolls {
		sum += r.Total
	}
	return sum
}

// String renders the session:
//
//	Rolling 2d6+3 x2
//	Roll 1: [4, 1] +3 = 8
//	Roll 2: [6, 6] +3 = 15
//	Total: 23
func (s *Session) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rolling %s x%d", s.Notation, len(s.Rolls))
	for i, r := range s.Rolls {
		fmt.Fprintf(&b, "\nRoll %d: %s", i+1, r)
	}
	if len(s.Rolls) > 1 {
		fmt.Fprintf(&b, "\nTotal: %d", s.Total())
	}
	return b.String()
}

// String renders "[a, b] +K = total", omitting the modifier when zero.
func (r Result) String() string {
	parts := make([]string, len(r.Dice))
	for i, d := range r.Dice {
		parts[i] = strconv.Itoa(d)
	}
	s := "[" + strings.Join(parts, ", ") + "]"
	if r.Modifier > 0 {
		s += fmt.Sprintf(" +%d", r.Modifier)
	} else if r.Modifier < 0 {
		s += fmt.Sprintf(" -%d", -r.Modifier)
	}
	return fmt.Sprintf("%s = %d", s, r.Total)
}

// Roller rolls dice. The zero value is not usable; use NewRoller.
type Roller struct {
	src Source
}

// NewRoller creates a roller; a nil src uses math/rand/v2.
func NewRoller(src Source) *Roller {
	if src == nil {
		src = globalSource{}
	}
	return &Roller{src: src}
}

// RollOnce rolls n a single time.
func (r *Roller) RollOnce(n Notation) Result {
	res := Result{Dice: make([]int, n.Count), Modifier: n.Modifier, Total: n.Modifier}
	for i := range res.Dice {
		res.Dice[i] = r.src.IntN(n.Sides) + 1
		res.Total += res.Dice[i]
	}
	return res
}

// Roll parses notation and rolls it numRolls times.
func (r *Roller) Roll(notation string, numRolls int) (*Session, error) {
	n, err := Parse(notation)
	if err != nil {
		return nil, err
	}
	if numRolls < 1 || numRolls > MaxRolls {
		return nil, outOfRange("number of rolls must be between 1 and %d", MaxRolls)
	}

	s := &Session{Notation: n, Rolls: make([]Result, numRolls)}
	for i := range s.Rolls {
		s.Rolls[i] = r.RollOnce(n)
	}
	return s, nil
}

var defaultRoller = NewRoller(nil)

// Roll rolls notation numRolls times with the default roller and renders
// the session.
func Roll(notation string, numRolls int) (string, error) {
	s, err := defaultRoller.Roll(notation, numRolls)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}
