package dice

// ABOUTME: Dice notation parser with range limits
// ABOUTME: Produces a canonical Notation that renders back as NdM+K

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/nilay320/MCP-Session-Code/pkg/errors"
)

// Limits on notation and roll counts.
const (
	MaxDice     = 100
	MinSides    = 2
	MaxSides    = 1000
	MaxModifier = 10000
	MaxRolls    = 100
)

// Error codes.
const (
	ErrCodeInvalidNotation = "DICE_INVALID_NOTATION"
	ErrCodeOutOfRange      = "DICE_OUT_OF_RANGE"
)

var notationPattern = regexp.MustCompile(`^(\d*)d(\d+)([+-]\d+)?$`)

// Notation is a parsed dice expression.
type Notation struct {
	Count    int
	Sides    int
	Modifier int
}

// Parse parses s into a Notation.
func Parse(s string) (Notation, error) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)

	m := notationPattern.FindStringSubmatch(compact)
	if m == nil {
		return Notation{}, errors.NewErrorWithCode(ErrCodeInvalidNotation,
			fmt.Sprintf("invalid dice notation '%s': expected [N]dM[+K|-K], e.g. 2d6+3", strings.TrimSpace(s))).
			WithContext("notation", s)
	}

	n := Notation{Count: 1}
	var err error
	if m[1] != "" {
		if n.Count, err = atoiBounded(m[1]); err != nil {
			return Notation{}, outOfRange("number of dice must be between 1 and %d", MaxDice)
		}
	}
	if n.Sides, err = atoiBounded(m[2]); err != nil {
		return Notation{}, outOfRange("number of sides must be between %d and %d", MinSides, MaxSides)
	}
	if m[3] != "" {
		if n.Modifier, err = atoiBounded(m[3]); err != nil {
			return Notation{}, outOfRange("modifier must be between -%d and %d", MaxModifier, MaxModifier)
		}
	}

	return n, n.Validate()
}

// Validate checks the notation against the limits.
func (n Notation) Validate() error {
	if n.Count < 1 || n.Count > MaxDice {
		return outOfRange("number of dice must be between 1 and %d", MaxDice)
	}
	if n.Sides < MinSides || n.Sides > MaxSides {
		return outOfRange("number of sides must be between %d and %d", MinSides, MaxSides)
	}
	if n.Modifier < -MaxModifier || n.Modifier > MaxModifier {
		return outOfRange("modifier must be between -%d and %d", MaxModifier, MaxModifier)
	}
	return nil
}

// String renders the canonical form, e.g. "2d6+3" or "1d20".
func (n Notation) String() string {
	s := fmt.Sprintf("%dd%d", n.Count, n.Sides)
	if n.Modifier != 0 {
		s += fmt.Sprintf("%+d", n.Modifier)
	}
	return s
}

// Range returns the smallest and largest possible totals.
func (n Notation) Range() (int, int) {
	return n.Count + n.Modifier, n.Count*n.Sides + n.Modifier
}

// atoiBounded parses digits that may be absurdly long.
func atoiBounded(s string) (int, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	return int(v), err
}

func outOfRange(format string, args ...interface{}) error {
	return errors.NewErrorWithCode(ErrCodeOutOfRange, fmt.Sprintf(format, args...))
}
