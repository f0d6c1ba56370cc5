// Package dice parses tabletop dice notation and rolls it.
//
// Notation is [N]dM[+K|-K]: N dice with M sides plus an optional modifier,
// for example "d20", "2d6+3" or "4D8 - 2". Whitespace is ignored and the d
// is case-insensitive.
//
//	out, err := dice.Roll("2d6+3", 2)
//	// Rolling 2d6+3 x2
//	// Roll 1: [4, 1] +3 = 8
//	// Roll 2: [6, 6] +3 = 15
//	// Total: 23
//
// Randomness comes from math/rand/v2 and is not suitable for anything
// security related. Tests inject a deterministic Source through NewRoller.
package dice
