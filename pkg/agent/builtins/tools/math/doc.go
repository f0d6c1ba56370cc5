// ABOUTME: Mathematical tools: sandboxed expression evaluation and dice rolling.
// ABOUTME: Both tools report failures as "Error: ..." text results.
// Package math provides the scientific_calculator and roll_dice tools.
//
// Available tools:
//   - scientific_calculator: Evaluate an arithmetic expression over integers,
//     reals and complex numbers using a fixed set of functions and constants
//   - roll_dice: Roll dice in [N]dM[+K|-K] notation one or more times
//
// Importing the package registers both tools in tools.Tools.
package math
