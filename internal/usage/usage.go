// Package usage estimates model token usage as whitespace-delimited word counts.
package usage

import "strings"

// Count returns the number of whitespace-delimited words in s.
func Count(s string) int {
	return len(strings.Fields(s))
}

// Estimate returns the word counts of the input and output text.
func Estimate(input, output string) (inputCount, outputCount int) {
	return Count(input), Count(output)
}
