// Package fib sums the even-valued terms of the Fibonacci sequence.
package fib

// DefaultLimit is the bound used by the command line when none is given.
const DefaultLimit = 4_000_000

// EvenSum returns the sum of the even Fibonacci terms strictly below limit.
func EvenSum(limit uint64) uint64 {
	var total uint64
	previous, current := uint64(1), uint64(2)
	for current < limit {
		if current%2 == 0 {
			total += current
		}
		previous, current = current, previous+current
	}
	return total
}
