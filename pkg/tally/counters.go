package tally

import "fmt"

// Counters is the fixed-size frequency table indexed by lottery number.
type Counters [TableSize]int64

// Add increments the slot for number.
func (c *Counters) Add(number int) error {
	if number < 0 || number >= TableSize {
		return fmt.Errorf("%w: number %d out of range [0,%d]", ErrMalformedRecord, number, TableSize-1)
	}
	c[number]++
	return nil
}

// Total returns the sum of all slots.
func (c *Counters) Total() int64 {
	var total int64
	for _, v := range c {
		total += v
	}
	return total
}

// ValidateTopN checks that n is a valid result size.
func ValidateTopN(n int) error {
	if n < 1 || n > TableSize {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidTopN, n, TableSize)
	}
	return nil
}

// Top returns the n most frequent numbers, highest count first.
// Ties go to the lowest number. The receiver is a copy, so the caller's
// table is left untouched.
func (c Counters) Top(n int) ([]Entry, error) {
	if err := ValidateTopN(n); err != nil {
		return nil, err
	}

	top := make([]Entry, 0, n)
	for k := 0; k < n; k++ {
		best := 0
		for i := 1; i < TableSize; i++ {
			if c[i] > c[best] {
				best = i
			}
		}
		top = append(top, Entry{Number: best, Count: c[best]})
		c[best] = 0
	}

	return top, nil
}
