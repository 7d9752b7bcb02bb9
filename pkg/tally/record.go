package tally

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRecord extracts the winning numbers from one draw record.
// Fields outside the winning-number columns are ignored. Surrounding
// whitespace in a number field is tolerated.
func ParseRecord(line string, lineNum int) ([NumbersPerDraw]int, error) {
	var numbers [NumbersPerDraw]int

	fields := strings.Split(line, string(Delimiter))
	if len(fields) < MinFields {
		return numbers, &RecordError{
			Line:   lineNum,
			Column: -1,
			Reason: fmt.Sprintf("expected at least %d fields, got %d", MinFields, len(fields)),
		}
	}

	for i := 0; i < NumbersPerDraw; i++ {
		col := FirstNumberColumn + i
		raw := fields[col]

		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return numbers, &RecordError{
				Line:   lineNum,
				Column: col,
				Value:  raw,
				Reason: "not an integer",
				Err:    err,
			}
		}
		if n < 0 || n >= TableSize {
			return numbers, &RecordError{
				Line:   lineNum,
				Column: col,
				Value:  raw,
				Reason: fmt.Sprintf("out of range [0,%d]", TableSize-1),
			}
		}
		numbers[i] = n
	}

	return numbers, nil
}
