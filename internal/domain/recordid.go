package domain

import "strings"

// BuildRecordID derives the stable, human-inspectable identifier for one
// submitted report from its net date, reporting call sign, and frequency.
//
// Date components (month/day/year, in the order given, no calendar
// validation) are zero-padded to at least two digits and concatenated. The
// frequency keeps its integer part as written; a fractional part is padded
// with trailing zeros to three digits. The call sign goes last:
//
//	("11/5/2020", "W1FX", "146.58") -> "11052020146580W1FX"
//
// The identifier is deterministic but only as unique as its
// (date, call, frequency) inputs: a resubmitted report collides on purpose,
// so a later correction can be matched to the report it replaces.
func BuildRecordID(netDate, call, frequency string) string {
	var b strings.Builder
	for _, part := range strings.Split(netDate, "/") {
		if len(part) < 2 {
			b.WriteString("0")
		}
		b.WriteString(part)
	}

	intPart, fracPart, hasFrac := strings.Cut(frequency, ".")
	b.WriteString(intPart)
	if hasFrac {
		for len(fracPart) < 3 {
			fracPart += "0"
		}
		b.WriteString(fracPart)
	}

	b.WriteString(call)
	return b.String()
}
