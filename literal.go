package calculator

import (
	"errors"
	"strconv"
	"strings"
)

// ParseLiteral converts literal text to a value. It tries a base-10 integer
// first, then a real with any decimal comma read as a decimal point, and
// otherwise keeps the text as is. Reals too large to represent become
// infinities. Hexadecimal reals such as 0x1p4 stay text. ParseLiteral never
// fails.
func ParseLiteral(s string) Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i)
	}
	if isHex(s) {
		return Str(s)
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	switch {
	case err == nil:
		return Float(f)
	case errors.Is(err, strconv.ErrRange):
		// ParseFloat still gives ±Inf or ±0 here.
		return Float(f)
	}
	return Str(s)
}

// isHex returns whether s has a hexadecimal prefix after an optional sign.
func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
