package base36

import (
	"fmt"
	"strings"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Encode converts a non-negative integer to its uppercase Base36 form.
func Encode(n int64) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("base36: cannot encode negative number %d", n)
	}
	if n == 0 {
		return "0", nil
	}

	var buf [14]byte // enough for any int64 in base 36
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = alphabet[n%36]
		n /= 36
	}
	return string(buf[i:]), nil
}

// Decode converts a Base36 string back to an integer. Input is
// case-insensitive; surrounding whitespace is ignored.
func Decode(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("base36: empty value")
	}

	var result int64
	for _, ch := range s {
		idx := strings.IndexRune(alphabet, ch)
		if idx < 0 {
			return 0, fmt.Errorf("base36: invalid character %q", ch)
		}
		if result > (1<<63-1-int64(idx))/36 {
			return 0, fmt.Errorf("base36: value %q overflows int64", s)
		}
		result = result*36 + int64(idx)
	}
	return result, nil
}
