// Package colour turns user tokens into role colours.
package colour

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var ErrInvalid = errors.New("colour: invalid colour")

// Resolve looks the token up in the named table (case-insensitive) and falls
// back to a base-16 parse. The hex form takes an optional sign, an optional
// 0x prefix and single underscores between digits. No range check is applied:
// the platform rejects values it cannot store.
func Resolve(token string) (int, error) {
	lower := strings.ToLower(token)
	if v, ok := byName[lower]; ok {
		return v, nil
	}

	v, err := parseHex(token)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalid, "%q", token)
	}
	return int(v), nil
}

func parseHex(token string) (int64, error) {
	sign, digits := "", token
	if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		sign, digits = digits[:1], digits[1:]
	}

	if len(digits) >= 2 && strings.EqualFold(digits[:2], "0x") {
		digits = digits[2:]
		if strings.HasPrefix(digits, "_") {
			digits = digits[1:]
		}
	}
	if digits == "" || strings.HasPrefix(digits, "_") {
		return 0, strconv.ErrSyntax
	}

	// base 0 is the only mode in which ParseInt accepts digit separators
	return strconv.ParseInt(sign+"0x"+digits, 0, 64)
}

// Hex formats a colour the way the listings show it: six lower-case digits, no marker.
func Hex(v int) string {
	return fmt.Sprintf("%06x", v)
}
