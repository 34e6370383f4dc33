package tags

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// UID is the raw identifier returned by a tag on read.
// A nil or empty UID means no tag was seen.
type UID []byte

// String renders the UID as a list of 0x-prefixed bytes, e.g. "[0x23, 0xa8]".
func (u UID) String() string {
	parts := make([]string, len(u))
	for i, b := range u {
		parts[i] = fmt.Sprintf("0x%x", b)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Hex renders the UID as space separated two digit hex, e.g. "23 a8 18 f7 64".
func (u UID) Hex() string {
	parts := make([]string, len(u))
	for i, b := range u {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, " ")
}

// ParseUID parses a UID written as contiguous hex ("23a818f764"), or as bytes
// separated by spaces, colons, dashes or commas, each optionally 0x-prefixed.
func ParseUID(s string) (UID, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ':' || r == ',' || r == '-' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty uid")
	}

	// A single field is contiguous hex.
	if len(fields) == 1 {
		f := trimHexPrefix(fields[0])
		if f == "" {
			return nil, fmt.Errorf("parse uid %q: no digits", s)
		}
		if len(f)%2 != 0 {
			f = "0" + f
		}
		b, err := hex.DecodeString(f)
		if err != nil {
			return nil, fmt.Errorf("parse uid %q: %w", s, err)
		}
		return UID(b), nil
	}

	uid := make(UID, 0, len(fields))
	for _, f := range fields {
		f = trimHexPrefix(f)
		if len(f) == 0 || len(f) > 2 {
			return nil, fmt.Errorf("parse uid %q: bad byte %q", s, f)
		}
		if len(f) == 1 {
			f = "0" + f
		}
		b, err := hex.DecodeString(f)
		if err != nil {
			return nil, fmt.Errorf("parse uid %q: %w", s, err)
		}
		uid = append(uid, b[0])
	}
	return uid, nil
}

// MustParseUID is ParseUID for literals known to be valid.
func MustParseUID(s string) UID {
	uid, err := ParseUID(s)
	if err != nil {
		panic(err)
	}
	return uid
}

func trimHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}
