package main

import (
	"fmt"
	"strconv"
	"strings"
)

// sizeList parses a comma separated list of pixel sizes, e.g. "16,32,180".
type sizeList []int

func (s *sizeList) String() string {
	parts := make([]string, len(*s))
	for i, n := range *s {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func (s *sizeList) Set(value string) error {
	*s = (*s)[:0]
	for part := range strings.SplitSeq(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("invalid size %q", part)
		}
		*s = append(*s, n)
	}
	return nil
}

// optionalInt is an integer flag that stays nil unless given, so an
// explicit 0 is passed through instead of meaning "use the default".
type optionalInt struct {
	v *int
}

func (o *optionalInt) String() string {
	if o == nil || o.v == nil {
		return ""
	}
	return strconv.Itoa(*o.v)
}

func (o *optionalInt) Set(value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("invalid integer %q", value)
	}
	o.v = &n
	return nil
}

// Value returns the parsed value, or nil when the flag was not given.
func (o *optionalInt) Value() *int {
	return o.v
}
