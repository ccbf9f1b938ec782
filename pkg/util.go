package pkg

import (
	"unsafe"
)

// BytesToString converts bytes slice to a string without extra allocation
func BytesToString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

// PadRight returns values extended with empty strings up to length n.
func PadRight(values []string, n int) []string {
	if len(values) >= n {
		return values
	}
	padded := make([]string, n)
	copy(padded, values)
	return padded
}
