package xstring

import "unsafe"

// ToBytes converts s without copying. The result aliases the string data and
// must not be mutated.
func ToBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// FromBytes converts b without copying. The caller must not mutate b while
// the string is alive.
func FromBytes(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
