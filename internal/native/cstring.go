package native

import (
	"strings"
	"unsafe"
)

// CString returns a NUL-terminated copy of s in Go memory. Callers pin it with
// a runtime.Pinner across any native call that receives it, directly or
// inside a request struct. An empty s yields a pointer to a lone NUL, not nil.
func CString(s string) (*byte, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, ErrEmbeddedNUL
	}
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return &buf[0], nil
}

// GoString copies a NUL-terminated native string into Go memory.
// A nil pointer yields "".
func GoString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// GoBytes copies n bytes starting at p into a new slice.
func GoBytes(p *byte, n uintptr) []byte {
	if p == nil || n == 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, unsafe.Slice(p, n))
	return out
}
