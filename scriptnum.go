package scriptexec

// Scriptint format constants.
const (
	// MaxScriptIntSize is the largest byte length ReadScriptInt accepts as a
	// size ceiling. Encodings of the full int64 domain never exceed it.
	MaxScriptIntSize = 8

	// DefaultScriptIntSize is the size ceiling used when reading stack
	// entries as numbers. Arithmetic opcodes operate on the signed 32-bit
	// range, which encodes in at most 4 bytes.
	DefaultScriptIntSize = 4
)

// ScriptIntBytes returns the minimal scriptint encoding of n.
//
// The format is little-endian sign-magnitude: the magnitude bytes of |n|,
// with the sign carried in the high bit of the last byte. When the natural
// high bit of the last magnitude byte is already set, an extra 0x00 (or 0x80
// for negative values) byte is appended to disambiguate it from the sign.
// Zero encodes to the empty slice.
func ScriptIntBytes(n int64) []byte {
	if n == 0 {
		return []byte{}
	}

	negative := n < 0
	// The conversion wraps for math.MinInt64, but the wrapped bit pattern is
	// exactly the magnitude 2^63, so the byte loop below still emits the
	// correct little-endian magnitude.
	magnitude := uint64(n)
	if negative {
		magnitude = uint64(-n)
	}

	buf := make([]byte, 0, 9)
	for magnitude > 0 {
		buf = append(buf, byte(magnitude&0xff))
		magnitude >>= 8
	}

	if buf[len(buf)-1]&0x80 != 0 {
		// The top magnitude bit collides with the sign bit; push the sign
		// into an extra byte.
		if negative {
			buf = append(buf, 0x80)
		} else {
			buf = append(buf, 0x00)
		}
	} else if negative {
		buf[len(buf)-1] |= 0x80
	}

	return buf
}

// ReadScriptInt decodes a scriptint with a configurable size ceiling.
//
// Inputs longer than maxSize fail with ErrNumericOverflow regardless of the
// value they encode. The empty slice decodes to 0. When minimal is true,
// encodings carrying a redundant high byte fail with ErrNonMinimalPush; the
// one exception is a trailing sign byte required because the preceding
// byte's high bit is set (e.g. 255 encodes to [0xff, 0x00]).
//
// Panics if maxSize exceeds MaxScriptIntSize; that is a contract violation,
// not a runtime condition.
func ReadScriptInt(v []byte, maxSize int, minimal bool) (int64, error) {
	if maxSize > MaxScriptIntSize {
		panic("scriptexec: scriptint size ceiling exceeds 8 bytes")
	}

	if len(v) > maxSize {
		return 0, ErrNumericOverflow
	}

	if len(v) == 0 {
		return 0, nil
	}

	if minimal {
		// If the most significant byte, excluding the sign bit, is zero the
		// encoding is not minimal. This also rejects negative zero (0x80).
		if v[len(v)-1]&0x7f == 0 {
			// One exception: the second-to-last byte's high bit being set
			// would conflict with the sign bit, so the trailing byte is
			// required. +255/-255 encode to [0xff, 0x00] and [0xff, 0x80].
			if len(v) <= 1 || v[len(v)-2]&0x80 == 0 {
				return 0, ErrNonMinimalPush
			}
		}
	}

	var magnitude uint64
	for i, b := range v {
		magnitude |= uint64(b) << (8 * i)
	}

	if v[len(v)-1]&0x80 != 0 {
		magnitude &^= 1 << (8*uint(len(v)) - 1)
		return -int64(magnitude), nil
	}
	return int64(magnitude), nil
}

// ReadScriptIntMinimal decodes a stack entry as a number under the standard
// 4-byte ceiling, requiring minimal encoding.
func ReadScriptIntMinimal(v []byte) (int64, error) {
	return ReadScriptInt(v, DefaultScriptIntSize, true)
}

// ReadScriptIntNonMinimal is like ReadScriptIntMinimal but accepts
// non-minimal encodings.
func ReadScriptIntNonMinimal(v []byte) (int64, error) {
	return ReadScriptInt(v, DefaultScriptIntSize, false)
}
