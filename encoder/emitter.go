package encoder

// buffer is the growable output byte stream an Encoder writes into. It
// supports patching an already-written 4-byte little-endian field, which
// the pending-jump resolver uses once a label's final offset is known.
type buffer struct {
	bytes []byte
}

func (b *buffer) len() int {
	return len(b.bytes)
}

func (b *buffer) writeByte(v byte) {
	b.bytes = append(b.bytes, v)
}

func (b *buffer) writeU32LE(v uint32) {
	b.bytes = append(b.bytes,
		byte(v),
		byte(v>>8),
		byte(v>>16),
		byte(v>>24),
	)
}

// overwriteU32LE patches four already-written bytes starting at offset,
// used to back-fill a jump's relative displacement once its target is
// resolved.
func (b *buffer) overwriteU32LE(offset int, v uint32) {
	b.bytes[offset] = byte(v)
	b.bytes[offset+1] = byte(v >> 8)
	b.bytes[offset+2] = byte(v >> 16)
	b.bytes[offset+3] = byte(v >> 24)
}

// rex builds a REX prefix byte from its four single-bit fields (spec.md
// §4.3): W selects 64-bit operand size, R/X/B extend the ModR/M reg, SIB
// index, and rm/base/opcode-reg fields respectively into r8..r15.
func rex(w, r, x, b byte) byte {
	return 0x40 | w<<3 | r<<2 | x<<1 | b
}

func boolBit(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// modRM packs the three ModR/M fields. mod is always 0b11 in this
// instruction set: every register operand is addressed directly, never
// through memory.
func modRM(mod, reg, rm byte) byte {
	return mod<<6 | reg<<3 | rm
}

const modRegDirect = 0b11
