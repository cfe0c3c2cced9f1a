package encoder

import "myass/parser"

// encodePush emits PUSH r64: opcode 0x50 + low3(reg), with a REX.B prefix
// only when the register needs one (r8..r15).
func (e *Encoder) encodePush(inst *parser.Instruction) error {
	reg := inst.Src.(parser.RegisterLocation).Reg
	if reg.Extended() {
		e.buf.writeByte(rex(0, 0, 0, 1))
	}
	e.buf.writeByte(0x50 + reg.Low3())
	return nil
}

// encodePop emits POP r64: opcode 0x58 + low3(reg), same REX.B rule as push.
func (e *Encoder) encodePop(inst *parser.Instruction) error {
	reg := inst.Src.(parser.RegisterLocation).Reg
	if reg.Extended() {
		e.buf.writeByte(rex(0, 0, 0, 1))
	}
	e.buf.writeByte(0x58 + reg.Low3())
	return nil
}
