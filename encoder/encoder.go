// Package encoder turns a parsed instruction list into machine code,
// resolving label references to relative displacements in the same pass
// that performs the encoding (spec.md §4, §5).
package encoder

import (
	"fmt"

	"myass/parser"
)

// binaryForm describes the REG, (IMM32|REG) instruction family (add, sub,
// cmp, xor, mov): regOpcode is the single-byte opcode for the reg,r/m form
// (destination in the ModR/M reg field, source in rm); immOpcode is the
// opcode for the reg,imm32 form, whose ModR/M reg field is instead a
// three-bit opcode extension, given by immExt.
type binaryForm struct {
	regOpcode byte
	immOpcode byte
	immExt    byte
}

var binaryForms = map[parser.OpKind]binaryForm{
	parser.OpAdd: {regOpcode: 0x03, immOpcode: 0x81, immExt: 0},
	parser.OpSub: {regOpcode: 0x2B, immOpcode: 0x81, immExt: 5},
	parser.OpCmp: {regOpcode: 0x3B, immOpcode: 0x81, immExt: 7},
	parser.OpXor: {regOpcode: 0x33, immOpcode: 0x81, immExt: 6},
	parser.OpMov: {regOpcode: 0x8B, immOpcode: 0xC7, immExt: 0},
}

// Encoder holds the state threaded through a single assembly pass: the
// output buffer, the symbol table of label definitions seen so far, and
// the list of branch/call sites awaiting displacement fixup.
type Encoder struct {
	buf     *buffer
	syms    *symbolTable
	pending []pendingJump
}

// NewEncoder returns an Encoder ready to consume an instruction stream.
func NewEncoder() *Encoder {
	return &Encoder{buf: &buffer{}, syms: newSymbolTable()}
}

// Encode dispatches a single parsed instruction to its encoding routine,
// appending to the output buffer and recording its placement (Offset,
// Length) for the hex-dump collaborator. The recorded Offset/Length are
// never consulted by the encoding logic itself.
func (e *Encoder) Encode(inst *parser.Instruction) error {
	start := e.buf.len()
	var err error

	switch inst.Op {
	case parser.OpLabel:
		err = e.encodeLabel(inst)
	case parser.OpAdd, parser.OpSub, parser.OpCmp, parser.OpXor, parser.OpMov:
		err = e.encodeBinary(inst)
	case parser.OpImul:
		err = e.encodeImul(inst)
	case parser.OpIdiv:
		err = e.encodeIdiv(inst)
	case parser.OpPush:
		err = e.encodePush(inst)
	case parser.OpPop:
		err = e.encodePop(inst)
	case parser.OpCall:
		e.encodeBranch(inst, []byte{0xE8})
	case parser.OpJmp:
		e.encodeBranch(inst, []byte{0xE9})
	case parser.OpJe:
		e.encodeBranch(inst, []byte{0x0F, 0x84})
	case parser.OpJg:
		e.encodeBranch(inst, []byte{0x0F, 0x8F})
	case parser.OpJl:
		e.encodeBranch(inst, []byte{0x0F, 0x8C})
	case parser.OpJge:
		e.encodeBranch(inst, []byte{0x0F, 0x8D})
	case parser.OpJle:
		e.encodeBranch(inst, []byte{0x0F, 0x8E})
	case parser.OpRet:
		e.buf.writeByte(0xC3)
	default:
		err = fmt.Errorf("encoder: unhandled op %s", inst.Op)
	}

	inst.Offset = start
	inst.Length = e.buf.len() - start
	return err
}

// Bytes returns the encoded machine code accumulated so far.
func (e *Encoder) Bytes() []byte {
	return e.buf.bytes
}

func (e *Encoder) encodeLabel(inst *parser.Instruction) error {
	if _, ok := e.syms.define(inst.Tok.Lexeme, e.buf.len(), inst.Tok.Pos); !ok {
		return parser.NewError(parser.PhaseAssembler, parser.ErrorDuplicateSymbol, inst.Tok.Pos,
			fmt.Sprintf("label %q already defined", inst.Tok.Lexeme))
	}
	return nil
}

// encodeBinary emits the reg,reg or reg,imm32 forms shared by
// add/sub/cmp/xor/mov: REX.W is always set since every register in this
// instruction set is 64-bit.
func (e *Encoder) encodeBinary(inst *parser.Instruction) error {
	form := binaryForms[inst.Op]
	dst := inst.Dst.(parser.RegisterLocation).Reg

	switch src := inst.Src.(type) {
	case parser.RegisterLocation:
		e.buf.writeByte(rex(1, boolBit(dst.Extended()), 0, boolBit(src.Reg.Extended())))
		e.buf.writeByte(form.regOpcode)
		e.buf.writeByte(modRM(modRegDirect, dst.Low3(), src.Reg.Low3()))
	case parser.LiteralLocation:
		e.buf.writeByte(rex(1, 0, 0, boolBit(dst.Extended())))
		e.buf.writeByte(form.immOpcode)
		e.buf.writeByte(modRM(modRegDirect, form.immExt, dst.Low3()))
		e.buf.writeU32LE(uint32(src.Value))
	default:
		return fmt.Errorf("encoder: unsupported source operand for %s", inst.Op)
	}
	return nil
}

// encodeImul emits the register-only IMUL r64, r/m64 form (0F AF /r).
func (e *Encoder) encodeImul(inst *parser.Instruction) error {
	dst := inst.Dst.(parser.RegisterLocation).Reg
	src := inst.Src.(parser.RegisterLocation).Reg

	e.buf.writeByte(rex(1, boolBit(dst.Extended()), 0, boolBit(src.Extended())))
	e.buf.writeByte(0x0F)
	e.buf.writeByte(0xAF)
	e.buf.writeByte(modRM(modRegDirect, dst.Low3(), src.Low3()))
	return nil
}

// encodeIdiv emits IDIV r/m64 (F7 /7); the sole operand sits in the rm field.
func (e *Encoder) encodeIdiv(inst *parser.Instruction) error {
	reg := inst.Src.(parser.RegisterLocation).Reg

	e.buf.writeByte(rex(1, 0, 0, boolBit(reg.Extended())))
	e.buf.writeByte(0xF7)
	e.buf.writeByte(modRM(modRegDirect, 7, reg.Low3()))
	return nil
}
