package encoder

import "myass/parser"

// encodeBranch emits a call/jmp/conditional-jump's opcode bytes followed by
// a 4-byte placeholder for its rel32 displacement, and records a
// pendingJump so Resolve can patch it once every label has been defined.
// opcode is one or two bytes: {0xE8} for call, {0xE9} for jmp, or a
// {0x0F, 0x8x} pair for a conditional jump.
func (e *Encoder) encodeBranch(inst *parser.Instruction, opcode []byte) {
	for _, b := range opcode {
		e.buf.writeByte(b)
	}
	e.buf.writeU32LE(0) // patched by Resolve

	e.pending = append(e.pending, pendingJump{
		postOffset: e.buf.len(),
		target:     inst.Src.(parser.LabelLocation).Tok,
	})
}

// Resolve patches every pending branch/call's displacement now that all
// labels have been defined, in source order (spec.md §4.4). The
// displacement is the wrapping signed difference between the target's
// byte offset and the offset just past the instruction's 4-byte
// displacement field (the program counter of the next instruction).
func (e *Encoder) Resolve() error {
	for _, pj := range e.pending {
		sym, ok := e.syms.lookup(pj.target.Lexeme)
		if !ok {
			return parser.NewError(parser.PhaseAssembler, parser.ErrorUndefinedSymbol, pj.target.Pos,
				"undefined label "+pj.target.Lexeme)
		}
		disp := int32(sym.offset - pj.postOffset)
		e.buf.overwriteU32LE(pj.postOffset-4, uint32(disp))
	}
	return nil
}
