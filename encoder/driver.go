package encoder

import (
	"myass/internal/arena"
	"myass/parser"
)

// Assemble runs the full single-pass pipeline over src: lexing, parsing,
// and encoding each instruction in source order, followed by resolving
// every pending branch/call displacement. name is used only to tag
// diagnostics with a source filename.
//
// On any lexical or syntax error, the accumulated *parser.ErrorList is
// returned. On an assembler-phase error (duplicate or undefined symbol),
// the pass aborts on the first such failure, matching the behavior of the
// non-local control transfer it replaces.
func Assemble(name string, src []byte) ([]byte, error) {
	code, _, err := AssembleDetail(name, src)
	return code, err
}

// AssembleDetail is Assemble plus the parsed instruction list, each entry's
// Offset/Length now populated — used by the hex-dump viewer to highlight
// instruction boundaries.
func AssembleDetail(name string, src []byte) ([]byte, []*parser.Instruction, error) {
	a := arena.New()
	return AssembleDetailWithArena(a, name, src)
}

// AssembleWithArena runs the same pipeline as Assemble, but copies src
// into a, so the caller can Reset and reuse the arena's backing chunks
// across repeated assemblies instead of letting each pass's source
// buffer fall to the garbage collector independently.
func AssembleWithArena(a *arena.Arena, name string, src []byte) ([]byte, error) {
	code, _, err := AssembleDetailWithArena(a, name, src)
	return code, err
}

// AssembleDetailWithArena combines AssembleDetail and AssembleWithArena.
func AssembleDetailWithArena(a *arena.Arena, name string, src []byte) ([]byte, []*parser.Instruction, error) {
	buf, err := a.Alloc(len(src))
	if err != nil {
		return nil, nil, parser.NewError(parser.PhaseAssembler, parser.ErrorOutOfMemory,
			parser.Position{Filename: name}, err.Error())
	}
	copy(buf, src)

	lx := parser.NewLexer(buf, name)
	tokens, err := lx.Lex()
	if err != nil {
		return nil, nil, err
	}

	p := parser.NewParser(tokens)
	insts, err := p.Parse()
	if err != nil {
		return nil, nil, err
	}

	enc := NewEncoder()
	for _, inst := range insts {
		if err := enc.Encode(inst); err != nil {
			return nil, insts, err
		}
	}
	if err := enc.Resolve(); err != nil {
		return nil, insts, err
	}

	return enc.Bytes(), insts, nil
}
