package encoder

import "myass/parser"

// symbol is a label definition record: the byte offset in the output
// buffer at which the label was encountered. A label may be defined at
// most once (spec.md §3 invariants).
type symbol struct {
	offset int
	pos    parser.Position
}

// symbolTable maps label name (bytes) to its definition record. Scoped to a
// single assembly pass: constructed empty at the start of Assemble and
// discarded at the end.
type symbolTable struct {
	defs map[string]symbol
}

func newSymbolTable() *symbolTable {
	return &symbolTable{defs: make(map[string]symbol)}
}

// define records a label's offset. Returns false if the name was already
// defined, in which case the caller reports DuplicateSymbol.
func (t *symbolTable) define(name string, offset int, pos parser.Position) (symbol, bool) {
	if _, exists := t.defs[name]; exists {
		return symbol{}, false
	}
	s := symbol{offset: offset, pos: pos}
	t.defs[name] = s
	return s, true
}

func (t *symbolTable) lookup(name string) (symbol, bool) {
	s, ok := t.defs[name]
	return s, ok
}

// pendingJump is a deferred fixup: a branch/call whose 4-byte relative
// displacement placeholder has been emitted but not yet patched. postOffset
// is the byte offset immediately after the placeholder — the program
// counter value relative jumps use as their origin.
type pendingJump struct {
	postOffset int
	target     parser.Token
}
