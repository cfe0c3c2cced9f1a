package encoder_test

import (
	"encoding/hex"
	"testing"

	"myass/encoder"
	"myass/parser"
)

// assemble runs the lexer, parser, and encoder over src and returns the
// resulting machine code, failing the test on any phase error.
func assemble(t *testing.T, src string) []byte {
	t.Helper()

	lx := parser.NewLexer([]byte(src), "test.asm")
	toks, lexErr := lx.Lex()
	if lexErr != nil {
		t.Fatalf("lex error: %v", lexErr)
	}

	p := parser.NewParser(toks)
	insts, parseErr := p.Parse()
	if parseErr != nil {
		t.Fatalf("parse error: %v", parseErr)
	}

	enc := encoder.NewEncoder()
	for _, inst := range insts {
		if err := enc.Encode(inst); err != nil {
			t.Fatalf("encode error: %v", err)
		}
	}
	if err := enc.Resolve(); err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	return enc.Bytes()
}

func TestEncoder_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"ret", "ret", "c3"},
		{"mov immediate", "mov rax, 1", "48c7c001000000"},
		{"add reg reg", "add rax, rbx", "4803c3"},
		{"mov extended dst", "mov r8, rax", "4c8bc0"},
		{"push pop ret", "push rax\npop rdi\nret", "505fc3"},
		{"backward jump", "L:\njmp L\nret", "e9fbffffffc3"},
		{
			"xor cmp je ret label ret",
			"xor rax, rax\ncmp rax, 0\nje L\nret\nL:\nret",
			"4833c04881f8000000000f8401000000c3c3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hex.EncodeToString(assemble(t, tt.src))
			if got != tt.want {
				t.Errorf("%s: expected %s, got %s", tt.src, tt.want, got)
			}
		})
	}
}

func TestEncoder_ImulRegisterOnly(t *testing.T) {
	got := hex.EncodeToString(assemble(t, "imul rax, rbx"))
	want := "480fafc3"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestEncoder_IdivRegister(t *testing.T) {
	got := hex.EncodeToString(assemble(t, "idiv rbx"))
	want := "48f7fb"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestEncoder_ExtendedRegisterPushPop(t *testing.T) {
	got := hex.EncodeToString(assemble(t, "push r12\npop r13"))
	want := "4154415d"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestEncoder_ForwardJump(t *testing.T) {
	// jmp to a label defined two instructions later.
	got := hex.EncodeToString(assemble(t, "jmp L\nret\nL:\nret"))
	want := "e901000000c3c3"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestEncoder_InstructionOffsetsRecorded(t *testing.T) {
	lx := parser.NewLexer([]byte("mov rax, 1\nadd rax, rbx\nret"), "test.asm")
	toks, _ := lx.Lex()
	p := parser.NewParser(toks)
	insts, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	enc := encoder.NewEncoder()
	for _, inst := range insts {
		if err := enc.Encode(inst); err != nil {
			t.Fatalf("encode error: %v", err)
		}
	}

	if insts[0].Offset != 0 || insts[0].Length != 7 {
		t.Errorf("mov: expected offset 0 length 7, got offset %d length %d", insts[0].Offset, insts[0].Length)
	}
	if insts[1].Offset != 7 || insts[1].Length != 3 {
		t.Errorf("add: expected offset 7 length 3, got offset %d length %d", insts[1].Offset, insts[1].Length)
	}
	if insts[2].Offset != 10 || insts[2].Length != 1 {
		t.Errorf("ret: expected offset 10 length 1, got offset %d length %d", insts[2].Offset, insts[2].Length)
	}
}
