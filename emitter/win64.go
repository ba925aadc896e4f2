package emitter

// win64Emitter targets the Microsoft x64 calling convention, calling
// into msvcrt for putchar/getchar/exit.  rsi holds the data pointer:
// it is non-volatile under this convention, so every function we call
// preserves it for us without our having to save/restore it
// ourselves.
//
// Every call site reserves 32 bytes of shadow space and keeps rsp
// 16-byte aligned at the call instruction, per the convention's
// requirements.
type win64Emitter struct {
	base
}

func newWin64(tapeSize uint64, pretty bool) *win64Emitter {
	return &win64Emitter{base: base{tapeSize: tapeSize, pretty: pretty}}
}

func (e *win64Emitter) Header() {
	e.writef("section .bss\n")
	e.writef("    tape: resb %d\n\n", e.tapeSize)
	e.writef("section .text\n")
	e.writef("extern putchar\n")
	e.writef("extern getchar\n")
	e.writef("extern exit\n")
	e.writef("global main\n\n")
	e.writef("main:\n")
	e.comment("reserve shadow space for every call site below; rsp stays 16-aligned")
	e.writef("    sub rsp, 40\n")
	e.comment("rsi is the data pointer for the whole program")
	e.writef("    mov rsi, tape\n\n")
}

func (e *win64Emitter) IncPointer(n uint64) {
	e.comment("> x%d", n)
	e.writef("    add rsi, %d\n", n)
}

func (e *win64Emitter) DecPointer(n uint64) {
	e.comment("< x%d", n)
	e.writef("    sub rsi, %d\n", n)
}

func (e *win64Emitter) IncValue(n uint64) {
	e.comment("+ x%d", n)
	e.writef("    add byte [rsi], %d\n", n%256)
}

func (e *win64Emitter) DecValue(n uint64) {
	e.comment("- x%d", n)
	e.writef("    sub byte [rsi], %d\n", n%256)
}

// OutputValue calls the msvcrt putchar() n times with the current
// cell's value.  rcx carries the (sole) integer argument, per the
// Microsoft x64 convention.
func (e *win64Emitter) OutputValue(n uint64) {
	e.comment(". x%d (putchar)", n)
	for i := uint64(0); i < n; i++ {
		e.writef("    movzx ecx, byte [rsi]\n")
		e.writef("    sub rsp, 32\n")
		e.writef("    call putchar\n")
		e.writef("    add rsp, 32\n")
	}
}

// InputValue calls the msvcrt getchar() n times, storing the last
// byte read into the current cell.  getchar returns EOF (-1) as a
// sign-extended int in eax on end of stream; rather than branch (and
// need a synthetic unique label the Emitter has no counter to mint),
// this picks between "the byte just read" and "the cell's existing
// value" with a conditional move, so EOF leaves the cell unchanged -
// the same choice made on the unix target, where a short sys_read
// simply never touches the destination on EOF.
func (e *win64Emitter) InputValue(n uint64) {
	e.comment(", x%d (getchar)", n)
	for i := uint64(0); i < n; i++ {
		e.writef("    movzx ebx, byte [rsi]\n")
		e.writef("    sub rsp, 32\n")
		e.writef("    call getchar\n")
		e.writef("    add rsp, 32\n")
		e.writef("    cmp eax, -1\n")
		e.writef("    cmovne ebx, eax\n")
		e.writef("    mov byte [rsi], bl\n")
	}
}

func (e *win64Emitter) LoopStart(id int) {
	e.writef("loop_start_%d:\n", id)
	e.writef("    cmp byte [rsi], 0\n")
	e.writef("    je loop_end_%d\n", id)
}

func (e *win64Emitter) LoopEnd(id int) {
	e.writef("    cmp byte [rsi], 0\n")
	e.writef("    jne loop_start_%d\n", id)
	e.writef("loop_end_%d:\n", id)
}

func (e *win64Emitter) Footer() {
	e.comment("exit(0)")
	e.writef("    xor ecx, ecx\n")
	e.writef("    sub rsp, 32\n")
	e.writef("    call exit\n")
	e.writef("    add rsp, 32\n")
}
