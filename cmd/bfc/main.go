// Command bfc is the driver for the tape-machine compiler: it reads a
// source file, lexes/validates/compiles it into x86-64 assembly text,
// and - unless told to stop at the assembly stage - shells out to an
// external NASM-compatible assembler and linker to produce an
// executable.
//
// The core compiler treats the command-line argument surface,
// source-file reading and temporary-file writing, toolchain
// discovery, and subprocess invocation as external collaborators; this
// file is that collaborator: a single flat main package, flag parsing
// up front, then a linear sequence of steps that each terminate the
// process on failure with a human-readable message.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/pborman/getopt"

	"github.com/skx/bfc/compiler"
	"github.com/skx/bfc/formatter"
	"github.com/skx/bfc/target"
)

func main() {
	var (
		help      bool
		verbose   bool
		keepAsm   bool
		onlyAsm   bool
		pretty    bool
		format    bool
		output    string
		tapeSizeS string
		targetS   string
	)

	getopt.BoolVarLong(&help, "help", '?', "display this help")
	getopt.BoolVarLong(&verbose, "verbose", 'v', "verbose output")
	getopt.BoolVarLong(&keepAsm, "keep-asm", 'a', "don't remove the generated .asm/.o files")
	getopt.BoolVarLong(&onlyAsm, "only-asm", 'A', "only produce the .asm file, don't assemble or link")
	getopt.BoolVarLong(&pretty, "pretty", 0, "decorate the generated assembly with comments")
	getopt.BoolVarLong(&format, "format", 0, "format the source file in place and exit")
	getopt.StringVarLong(&output, "output", 'o', "", "output executable name")
	getopt.StringVarLong(&tapeSizeS, "tape-size", 't', "30000", "tape size, in bytes")
	getopt.StringVarLong(&targetS, "platform", 'p', "", "target platform: unix, win64 (auto-detected if omitted)")
	getopt.SetParameters("FILE")
	getopt.Parse()

	if help {
		getopt.PrintUsage(os.Stdout)
		os.Exit(0)
	}

	args := getopt.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: bfc [options] FILE")
		os.Exit(1)
	}
	filename := args[0]

	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %s\n", filename, err)
		os.Exit(1)
	}

	// --format is an early exit: format the file in place and stop,
	// skipping every toolchain check entirely.
	if format {
		formatted := formatter.Format(string(source))
		if err := os.WriteFile(filename, []byte(formatted), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write formatted source to %s: %s\n", filename, err)
			os.Exit(1)
		}
		if verbose {
			fmt.Printf("Formatted code written to %s\n", filename)
		}
		return
	}

	tapeSize, err := strconv.ParseUint(tapeSizeS, 10, 64)
	if err != nil || tapeSize == 0 {
		fmt.Fprintf(os.Stderr, "invalid --tape-size %q: must be a positive integer\n", tapeSizeS)
		os.Exit(1)
	}

	if targetS == "" {
		targetS = autoDetectTarget()
	}
	tgt, err := target.Parse(targetS)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	if !onlyAsm {
		if !nasmAvailable() {
			fmt.Fprintln(os.Stderr, "Error: nasm is not installed or not found in PATH.")
			os.Exit(1)
		}
		if !ldAvailable() {
			fmt.Fprintln(os.Stderr, "Error: ld is not installed or not found in PATH.")
			os.Exit(1)
		}
	}

	comp := compiler.New(string(source), tgt)
	comp.SetTapeSize(tapeSize)
	comp.SetPretty(pretty)

	asm, err := comp.Compile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error compiling %s: %s\n", filename, err)
		os.Exit(1)
	}
	for _, w := range comp.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	base := output
	if base == "" {
		base = filename
	}
	asmFile := base + ".temp.asm"
	objFile := base + ".temp.o"
	exeFile := base + ".temp.out"
	if output != "" {
		exeFile = output
	}

	if err := os.WriteFile(asmFile, []byte(asm), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write assembly to %s: %s\n", asmFile, err)
		os.Exit(1)
	}
	if verbose {
		fmt.Printf("Assembly code written to %s\n", asmFile)
	}

	if onlyAsm {
		if verbose {
			fmt.Println("Only assembly output requested (-A). Skipping object and executable generation.")
		}
		return
	}

	if err := assembleAndLink(tgt, asmFile, objFile, exeFile, verbose); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	if !keepAsm {
		_ = os.Remove(asmFile)
		_ = os.Remove(objFile)
		if verbose {
			fmt.Println("Temporary files removed.")
		}
	}
}

// autoDetectTarget defaults to win64 under GOOS=windows, unix
// otherwise.
func autoDetectTarget() string {
	if runtime.GOOS == "windows" {
		return "win64"
	}
	return "unix"
}

func nasmAvailable() bool {
	return exec.Command("nasm", "--version").Run() == nil
}

func ldAvailable() bool {
	return exec.Command("ld", "--version").Run() == nil
}

// assembleAndLink shells out to nasm and ld, with the target-specific
// flags: "-f elf64" for unix, "-f win64" plus
// "-e main -subsystem console -lmsvcrt" for win64.
func assembleAndLink(tgt target.Target, asmFile, objFile, exeFile string, verbose bool) error {
	var nasmFormat string
	switch tgt {
	case target.Unix:
		nasmFormat = "elf64"
	case target.Win64:
		nasmFormat = "win64"
	}

	nasm := exec.Command("nasm", "-f", nasmFormat, asmFile, "-o", objFile)
	nasm.Stdout = os.Stdout
	nasm.Stderr = os.Stderr
	if err := nasm.Run(); err != nil {
		return fmt.Errorf("nasm failed to assemble %s: %w", asmFile, err)
	}
	if verbose {
		fmt.Printf("Object file written to %s\n", objFile)
	}

	ldArgs := []string{objFile, "-o", exeFile}
	if tgt == target.Win64 {
		ldArgs = append(ldArgs, "-e", "main", "-subsystem", "console", "-lmsvcrt")
	}

	ld := exec.Command("ld", ldArgs...)
	ld.Stdout = os.Stdout
	ld.Stderr = os.Stderr
	if err := ld.Run(); err != nil {
		return fmt.Errorf("ld failed to link %s (%s): %w", objFile, strings.Join(ldArgs, " "), err)
	}
	if verbose {
		fmt.Printf("Executable file written to %s\n", exeFile)
	}

	return nil
}
