// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
	"nickandperla.net/arith/pkg/arith"
)

const helpText = `Commands:
  :history [n]   show the last n evaluations
  :recall id     evaluate a history entry again
  :rpn expr      show expr in postfix order
  :clear         delete the history
  :help          show this text
  :quit          leave (or Ctrl+D)
`

// session executes REPL input against a calculator.
type session struct {
	calc  *arith.Calculator
	out   io.Writer
	eol   string // "\r\n" in raw mode
	limit int    // Default :history length
}

func (s *session) printf(format string, a ...any) {
	text := fmt.Sprintf(format, a...)
	if s.eol != "\n" {
		text = strings.ReplaceAll(text, "\n", s.eol)
	}
	io.WriteString(s.out, text)
}

// handle runs one line of input. It returns false when the user asked to quit.
func (s *session) handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	if !strings.HasPrefix(line, ":") {
		v, err := s.calc.Eval(line)
		if err != nil {
			s.printf("%s\n", arith.Describe(line, err))
			return true
		}
		s.printf("%s\n", s.calc.Format(v))
		return true
	}

	cmd, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "q", "quit", "exit":
		return false

	case "help", "h", "?":
		s.printf("%s", helpText)

	case "history":
		limit := s.limit
		if arg != "" {
			n, err := strconv.Atoi(arg)
			if err != nil || n < 0 {
				s.printf("Error: invalid count %q\n", arg)
				return true
			}
			limit = n
		}
		s.printHistory(limit)

	case "recall":
		id, err := parseID(arg)
		if err != nil {
			s.printf("Error: %v\n", err)
			return true
		}
		entry, v, err := s.calc.Recall(id)
		if entry == nil {
			s.printf("Error: %v\n", err)
			return true
		}
		s.printf("%s\n", entry.Expression)
		if err != nil {
			s.printf("%s\n", arith.Describe(entry.Expression, err))
			return true
		}
		s.printf("%s\n", s.calc.Format(v))

	case "rpn":
		e, err := arith.Compile(arg)
		if err != nil {
			s.printf("%s\n", arith.Describe(arg, err))
			return true
		}
		s.printf("%s\n", e.String())

	case "clear":
		if err := s.calc.ClearHistory(); err != nil {
			s.printf("Error: %v\n", err)
		}

	default:
		s.printf("Error: unknown command :%s (try :help)\n", cmd)
	}
	return true
}

func (s *session) printHistory(limit int) {
	if !s.calc.HasHistory() {
		s.printf("History is disabled\n")
		return
	}
	entries, err := s.calc.History(limit)
	if err != nil {
		s.printf("Error: %v\n", err)
		return
	}
	// Oldest first reads naturally on a terminal.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.Failed() {
			s.printf("%5d  %s  ! %s\n", e.ID, e.Expression, e.Err)
		} else {
			s.printf("%5d  %s = %s\n", e.ID, e.Expression, s.calc.Format(e.Result))
		}
	}
}

func printBanner(w io.Writer) {
	fmt.Fprintln(w, "arith (Ctrl+D to exit, :help for commands)")
	fmt.Fprintln(w)
}

func runREPL(calc *arith.Calculator, limit int, stdin *os.File, stdout io.Writer) {
	printBanner(stdout)

	s := &session{calc: calc, out: stdout, eol: "\n", limit: limit}
	if !term.IsTerminal(int(stdin.Fd())) {
		runBasicREPL(s, stdin)
		return
	}
	runRawREPL(s, stdin)
}

// runBasicREPL handles non-TTY input.
func runBasicREPL(s *session, in io.Reader) {
	reader := bufio.NewReader(in)
	for {
		s.printf(">>> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			s.printf("\n")
			return
		}
		if !s.handle(strings.TrimRight(line, "\r\n")) {
			return
		}
		if err != nil {
			s.printf("\n")
			return
		}
	}
}

// runRawREPL handles TTY input with line editing and history recall.
func runRawREPL(s *session, stdin *os.File) {
	fd := int(stdin.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set raw mode: %v\n", err)
		runBasicREPL(s, stdin)
		return
	}
	defer term.Restore(fd, oldState)

	s.eol = "\r\n"
	ed := &lineEditor{in: stdin, out: s.out}

	// Seed recall with earlier sessions' input, oldest first.
	if entries, err := s.calc.History(s.limit); err == nil {
		for i := len(entries) - 1; i >= 0; i-- {
			ed.remember(entries[i].Expression)
		}
	}

	for {
		s.printf(">>> ")
		line, eof := ed.readLine()
		if eof {
			s.printf("\n")
			return
		}
		ed.remember(line)
		if !s.handle(line) {
			return
		}
	}
}

// lineEditor reads lines from a terminal in raw mode.
type lineEditor struct {
	in      io.Reader
	out     io.Writer
	history []string
}

func (ed *lineEditor) remember(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if n := len(ed.history); n > 0 && ed.history[n-1] == line {
		return
	}
	ed.history = append(ed.history, line)
}

// readLine reads a line with cursor editing.
// Returns the line and whether EOF was encountered.
func (ed *lineEditor) readLine() (string, bool) {
	var line []rune
	cursor := 0               // Position in line (for arrow key navigation)
	recall := len(ed.history) // Index into history; len means the fresh line
	var pending []rune        // Fresh line saved while browsing history
	buf := make([]byte, 1)

	readByte := func() (byte, bool) {
		n, err := ed.in.Read(buf)
		if err != nil || n == 0 {
			return 0, false
		}
		return buf[0], true
	}

	// Helper to redraw line from cursor position
	redrawFromCursor := func() {
		fmt.Fprint(ed.out, "\x1b[K")
		fmt.Fprint(ed.out, string(line[cursor:]))
		if cursor < len(line) {
			fmt.Fprintf(ed.out, "\x1b[%dD", len(line)-cursor)
		}
	}

	replaceLine := func(with []rune) {
		if cursor > 0 {
			fmt.Fprintf(ed.out, "\x1b[%dD", cursor)
		}
		line = append([]rune(nil), with...)
		cursor = 0
		redrawFromCursor()
		if len(line) > 0 {
			fmt.Fprintf(ed.out, "\x1b[%dC", len(line))
		}
		cursor = len(line)
	}

	insert := func(r rune) {
		line = append(line[:cursor], append([]rune{r}, line[cursor:]...)...)
		cursor++
		fmt.Fprint(ed.out, string(r))
		if cursor < len(line) {
			redrawFromCursor()
		}
	}

	for {
		b, ok := readByte()
		if !ok {
			return string(line), true
		}

		switch b {
		case 0x04: // Ctrl+D
			if len(line) == 0 {
				return "", true
			}
			if cursor < len(line) {
				line = append(line[:cursor], line[cursor+1:]...)
				redrawFromCursor()
			}

		case 0x03: // Ctrl+C
			fmt.Fprint(ed.out, "^C\r\n")
			return "", false

		case 0x0d, 0x0a: // Enter (CR or LF)
			fmt.Fprint(ed.out, "\r\n")
			return string(line), false

		case 0x7f, 0x08: // Backspace (DEL or BS)
			if cursor > 0 {
				cursor--
				line = append(line[:cursor], line[cursor+1:]...)
				fmt.Fprint(ed.out, "\b")
				redrawFromCursor()
			}

		case 0x1b: // ESC: arrow key sequence ESC [ X
			if next, ok := readByte(); !ok || next != '[' {
				continue
			}
			key, ok := readByte()
			if !ok {
				continue
			}
			switch key {
			case 'A': // Up arrow
				if recall > 0 {
					if recall == len(ed.history) {
						pending = append([]rune(nil), line...)
					}
					recall--
					replaceLine([]rune(ed.history[recall]))
				}
			case 'B': // Down arrow
				if recall < len(ed.history) {
					recall++
					if recall == len(ed.history) {
						replaceLine(pending)
					} else {
						replaceLine([]rune(ed.history[recall]))
					}
				}
			case 'C': // Right arrow
				if cursor < len(line) {
					cursor++
					fmt.Fprint(ed.out, "\x1b[C")
				}
			case 'D': // Left arrow
				if cursor > 0 {
					cursor--
					fmt.Fprint(ed.out, "\x1b[D")
				}
			case '3': // Delete key: ESC [ 3 ~
				if tilde, ok := readByte(); ok && tilde == '~' && cursor < len(line) {
					line = append(line[:cursor], line[cursor+1:]...)
					redrawFromCursor()
				}
			}

		case 0x01: // Ctrl+A - beginning of line
			if cursor > 0 {
				fmt.Fprintf(ed.out, "\x1b[%dD", cursor)
				cursor = 0
			}

		case 0x05: // Ctrl+E - end of line
			if cursor < len(line) {
				fmt.Fprintf(ed.out, "\x1b[%dC", len(line)-cursor)
				cursor = len(line)
			}

		case 0x0b: // Ctrl+K - kill to end of line
			if cursor < len(line) {
				line = line[:cursor]
				fmt.Fprint(ed.out, "\x1b[K")
			}

		case 0x15: // Ctrl+U - kill to beginning of line
			if cursor > 0 {
				fmt.Fprintf(ed.out, "\x1b[%dD", cursor)
				line = line[cursor:]
				cursor = 0
				redrawFromCursor()
			}

		default:
			// Only printable ASCII can appear in an expression.
			if b >= 0x20 && b < 0x7f {
				insert(rune(b))
			}
		}
	}
}
