// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: content/command.go
// Summary: Captures a command's terminal output into a surface.

package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/creack/pty"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

// CommandOptions controls FromCommand.
type CommandOptions struct {
	// Cols and Rows size the pseudo terminal the command sees.
	Cols, Rows int
	TabWidth   int
}

// FromCommand runs argv under a pseudo terminal, waits for it to exit and
// returns its output as a surface. SGR colours are kept; other escape
// sequences are dropped. A non-zero exit status is logged, not returned.
func FromCommand(ctx context.Context, argv []string, opts CommandOptions) (*Surface, error) {
	if len(argv) == 0 {
		return nil, errors.New("no command given")
	}
	cols, rows := opts.Cols, opts.Rows
	if cols <= 0 {
		cols = 120
	}
	if rows <= 0 {
		rows = 50
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("COLUMNS=%d", cols),
		fmt.Sprintf("LINES=%d", rows),
		"TERM=xterm-256color",
	)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, fmt.Errorf("start pty: %w", err)
	}
	defer ptmx.Close()

	// Raw mode keeps the line discipline from rewriting output.
	if _, err := term.MakeRaw(int(ptmx.Fd())); err != nil {
		log.Printf("Content: pty raw mode unavailable: %v", err)
	}

	var out bytes.Buffer
	if _, err := io.Copy(&out, ptmx); err != nil && !errors.Is(err, syscall.EIO) {
		return nil, fmt.Errorf("read pty: %w", err)
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, err
		}
		log.Printf("Content: %s exited with status %d", argv[0], exitErr.ExitCode())
	}
	return FromANSI(strings.Join(argv, " "), out.Bytes(), opts.TabWidth), nil
}

// FromANSI decodes terminal output: text, newlines, carriage returns and
// SGR colour sequences.
func FromANSI(name string, data []byte, tabWidth int) *Surface {
	b := newRowBuilder(tabWidth)
	style := tcell.StyleDefault
	text := strings.ToValidUTF8(string(data), "�")

	for i := 0; i < len(text); {
		if text[i] != 0x1b {
			j := strings.IndexByte(text[i:], 0x1b)
			if j < 0 {
				j = len(text) - i
			}
			b.write(text[i:i+j], style)
			i += j
			continue
		}
		n, params, final := scanEscape(text[i:])
		if final == 'm' {
			style = applySGR(style, params)
		}
		i += n
	}
	return NewSurface(name, b.finish(), tcell.StyleDefault)
}

// scanEscape measures the escape sequence at the start of s. For CSI
// sequences it returns the parameter string and final byte.
func scanEscape(s string) (n int, params string, final byte) {
	if len(s) < 2 {
		return len(s), "", 0
	}
	switch s[1] {
	case '[':
		for j := 2; j < len(s); j++ {
			if c := s[j]; c >= 0x40 && c <= 0x7e {
				return j + 1, s[2:j], c
			}
		}
		return len(s), "", 0
	case ']':
		// OSC ends with BEL or ST.
		for j := 2; j < len(s); j++ {
			if s[j] == 0x07 {
				return j + 1, "", 0
			}
			if s[j] == 0x1b && j+1 < len(s) && s[j+1] == '\\' {
				return j + 2, "", 0
			}
		}
		return len(s), "", 0
	case '(', ')':
		return min(3, len(s)), "", 0
	}
	return 2, "", 0
}

func applySGR(st tcell.Style, params string) tcell.Style {
	if params == "" {
		return tcell.StyleDefault
	}
	codes := parseParams(params)
	for i := 0; i < len(codes); i++ {
		c := codes[i]
		switch {
		case c == 0:
			st = tcell.StyleDefault
		case c == 1:
			st = st.Bold(true)
		case c == 3:
			st = st.Italic(true)
		case c == 4:
			st = st.Underline(true)
		case c == 7:
			st = st.Reverse(true)
		case c == 22:
			st = st.Bold(false)
		case c == 23:
			st = st.Italic(false)
		case c == 24:
			st = st.Underline(false)
		case c == 27:
			st = st.Reverse(false)
		case c >= 30 && c <= 37:
			st = st.Foreground(tcell.PaletteColor(c - 30))
		case c == 39:
			st = st.Foreground(tcell.ColorDefault)
		case c >= 40 && c <= 47:
			st = st.Background(tcell.PaletteColor(c - 40))
		case c == 49:
			st = st.Background(tcell.ColorDefault)
		case c >= 90 && c <= 97:
			st = st.Foreground(tcell.PaletteColor(c - 90 + 8))
		case c >= 100 && c <= 107:
			st = st.Background(tcell.PaletteColor(c - 100 + 8))
		case c == 38 || c == 48:
			color, used := extendedColor(codes[i+1:])
			i += used
			if used == 0 {
				continue
			}
			if c == 38 {
				st = st.Foreground(color)
			} else {
				st = st.Background(color)
			}
		}
	}
	return st
}

// extendedColor decodes "5;n" or "2;r;g;b" and reports how many codes it used.
func extendedColor(rest []int) (tcell.Color, int) {
	if len(rest) >= 2 && rest[0] == 5 {
		return tcell.PaletteColor(rest[1] & 0xff), 2
	}
	if len(rest) >= 4 && rest[0] == 2 {
		return tcell.NewRGBColor(int32(rest[1]), int32(rest[2]), int32(rest[3])), 4
	}
	return tcell.ColorDefault, 0
}

func parseParams(params string) []int {
	parts := strings.FieldsFunc(params, func(r rune) bool { return r == ';' || r == ':' })
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n := 0
		for _, r := range p {
			if r < '0' || r > '9' {
				break
			}
			n = n*10 + int(r-'0')
		}
		out = append(out, n)
	}
	return out
}
