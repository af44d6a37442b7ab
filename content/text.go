// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: content/text.go
// Summary: Builds surfaces from source text with syntax colouring.

package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelzoom/ui"
)

const (
	defaultStyleName = "monokai"
	defaultTabWidth  = 4
)

// TextOptions controls FromText.
type TextOptions struct {
	// Style is a chroma style name; empty selects monokai.
	Style string
	// TabWidth is the tab stop interval; 0 selects 4.
	TabWidth int
	// Language forces a lexer; empty means detect from name and content.
	Language string
	// Plain disables syntax colouring.
	Plain bool
}

// DetectLanguage guesses the language of src using its file name first and
// its content second. It returns "" when nothing matches.
func DetectLanguage(name string, src []byte) string {
	return enry.GetLanguage(filepath.Base(name), src)
}

// LoadFile reads path and builds a surface from it.
func LoadFile(path string, opts TextOptions) (*Surface, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromText(path, src, opts)
}

// FromText lays src out as cells, one row per line, colouring tokens with
// the chosen chroma style.
func FromText(name string, src []byte, opts TextOptions) (*Surface, error) {
	text := strings.ToValidUTF8(string(src), "�")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	style := styles.Get(orDefault(opts.Style, defaultStyleName))
	base := baseStyle(style)
	b := newRowBuilder(opts.TabWidth)

	lang := opts.Language
	if lang == "" && !opts.Plain {
		lang = DetectLanguage(name, src)
	}

	if opts.Plain {
		b.write(text, base)
		return NewSurface(name, b.finish(), base), nil
	}

	lexer := chroma.Coalesce(getLexer(lang, name, text))
	tokens, err := chroma.Tokenise(lexer, nil, text)
	if err != nil {
		return nil, fmt.Errorf("tokenise %s: %w", name, err)
	}
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		b.write(tok.Value, tokenStyle(style, tok.Type, base))
	}

	s := NewSurface(name, b.finish(), base)
	s.Language = lexer.Config().Name
	return s, nil
}

// getLexer returns a lexer by name, then by file name, then by content.
func getLexer(lang, name, text string) chroma.Lexer {
	if lang != "" {
		if l := lexers.Get(lang); l != nil {
			return l
		}
	}
	if l := lexers.Match(filepath.Base(name)); l != nil {
		return l
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

func baseStyle(style *chroma.Style) tcell.Style {
	entry := style.Get(chroma.Background)
	st := tcell.StyleDefault
	if entry.Colour.IsSet() {
		st = st.Foreground(toColor(entry.Colour))
	}
	if entry.Background.IsSet() {
		st = st.Background(toColor(entry.Background))
	}
	return st
}

func tokenStyle(style *chroma.Style, tt chroma.TokenType, base tcell.Style) tcell.Style {
	entry := style.Get(tt)
	st := base
	if entry.Colour.IsSet() {
		st = st.Foreground(toColor(entry.Colour))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}

func toColor(c chroma.Colour) tcell.Color {
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// rowBuilder accumulates styled runes into rows of cells. A carriage
// return moves the column back to 0 so later runes overwrite the row.
type rowBuilder struct {
	tab  int
	rows [][]ui.Cell
	cur  []ui.Cell
	col  int
}

func newRowBuilder(tab int) *rowBuilder {
	if tab <= 0 {
		tab = defaultTabWidth
	}
	return &rowBuilder{tab: tab}
}

func (b *rowBuilder) write(s string, style tcell.Style) {
	for _, r := range s {
		b.put(r, style)
	}
}

func (b *rowBuilder) put(r rune, style tcell.Style) {
	switch {
	case r == '\n':
		b.newline()
	case r == '\r':
		b.col = 0
	case r == '\t':
		n := b.tab - b.col%b.tab
		for i := 0; i < n; i++ {
			b.set(' ', style)
		}
	case r < 0x20 || r == 0x7f:
		b.set('?', style)
	default:
		switch runewidth.RuneWidth(r) {
		case 0:
		case 2:
			b.set(r, style)
			b.set(0, style)
		default:
			b.set(r, style)
		}
	}
}

func (b *rowBuilder) set(r rune, style tcell.Style) {
	c := ui.Cell{Ch: r, Style: style}
	if b.col < len(b.cur) {
		b.cur[b.col] = c
	} else {
		b.cur = append(b.cur, c)
	}
	b.col++
}

func (b *rowBuilder) newline() {
	b.rows = append(b.rows, b.cur)
	b.cur = nil
	b.col = 0
}

// finish flushes the last row; a trailing newline does not add an empty row.
func (b *rowBuilder) finish() [][]ui.Cell {
	if len(b.cur) > 0 {
		b.newline()
	}
	return b.rows
}
