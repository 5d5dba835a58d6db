// seehuhn.de/go/pdfops - encode and decode PDF content streams
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package registry keeps track of the fonts embedded in a document.
//
// Before pages are encoded, [Registry.Prepare] scans all pages for the
// glyphs used with each font.  Every font is then subsetted exactly once
// and its ToUnicode CMap is built.  The resulting bindings are immutable
// and are shared by all pages, so that every page uses the same glyph
// mapping for a given font.
package registry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"sync"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdfops/font/standard"
	"seehuhn.de/go/pdfops/font/subset"
	"seehuhn.de/go/pdfops/font/tounicode"
	"seehuhn.de/go/pdfops/object"
	"seehuhn.de/go/pdfops/ops"
	"seehuhn.de/go/pdfops/resource"
)

// ErrUnknownFont is returned for font handles which were never added.
var ErrUnknownFont = errors.New("unknown font")

// Options controls the behaviour of a [Registry].
// The zero value is valid.
type Options struct {
	// Fallback, if set, is used in place of fonts which cannot be
	// subsetted.  If Fallback is empty, subsetting errors are returned
	// from [Registry.Prepare].
	Fallback standard.Font

	// Logger, if not nil, receives a message for every subsetted font and
	// for every fallback.
	Logger *slog.Logger
}

// Embedded is the data the document container needs to embed a subsetted
// font.
type Embedded struct {
	Subset *subset.FontSubset

	// ToUnicode is the text of the ToUnicode CMap stream.
	ToUnicode string

	// CIDToGIDMap is the contents of the CIDToGIDMap stream.
	CIDToGIDMap []byte
}

// Registry holds the fonts of a document.
// It is safe for concurrent use.
type Registry struct {
	opt Options

	mu       sync.Mutex
	sources  map[ops.FontID]*source
	fonts    map[ops.FontID]*resource.Font
	embedded map[ops.FontID]*Embedded
	fallback map[ops.FontID]standard.Font
}

type source struct {
	data    []byte
	name    string
	charMap cmap.Subtable
}

// New creates an empty registry.
func New(opt *Options) *Registry {
	if opt == nil {
		opt = &Options{}
	}
	return &Registry{
		opt:      *opt,
		sources:  make(map[ops.FontID]*source),
		fonts:    make(map[ops.FontID]*resource.Font),
		embedded: make(map[ops.FontID]*Embedded),
		fallback: make(map[ops.FontID]standard.Font),
	}
}

// Add registers the font file for a font handle.
// The font must be a TrueType or OpenType font with a usable "cmap" table.
func (r *Registry) Add(id ops.FontID, data []byte) error {
	f, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("font %q: %w", id, err)
	}
	var charMap cmap.Subtable
	if f.CMapTable != nil {
		charMap, err = f.CMapTable.GetBest()
		if err != nil {
			charMap = nil
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sources[id]; exists {
		return fmt.Errorf("font %q added twice", id)
	}
	r.sources[id] = &source{
		data:    data,
		name:    f.PostScriptName(),
		charMap: charMap,
	}
	return nil
}

// Prepare subsets all fonts used on the given pages.
//
// Fonts which have already been prepared are left unchanged; glyphs which
// are first used on later pages are not added to them.
func (r *Registry) Prepare(ctx context.Context, pages []*ops.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	usage := make(map[ops.FontID]map[glyph.ID]string)
	for _, page := range pages {
		err := ctx.Err()
		if err != nil {
			return err
		}
		r.collect(page, usage)
	}

	for _, id := range slices.Sorted(maps.Keys(usage)) {
		if _, done := r.fonts[id]; done {
			continue
		}
		src, ok := r.sources[id]
		if !ok {
			return fmt.Errorf("font %q: %w", id, ErrUnknownFont)
		}
		err := r.embed(id, src, usage[id])
		if err == nil {
			continue
		}
		if r.opt.Fallback == "" {
			return err
		}
		r.fonts[id] = resource.NewSimpleFont(id, r.opt.Fallback)
		r.fallback[id] = r.opt.Fallback
		if r.opt.Logger != nil {
			r.opt.Logger.Info("using builtin font",
				slog.String("font", string(id)),
				slog.String("fallback", string(r.opt.Fallback)),
				slog.Any("error", err))
		}
	}
	return nil
}

// collect records the glyphs shown with each font, together with the text
// they represent.
func (r *Registry) collect(page *ops.Page, usage map[ops.FontID]map[glyph.ID]string) {
	var current *source
	var glyphs map[glyph.ID]string
	for _, op := range page.Ops {
		switch op := op.(type) {
		case ops.SetFont:
			current = r.sources[op.Font]
			glyphs = usage[op.Font]
			if glyphs == nil {
				glyphs = make(map[glyph.ID]string)
				usage[op.Font] = glyphs
			}
		case ops.SetBuiltinFont:
			current = nil
			glyphs = nil
		case ops.ShowText:
			if glyphs == nil {
				continue
			}
			for _, item := range op.Items {
				switch item := item.(type) {
				case ops.Text:
					if current == nil || current.charMap == nil {
						continue
					}
					for _, c := range string(item) {
						gid := current.charMap.Lookup(c)
						if _, seen := glyphs[gid]; gid != 0 && !seen {
							glyphs[gid] = string(c)
						}
					}
				case ops.Glyph:
					if _, seen := glyphs[item.ID]; !seen {
						glyphs[item.ID] = string(item.Text)
					}
				}
			}
		}
	}
}

func (r *Registry) embed(id ops.FontID, src *source, glyphs map[glyph.ID]string) error {
	sub, err := subset.Subset(src.data, slices.Sorted(maps.Keys(glyphs)))
	if err != nil {
		return fmt.Errorf("font %q: %w", id, err)
	}

	text := make(map[glyph.ID]string, len(glyphs))
	for gid, s := range glyphs {
		if s == "" || s == "\x00" {
			continue
		}
		text[sub.GIDMap[gid]] = s
	}
	toUnicode := tounicode.Build(text, sub.FontName())
	parsed, err := tounicode.Parse([]byte(toUnicode))
	if err != nil {
		return fmt.Errorf("font %q: ToUnicode: %w", id, err)
	}

	r.fonts[id] = resource.NewCompositeFont(id, src.charMap, sub, parsed)
	r.embedded[id] = &Embedded{
		Subset:      sub,
		ToUnicode:   toUnicode,
		CIDToGIDMap: sub.CIDToGIDMap(),
	}
	if r.opt.Logger != nil {
		r.opt.Logger.Debug("subsetted font",
			slog.String("font", string(id)),
			slog.String("name", sub.FontName()),
			slog.Int("glyphs", len(sub.GIDMap)))
	}
	return nil
}

// Font returns the binding for a prepared font.
func (r *Registry) Font(id ops.FontID) (*resource.Font, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.fonts[id]
	return f, ok
}

// Embedded returns the embedding data for a prepared font.
// The second return value is false for unknown fonts and for fonts which
// were replaced by the fallback font.
func (r *Registry) Embedded(id ops.FontID) (*Embedded, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.embedded[id]
	return e, ok
}

// Fallback reports whether a font was replaced by a builtin font.
func (r *Registry) Fallback(id ops.FontID) (standard.Font, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.fallback[id]
	return f, ok
}

// Resource returns a resource dictionary which binds all prepared fonts.
// Fonts are named F1, F2, ... in the order of their handles.  Fonts which
// were replaced by the fallback font are also bound as builtin fonts, so
// that the container can write the corresponding font dictionary.
func (r *Registry) Resource() *resource.Resource {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := &resource.Resource{
		Font:        make(map[object.Name]*resource.Font, len(r.fonts)),
		BuiltinFont: make(map[object.Name]standard.Font),
	}
	for i, id := range slices.Sorted(maps.Keys(r.fonts)) {
		name := object.Name("F" + strconv.Itoa(i+1))
		res.Font[name] = r.fonts[id]
		if fb, ok := r.fallback[id]; ok {
			res.BuiltinFont[name] = fb
		}
	}
	return res
}
