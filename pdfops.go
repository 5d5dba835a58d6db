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

// Package pdfops converts between PDF content streams and a list of
// drawing operations.
//
// A page is described by an [ops.Page], which holds a sequence of
// [ops.Op] values: path drawing, colours, text, images and marked
// content.  [Encode] turns a page into the bytes of a content stream,
// [Decode] reconstructs the operations from a content stream.  Names of
// fonts, images and other resources are translated using a
// [resource.Resource], which the surrounding PDF writer or reader
// supplies.
//
// Embedded fonts must be subsetted before pages are encoded.  This is
// done by a font registry (package [seehuhn.de/go/pdfops/font/registry]),
// which collects the glyphs used on all pages and subsets every font
// exactly once:
//
//	reg := registry.New(nil)
//	err := reg.Add("body", ttfData)
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = reg.Prepare(ctx, pages)
//	if err != nil {
//		log.Fatal(err)
//	}
//	streams, warnings, err := pdfops.EncodePages(ctx, pages, reg.Resource(), nil)
//
// Problems in the content, for example unbalanced save/restore operations,
// do not cause errors.  They are reported as [codec.Warning] values.
//
// The lower level packages are:
//
//   - [seehuhn.de/go/pdfops/codec]: the content stream encoder and decoder
//   - [seehuhn.de/go/pdfops/ops]: the operation types
//   - [seehuhn.de/go/pdfops/font/subset]: font subsetting
//   - [seehuhn.de/go/pdfops/font/tounicode]: ToUnicode CMaps
package pdfops

import (
	"context"
	"runtime"
	"sync"

	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdfops/codec"
	"seehuhn.de/go/pdfops/font/subset"
	"seehuhn.de/go/pdfops/font/tounicode"
	"seehuhn.de/go/pdfops/ops"
	"seehuhn.de/go/pdfops/resource"
)

// Encode converts the operations of a page into a content stream.
// The resource dictionary res may be nil.
func Encode(page *ops.Page, res *resource.Resource, opt *codec.Options) ([]byte, []codec.Warning) {
	return codec.Encode(page, res, opt)
}

// Decode reconstructs the operations of a content stream.
// The resource dictionary res may be nil.
func Decode(data []byte, res *resource.Resource, opt *codec.Options) ([]ops.Op, []codec.Warning) {
	return codec.Decode(data, res, opt)
}

// EncodePages encodes several pages in parallel.  All pages share the
// resource dictionary res, which must not be modified while EncodePages
// runs.
//
// The Page field of the returned warnings is the index of the page in
// pages.  If ctx is cancelled, pages which have not been started are
// skipped and the context's error is returned.
func EncodePages(ctx context.Context, pages []*ops.Page, res *resource.Resource, opt *codec.Options) ([][]byte, []codec.Warning, error) {
	out := make([][]byte, len(pages))
	ws, err := forEachPage(ctx, len(pages), opt, func(i int, opt *codec.Options) []codec.Warning {
		data, ws := codec.Encode(pages[i], res, opt)
		out[i] = data
		return ws
	})
	return out, ws, err
}

// DecodePages decodes several content streams in parallel.  The resource
// dictionary res is shared by all pages.
//
// The Page field of the returned warnings is the index of the stream in
// streams.  If ctx is cancelled, streams which have not been started are
// skipped and the context's error is returned.
func DecodePages(ctx context.Context, streams [][]byte, res *resource.Resource, opt *codec.Options) ([][]ops.Op, []codec.Warning, error) {
	out := make([][]ops.Op, len(streams))
	ws, err := forEachPage(ctx, len(streams), opt, func(i int, opt *codec.Options) []codec.Warning {
		opList, ws := codec.Decode(streams[i], res, opt)
		out[i] = opList
		return ws
	})
	return out, ws, err
}

// forEachPage calls fn for every page index, using at most GOMAXPROCS
// goroutines.  The warnings are returned in page order.  An error is
// returned only if ctx was cancelled before all pages were started.
func forEachPage(ctx context.Context, n int, opt *codec.Options, fn func(int, *codec.Options) []codec.Warning) ([]codec.Warning, error) {
	perPage := make([][]codec.Warning, n)

	sem := make(chan struct{}, max(runtime.GOMAXPROCS(0), 1))
	var wg sync.WaitGroup
	var err error
	for i := range n {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
		}
		if err = ctx.Err(); err != nil {
			break
		}

		pageOpt := codec.Options{}
		if opt != nil {
			pageOpt = *opt
		}
		pageOpt.Page = i

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			perPage[i] = fn(i, &pageOpt)
		}()
	}
	wg.Wait()

	var ws []codec.Warning
	for _, pw := range perPage {
		ws = append(ws, pw...)
	}
	return ws, err
}

// SubsetFont reduces a TrueType or OpenType font to the given glyphs.
// See [subset.Subset] for details.
func SubsetFont(data []byte, used []glyph.ID) (*subset.FontSubset, error) {
	return subset.Subset(data, used)
}

// BuildToUnicode returns the text of a ToUnicode CMap which maps the
// glyphs of a subsetted font to text.  The keys of m are glyph IDs in the
// subsetted font.
func BuildToUnicode(m map[glyph.ID]string, fontName string) string {
	return tounicode.Build(m, fontName)
}

// ParseToUnicode reads a ToUnicode CMap.
func ParseToUnicode(text []byte) (*tounicode.CMap, error) {
	return tounicode.Parse(text)
}

// ExtractText returns the text shown by a sequence of operations.
func ExtractText(opList []ops.Op) string {
	return codec.ExtractText(opList)
}
