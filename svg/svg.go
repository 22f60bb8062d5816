// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package svg implements a rendering surface that keeps the latest
// frame of every view and writes them as an SVG document.
package svg

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/aclements/go-gg/palette"
	svgo "github.com/ajstarks/svgo"
	"golang.org/x/image/colornames"

	"github.com/aclements/vizspec/entity"
	"github.com/aclements/vizspec/internal/log"
)

// Series colors for marks without an explicit fill or stroke. Numeric
// colors in [0, 1] are mapped through the same palette as a gradient.
var defaultPalette = palette.RGBGradient{Colors: []color.RGBA{
	{0x4c, 0x72, 0xb0, 0xff},
	{0x55, 0xa8, 0x68, 0xff},
	{0xc4, 0x4e, 0x52, 0xff},
	{0x81, 0x72, 0xb2, 0xff},
	{0xcc, 0xb9, 0x74, 0xff},
	{0x64, 0xb5, 0xcd, 0xff},
}}

// Surface is an entity.Surface that draws to SVG.
//
// Views are drawn in the order they were first rendered. Rendering a
// view again replaces its frame in place.
type Surface struct {
	// Width and Height are the canvas size. If zero, the canvas
	// is sized to fit every frame.
	Width, Height int

	// FontSize is the size of axis labels in pixels.
	FontSize int

	// Background is the canvas background color, or "" for none.
	Background string

	frames []entity.Frame
	index  map[string]int
	marks  int
}

// New returns an empty surface with default settings.
func New() *Surface {
	return &Surface{FontSize: 10}
}

// Render records f, replacing any earlier frame of the same view.
func (s *Surface) Render(f entity.Frame) error {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	key := f.Kind + ":" + f.Name
	if i, ok := s.index[key]; ok {
		s.frames[i] = f
		return nil
	}
	s.index[key] = len(s.frames)
	s.frames = append(s.frames, f)
	return nil
}

// Frames returns the current frame of every view, in drawing order.
func (s *Surface) Frames() []entity.Frame {
	return append([]entity.Frame(nil), s.frames...)
}

// Frame returns the current frame of the view kind:name.
func (s *Surface) Frame(kind, name string) (entity.Frame, bool) {
	i, ok := s.index[kind+":"+name]
	if !ok {
		return entity.Frame{}, false
	}
	return s.frames[i], true
}

// Reset discards every frame.
func (s *Surface) Reset() {
	s.frames, s.index = nil, nil
}

// Size returns the canvas size WriteTo will use.
func (s *Surface) Size() (w, h int) {
	w, h = s.Width, s.Height
	var mx, my float64
	for _, f := range s.frames {
		mx = math.Max(mx, f.Bounds.X+f.Bounds.Width)
		my = math.Max(my, f.Bounds.Y+f.Bounds.Height)
	}
	if w == 0 {
		w = int(math.Ceil(mx))
	}
	if h == 0 {
		h = int(math.Ceil(my))
	}
	return max(w, 1), max(h, 1)
}

// countWriter counts bytes written to w and keeps the first write
// error. svgo ignores write errors, so once err is set later writes
// are dropped.
type countWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

// WriteTo writes every frame to w as an SVG document.
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	canvas := svgo.New(cw)
	width, height := s.Size()
	canvas.Start(width, height, `font-family="sans-serif"`)
	if s.Background != "" {
		canvas.Rect(0, 0, width, height, cssPaint("fill", s.Background))
	}
	s.marks = 0
	for _, f := range s.frames {
		canvas.Gid(f.Kind + "-" + f.Name)
		switch f.Shape {
		case "area":
			s.area(canvas, f)
		case "axis":
			s.axis(canvas, f)
		case "circle":
			s.circles(canvas, f)
		case "rect":
			s.rects(canvas, f)
		case "line":
			s.line(canvas, f)
		default:
			log.Warn(log.CatRender, "unknown shape", "view", f.Kind+":"+f.Name, "shape", f.Shape)
		}
		canvas.Gend()
	}
	canvas.End()
	return cw.n, cw.err
}

// seriesColor returns the next default mark color.
func (s *Surface) seriesColor() string {
	c := defaultPalette.Colors[s.marks%len(defaultPalette.Colors)]
	s.marks++
	return hexColor(c)
}

func (s *Surface) area(canvas *svgo.SVG, f entity.Frame) {
	if bg, _ := f.Attrs["background"].(string); bg != "" {
		b := f.Bounds
		canvas.Rect(px(b.X), px(b.Y), px(b.Width), px(b.Height), cssPaint("fill", bg))
	}
	canvas.Rect(px(num(f.Attrs["contentX"])), px(num(f.Attrs["contentY"])),
		px(num(f.Attrs["contentWidth"])), px(num(f.Attrs["contentHeight"])),
		"fill:none;stroke:#ccc")
}

func (s *Surface) axis(canvas *svgo.SVG, f entity.Frame) {
	a := f.Attrs
	orient, _ := a["orient"].(string)
	tl := num(a["tickLength"])
	grid, _ := a["gridline"].(string)
	vertical := orient == "left" || orient == "right"

	for _, it := range f.Items {
		if grid != "" {
			if _, ok := it.Attrs["gx1"]; ok {
				canvas.Line(px(num(it.Attrs["gx1"])), px(num(it.Attrs["gy1"])),
					px(num(it.Attrs["gx2"])), px(num(it.Attrs["gy2"])),
					cssPaint("stroke", grid))
			}
		}
	}
	canvas.Line(px(num(a["x1"])), px(num(a["y1"])), px(num(a["x2"])), px(num(a["y2"])), "stroke:black")

	fs := s.FontSize
	for _, it := range f.Items {
		x, y := num(it.Attrs["x"]), num(it.Attrs["y"])
		label, _ := it.Attrs["label"].(string)
		if vertical {
			canvas.Line(px(x), px(y), px(x+tl), px(y), "stroke:black")
			anchor := "start"
			if tl < 0 {
				anchor = "end"
			}
			canvas.Text(px(x+tl*1.5), px(y), label, `dy=".3em"`, fmt.Sprintf(`text-anchor="%s"`, anchor), fmt.Sprintf(`font-size="%d"`, fs))
		} else {
			canvas.Line(px(x), px(y), px(x), px(y+tl), "stroke:black")
			ty := y + tl*1.5
			if tl > 0 {
				ty += float64(fs)
			}
			canvas.Text(px(x), px(ty), label, `text-anchor="middle"`, fmt.Sprintf(`font-size="%d"`, fs))
		}
	}
}

func (s *Surface) circles(canvas *svgo.SVG, f entity.Frame) {
	def := s.seriesColor()
	for _, it := range f.Items {
		x, okx := entity.ToFloat(it.Attrs["cx"])
		y, oky := entity.ToFloat(it.Attrs["cy"])
		if !okx || !oky {
			continue
		}
		r := 3.0
		if v, ok := entity.ToFloat(it.Attrs["r"]); ok {
			r = v
		}
		canvas.Circle(px(f.Origin.X+x), px(f.Origin.Y+y), px(r), paint(it.Attrs, def, ""))
	}
}

func (s *Surface) rects(canvas *svgo.SVG, f entity.Frame) {
	def := s.seriesColor()
	for _, it := range f.Items {
		x, okx := entity.ToFloat(it.Attrs["x"])
		y, oky := entity.ToFloat(it.Attrs["y"])
		w, okw := entity.ToFloat(it.Attrs["width"])
		h, okh := entity.ToFloat(it.Attrs["height"])
		if !okx || !oky || !okw || !okh {
			continue
		}
		if w < 0 {
			x, w = x+w, -w
		}
		if h < 0 {
			y, h = y+h, -h
		}
		canvas.Rect(px(f.Origin.X+x), px(f.Origin.Y+y), px(w), px(h), paint(it.Attrs, def, ""))
	}
}

func (s *Surface) line(canvas *svgo.SVG, f entity.Frame) {
	def := s.seriesColor()
	var xs, ys []int
	stroke := ""
	for _, it := range f.Items {
		x, okx := entity.ToFloat(it.Attrs["x"])
		y, oky := entity.ToFloat(it.Attrs["y"])
		if !okx || !oky {
			continue
		}
		xs = append(xs, px(f.Origin.X+x))
		ys = append(ys, px(f.Origin.Y+y))
		if c, ok := colorAttr(it.Attrs["stroke"]); ok && stroke == "" {
			stroke = c
		}
	}
	if len(xs) < 2 {
		return
	}
	if stroke == "" {
		stroke = def
	}
	canvas.Polyline(xs, ys, "fill:none;"+cssPaint("stroke", stroke)+";stroke-width:2")
}

// paint returns the fill and stroke style of an item.
func paint(attrs map[string]interface{}, fill, stroke string) string {
	if c, ok := colorAttr(attrs["fill"]); ok {
		fill = c
	}
	if c, ok := colorAttr(attrs["stroke"]); ok {
		stroke = c
	}
	style := cssPaint("fill", fill)
	if stroke != "" {
		style += ";" + cssPaint("stroke", stroke)
	}
	return style
}

// colorAttr returns a color attribute as a CSS color. Strings are
// color names or CSS colors; numbers are positions on the default
// palette.
func colorAttr(v interface{}) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	}
	x, ok := entity.ToFloat(v)
	if !ok {
		return "", false
	}
	return hexColor(defaultPalette.Map(math.Max(0, math.Min(1, x)))), true
}

// cssPaint returns a CSS property setting prop to the color c, which
// may be an SVG color name, or any other CSS color.
func cssPaint(prop, c string) string {
	if rgba, ok := colornames.Map[strings.ToLower(c)]; ok {
		return prop + ":" + hexColor(rgba)
	}
	if c == "" {
		c = "none"
	}
	return prop + ":" + c
}

func hexColor(c color.Color) string {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return "none"
	}
	if a != 0xffff {
		r, g, b = r*0xffff/a, g*0xffff/a, b*0xffff/a
	}
	r, g, b = r>>8, g>>8, b>>8
	if r>>4 == r&0xF && g>>4 == g&0xF && b>>4 == b&0xF {
		return fmt.Sprintf("#%x%x%x", r>>4, g>>4, b>>4)
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func num(v interface{}) float64 {
	f, _ := entity.ToFloat(v)
	return f
}

func px(x float64) int {
	return int(math.Round(x))
}
