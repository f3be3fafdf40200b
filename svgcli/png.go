package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/npillmayer/txt2svg/config"
	"github.com/npillmayer/txt2svg/face"
	"github.com/npillmayer/txt2svg/fpmath"
	"github.com/npillmayer/txt2svg/layout"
	"github.com/npillmayer/txt2svg/svgdoc"
	"golang.org/x/image/vector"
)

// rasterSink draws glyph outlines with a vector rasterizer, shifted by (dx,dy).
type rasterSink struct {
	rast   *vector.Rasterizer
	dx, dy float32
	open   bool
}

func (s *rasterSink) BeginGlyph(face.GlyphIndex) {}

func (s *rasterSink) MoveTo(x, y float32) {
	if s.open {
		s.rast.ClosePath()
	}
	s.rast.MoveTo(x+s.dx, y+s.dy)
	s.open = true
}

func (s *rasterSink) LineTo(x, y float32) {
	s.rast.LineTo(x+s.dx, y+s.dy)
}

func (s *rasterSink) QuadTo(cx, cy, x, y float32) {
	s.rast.QuadTo(cx+s.dx, cy+s.dy, x+s.dx, y+s.dy)
}

func (s *rasterSink) CubeTo(cx0, cy0, cx1, cy1, x, y float32) {
	s.rast.CubeTo(cx0+s.dx, cy0+s.dy, cx1+s.dx, cy1+s.dy, x+s.dx, y+s.dy)
}

func (s *rasterSink) EndGlyph() {
	if s.open {
		s.rast.ClosePath()
		s.open = false
	}
}

// renderPNG lays out text the same way as the SVG output does, including the
// padding around the text, and rasterizes it onto a white background.
func renderPNG(text string, f face.Font, fill string, rc config.RenderConfig) (*image.RGBA, error) {
	col, err := colorful.Hex(fill)
	if err != nil {
		return nil, err
	}
	opts := layout.DefaultOptions()
	opts.PixelHeight = rc.PixelHeight
	opts.Flatness = rc.Flatness
	if rc.Approx {
		opts.Numeric = fpmath.Approx{}
	}
	engine := layout.NewEngine(f, opts)
	bbox, _ := engine.Run([]byte(text), layout.Discard)
	vb := svgdoc.EmptyViewBox()
	if !bbox.IsEmpty() {
		vb = svgdoc.NewViewBox(bbox.MinX, bbox.MinY, bbox.MaxX, bbox.MaxY)
	}
	width, height := vb.W, vb.H
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)
	rast := vector.NewRasterizer(width, height)
	rast.DrawOp = draw.Over
	engine.Run([]byte(text), &rasterSink{rast: rast, dx: -float32(vb.X), dy: -float32(vb.Y)})
	rast.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{})
	return img, nil
}

func writePNG(outPath, text string, f face.Font, fill string, rc config.RenderConfig) error {
	img, err := renderPNG(text, f, fill, rc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	return encodePNG(out, img)
}

// encodePNG writes img to w and closes w.
func encodePNG(w io.WriteCloser, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		w.Close()
		return fmt.Errorf("cannot encode png: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return nil
}
