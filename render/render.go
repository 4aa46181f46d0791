package render

//go:generate mockgen -destination=mocks/mock_renderer.go -package=mocks github.com/darkowlzz/expression-toolkit/render Renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"

	layoutv1 "github.com/darkowlzz/expression-toolkit/layout/v1"
)

// Renderer renders a placed layout graph into w.
type Renderer interface {
	Render(w io.Writer, g *layoutv1.Graph, points map[int]layoutv1.Point) error
}

// maxSide is the largest image side tinyfont can address.
const maxSide = math.MaxInt16

var (
	defaultBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	defaultEdge       = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	defaultNode       = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	defaultLabel      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// PNGRenderer renders a layout graph as a PNG image.
type PNGRenderer struct {
	width      int
	height     int
	radius     int
	background color.RGBA
	edge       color.RGBA
	node       color.RGBA
	label      color.RGBA
	font       tinyfont.Fonter
}

// PNGOption is used to configure PNGRenderer.
type PNGOption func(*PNGRenderer)

// WithSize sets the image size in pixels.
func WithSize(width, height int) PNGOption {
	return func(r *PNGRenderer) {
		r.width = width
		r.height = height
	}
}

// WithNodeRadius sets the radius of the node circles in pixels.
func WithNodeRadius(radius int) PNGOption {
	return func(r *PNGRenderer) {
		r.radius = radius
	}
}

// WithColors sets the background, edge, node and label colors.
func WithColors(background, edge, node, label color.RGBA) PNGOption {
	return func(r *PNGRenderer) {
		r.background = background
		r.edge = edge
		r.node = node
		r.label = label
	}
}

// WithFont sets the font of the node labels.
func WithFont(font tinyfont.Fonter) PNGOption {
	return func(r *PNGRenderer) {
		r.font = font
	}
}

// NewPNGRenderer returns a PNGRenderer configured with the given options.
func NewPNGRenderer(opts ...PNGOption) *PNGRenderer {
	r := &PNGRenderer{
		width:      1200,
		height:     900,
		radius:     14,
		background: defaultBackground,
		edge:       defaultEdge,
		node:       defaultNode,
		label:      defaultLabel,
		font:       &freemono.Bold9pt7b,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render implements the Renderer interface.
func (r *PNGRenderer) Render(w io.Writer, g *layoutv1.Graph, points map[int]layoutv1.Point) error {
	img, err := r.Draw(g, points)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Draw draws the graph into a new image.
func (r *PNGRenderer) Draw(g *layoutv1.Graph, points map[int]layoutv1.Point) (*image.RGBA, error) {
	if r.width <= 0 || r.height <= 0 || r.width > maxSide || r.height > maxSide {
		return nil, fmt.Errorf("invalid image size %dx%d", r.width, r.height)
	}
	if r.radius < 0 {
		return nil, fmt.Errorf("invalid node radius %d", r.radius)
	}

	pixels := make(map[int]image.Point, len(points))
	for pos := 0; pos < g.Len(); pos++ {
		p, ok := points[pos]
		if !ok {
			return nil, fmt.Errorf("no location for position %d", pos)
		}
		pixels[pos] = r.toPixel(p)
	}

	c := newCanvas(r.width, r.height, r.background)

	for _, e := range g.Edges() {
		from, to := pixels[e[0]], pixels[e[1]]
		tinydraw.Line(c, int16(from.X), int16(from.Y), int16(to.X), int16(to.Y), r.edge)
	}

	labels := g.Labels()
	for pos := 0; pos < g.Len(); pos++ {
		center := pixels[pos]
		tinydraw.FilledCircle(c, int16(center.X), int16(center.Y), int16(r.radius), r.node)
		r.writeLabel(c, center, labels[pos])
	}

	return c.img, nil
}

// toPixel maps a point of the unit square into the image, keeping a margin
// so that the node circles stay inside.
func (r *PNGRenderer) toPixel(p layoutv1.Point) image.Point {
	margin := r.radius + 2
	w := float64(r.width - 2*margin)
	h := float64(r.height - 2*margin)
	return image.Point{
		X: margin + int(math.Round(p.X*w)),
		Y: margin + int(math.Round(p.Y*h)),
	}
}

// writeLabel writes the label centered on the node.
func (r *PNGRenderer) writeLabel(c *canvas, center image.Point, label string) {
	if r.font == nil || label == "" {
		return
	}
	_, width := tinyfont.LineWidth(r.font, label)
	x := center.X - int(width)/2
	// tinyfont draws from the baseline.
	y := center.Y + int(r.font.GetYAdvance())/4
	tinyfont.WriteLine(c, r.font, int16(x), int16(y), label, r.label)
}
