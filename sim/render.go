package sim

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"

	"torusim/core"
)

// Color definitions for the rendered snapshot.
var (
	ClrWhite = &color.RGBA{R: 255, G: 255, B: 255, A: 0}
	ClrBlue  = &color.RGBA{B: 255, A: 0}
)

// SVGRenderer draws a final-state snapshot of the torus: nodes placed
// on a ring by node number, filled blue when their blocked queue is
// nonempty and white otherwise, with an edge to each "positive
// direction" neighbor colored by that channel's observed utilization
// (busy-time / total simulated time) and dashed when the ring layout
// places the two endpoints more than one ring radius apart.
type SVGRenderer struct {
	fn       string
	w, h     float64
	buf      *bytes.Buffer
	svg      *svg.SVG
	radius   float64
	nodeSize float64
}

// NewSVGRenderer creates a renderer that writes to fn when Render
// completes.
func NewSVGRenderer(fn string) *SVGRenderer {
	return &SVGRenderer{
		fn:       fn,
		w:        800,
		h:        800,
		buf:      new(bytes.Buffer),
		radius:   350,
		nodeSize: 6,
	}
}

// Render draws every node of the engine's torus and the state of its
// "positive" outgoing channels, then writes the SVG to the configured
// file.
func (r *SVGRenderer) Render(e *core.Engine, cfg core.Config) error {
	r.svg = svg.New(r.buf)
	w, h := int(r.w), int(r.h)
	r.svg.Start(w, h)
	r.svg.Rect(0, 0, w, h, "fill:white")

	n := cfg.NumNodes()
	cx, cy := r.w/2, r.h/2
	positions := make([]Position, n)
	for nn := 0; nn < n; nn++ {
		angle := 2 * math.Pi * float64(nn) / float64(n)
		positions[nn] = Position{
			x: cx + r.radius*math.Cos(angle),
			y: cy + r.radius*math.Sin(angle),
		}
	}

	i := make(core.Address, cfg.D)
	for nn := 0; nn < n; nn++ {
		ns := e.NodeState(i)
		r.drawEdges(e, cfg, i, nn, positions, ns)
		r.drawNode(positions[nn], ns)
		core.NextIndex(i, cfg.K)
	}

	r.svg.End()
	return r.flush()
}

func (r *SVGRenderer) drawEdges(e *core.Engine, cfg core.Config, i core.Address, nn int, positions []Position, ns *core.NodeState) {
	simTime := e.SimTime()
	for dim := 0; dim < cfg.D; dim++ {
		np := core.PortNumber(dim, 1)
		nb := core.Neighbor(i, np, cfg.K)
		nbn := core.NodeNumber(nb, cfg.K)
		p1, p2 := positions[nn], positions[nbn]

		util := 0.0
		if simTime > 0 {
			util = float64(ns.BusyTicks(np)) / float64(simTime)
		}
		style := fmt.Sprintf("stroke:%s;stroke-width:1", rgbHex(utilizationColor(util)))
		if isWraparoundEdge(p1, p2, r.radius) {
			style += ";stroke-dasharray:4,3"
		}
		r.svg.Line(int(p1.x), int(p1.y), int(p2.x), int(p2.y), style)
	}
}

// isWraparoundEdge reports whether an edge's screen-space chord is
// longer than the ring radius. It looks only at the layout: it does
// not check whether the edge is a torus wraparound hop, so some
// wraparound edges (e.g. k-1 -> 0 on a 1-dimensional ring) are not
// flagged and some non-wraparound edges of higher dimensions are.
func isWraparoundEdge(p1, p2 Position, radius float64) bool {
	d2 := p1.Distance2(&p2)
	return d2 > radius*radius
}

// utilizationColor maps a busy-time fraction in [0,1] to a color
// blending from black (idle) to red (saturated).
func utilizationColor(util float64) *color.RGBA {
	if util < 0 {
		util = 0
	}
	if util > 1 {
		util = 1
	}
	return &color.RGBA{R: uint8(255 * util), A: 0}
}

func (r *SVGRenderer) drawNode(p Position, ns *core.NodeState) {
	fill := ClrWhite
	if depth := ns.QueueLen(); depth > 0 {
		fill = ClrBlue
	}
	style := fmt.Sprintf("fill:%s;stroke:#000000", rgbHex(fill))
	r.svg.Circle(int(p.x), int(p.y), int(r.nodeSize), style)
}

func rgbHex(c *color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (r *SVGRenderer) flush() error {
	if r.fn == "" {
		return nil
	}
	f, err := os.Create(r.fn)
	if err != nil {
		log.Printf("render: cannot create %s: %v", r.fn, err)
		return err
	}
	defer f.Close()
	_, err = f.Write(r.buf.Bytes())
	return err
}
