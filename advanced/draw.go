package advanced

import (
	"math"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"

	"github.com/osuushi/cdt/dbg"
)

// This is for debugging purposes only

const dbgDrawPadding = 20

// dbgDraw renders the current mesh to a PNG and cats it to the terminal.
// Fixed edges are drawn highlighted, and with labels on, triangles get
// their readable names so mesh surgery can be followed across steps.
func (g *Triangulation[T]) dbgDraw(scale float64, labels bool) {
	var minX, minY, maxX, maxY float64
	minX = math.Inf(1)
	minY = math.Inf(1)
	maxX = math.Inf(-1)
	maxY = math.Inf(-1)
	for _, p := range g.Vertices {
		minX = math.Min(minX, float64(p.X))
		minY = math.Min(minY, float64(p.Y))
		maxX = math.Max(maxX, float64(p.X))
		maxY = math.Max(maxY, float64(p.Y))
	}

	// Set up the context
	width := int(scale*(maxX-minX)) + dbgDrawPadding*2
	height := int(scale*(maxY-minY)) + dbgDrawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(dbgDrawPadding, dbgDrawPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	at := func(iV VertInd) (float64, float64) {
		return float64(g.Vertices[iV].X), float64(g.Vertices[iV].Y)
	}
	c.SetLineWidth(1)
	c.SetRGB(0, 1, 1)
	for _, t := range g.Triangles {
		c.MoveTo(at(t.Vertices[0]))
		c.LineTo(at(t.Vertices[1]))
		c.LineTo(at(t.Vertices[2]))
		c.ClosePath()
	}
	c.Stroke()

	c.SetLineWidth(2)
	c.SetRGB(1, 0.5, 0)
	for e := range g.FixedEdges {
		c.MoveTo(at(e.V1()))
		c.LineTo(at(e.V2()))
	}
	c.Stroke()

	if labels {
		c.SetRGB(1, 1, 1)
		for iT, t := range g.Triangles {
			x := 0.0
			y := 0.0
			for _, iV := range t.Vertices {
				vx, vy := at(iV)
				x += vx / 3
				y += vy / 3
			}
			c.DrawString(dbg.Tri(iT), x, y)
		}
		c.SetRGB(1, 1, 0)
		for iV := range g.Vertices {
			x, y := at(VertInd(iV))
			c.DrawString(dbg.Vert(iV), x, y)
		}
	}

	c.SavePNG("/tmp/cdt_mesh.png")
	imgcat.CatFile("/tmp/cdt_mesh.png", os.Stdout)
}
