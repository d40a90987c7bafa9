// Demo of constrained Delaunay triangulation. Input on stdin (or --in)
// should be newline separated points in the form "x y", then a blank line,
// then constraint edges in the form "i j" referencing point indices.
// The triangulation is written as SVG and/or PNG.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo/float"
	"github.com/fogleman/gg"
	"github.com/logrusorgru/aurora"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/osuushi/cdt"
)

var (
	inPath  = kingpin.Flag("in", "Input file; stdin when omitted.").String()
	svgPath = kingpin.Flag("svg", "Write the triangulation as SVG.").String()
	pngPath = kingpin.Flag("png", "Write the triangulation as PNG.").String()
	holes   = kingpin.Flag("holes", "Erase outer triangles and holes instead of keeping the full hull.").Bool()
	scale   = kingpin.Flag("scale", "Output scale factor.").Default("10").Float64()
)

func main() {
	kingpin.Parse()

	in := os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			kingpin.Fatalf("%v", err)
		}
		defer f.Close()
		in = f
	}
	points, edges := readInput(in)

	triangulate := cdt.Triangulate
	if *holes {
		triangulate = cdt.TriangulateWithHoles
	}
	mesh, err := triangulate(points, edges)
	if err != nil {
		fmt.Printf("%s: %v\n", aurora.Red("error"), err)
		os.Exit(1)
	}

	if *svgPath != "" {
		writeSVG(*svgPath, mesh)
	}
	if *pngPath != "" {
		writePNG(*pngPath, mesh)
	}
	fmt.Printf("%s: %d points (%d duplicates), %d edges, %d triangles\n",
		aurora.Green("ok"),
		len(mesh.Vertices),
		len(mesh.Duplicates.Duplicates),
		len(edges),
		len(mesh.Triangles))
}

func readInput(in *os.File) ([]cdt.Point, []cdt.Edge) {
	points := []cdt.Point{}
	edges := []cdt.Edge{}
	readingEdges := false
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			// A blank line switches from points to edges
			if len(points) > 0 {
				readingEdges = true
			}
			continue
		}
		a, b := parsePair(line)
		if readingEdges {
			edges = append(edges, cdt.NewEdge(int(a), int(b)))
		} else {
			points = append(points, cdt.Point{X: a, Y: b})
		}
	}
	return points, edges
}

func parsePair(line string) (float64, float64) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		kingpin.Fatalf("cannot parse line %q: expected two fields", line)
	}
	a, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		kingpin.Fatalf("cannot parse %q: %v", fields[0], err)
	}
	b, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		kingpin.Fatalf("cannot parse %q: %v", fields[1], err)
	}
	return a, b
}

func bounds(mesh *cdt.Mesh) (minX, minY, maxX, maxY float64) {
	minX, minY = mesh.Vertices[0].X, mesh.Vertices[0].Y
	maxX, maxY = minX, minY
	for _, p := range mesh.Vertices[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return
}

func writeSVG(path string, mesh *cdt.Mesh) {
	if len(mesh.Vertices) == 0 {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		kingpin.Fatalf("%v", err)
	}
	defer f.Close()

	minX, minY, maxX, maxY := bounds(mesh)
	s := *scale
	canvas := svg.New(f)
	canvas.Start((maxX-minX)*s, (maxY-minY)*s)
	for _, tri := range mesh.Triangles {
		xs := make([]float64, 3)
		ys := make([]float64, 3)
		for i, iV := range tri {
			xs[i] = (mesh.Vertices[iV].X - minX) * s
			// SVG y grows downward
			ys[i] = (maxY - mesh.Vertices[iV].Y) * s
		}
		canvas.Polygon(xs, ys, "fill:none;stroke:black")
	}
	canvas.End()
}

func writePNG(path string, mesh *cdt.Mesh) {
	if len(mesh.Vertices) == 0 {
		return
	}
	minX, minY, maxX, maxY := bounds(mesh)
	s := *scale
	c := gg.NewContext(int((maxX-minX)*s)+1, int((maxY-minY)*s)+1)
	c.SetRGB(1, 1, 1)
	c.Clear()
	c.SetRGB(0, 0, 0)
	c.SetLineWidth(1)
	for _, tri := range mesh.Triangles {
		c.MoveTo((mesh.Vertices[tri[0]].X-minX)*s, (maxY-mesh.Vertices[tri[0]].Y)*s)
		c.LineTo((mesh.Vertices[tri[1]].X-minX)*s, (maxY-mesh.Vertices[tri[1]].Y)*s)
		c.LineTo((mesh.Vertices[tri[2]].X-minX)*s, (maxY-mesh.Vertices[tri[2]].Y)*s)
		c.ClosePath()
	}
	c.Stroke()
	if err := c.SavePNG(path); err != nil {
		kingpin.Fatalf("%v", err)
	}
}
