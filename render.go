package bayex

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

//////
// Rendering.
//////

// surfaceGrid adapts a posterior surface evaluated on a factorial grid
// to the plotter.GridXYZ interface. Values are stored with the last
// dimension varying fastest, matching FactorialGrid's row order.
type surfaceGrid struct {
	xs, ys []float64
	z      *mat.VecDense
}

func (g surfaceGrid) Dims() (c, r int)   { return len(g.xs), len(g.ys) }
func (g surfaceGrid) Z(c, r int) float64 { return g.z.AtVec(c*len(g.ys) + r) }
func (g surfaceGrid) X(c int) float64    { return g.xs[c] }
func (g surfaceGrid) Y(r int) float64    { return g.ys[r] }

// RenderComparison writes a single PNG with the two runs' posterior
// mean surfaces side by side, each overlaid with the points that run
// sampled. The left panel is the plain-EI run, the right one the
// noise-rescaled run.
func RenderComparison(res *Result, path string) error {
	if res.Domain.Dim() != 2 {
		return &ShapeError{Got: res.Domain.Dim(), Want: 2}
	}

	bounds := res.Domain.Bounds()
	xs := linspace(bounds[0][0], bounds[0][1], res.GridPerDim)
	ys := linspace(bounds[1][0], bounds[1][1], res.GridPerDim)

	left, err := surfacePlot("Expected Improvement", res.Domain, surfaceGrid{xs: xs, ys: ys, z: res.EI.Surface}, res.EI)
	if err != nil {
		return err
	}

	right, err := surfacePlot("Noise-Rescaled EI", res.Domain, surfaceGrid{xs: xs, ys: ys, z: res.Augmented.Surface}, res.Augmented)
	if err != nil {
		return err
	}

	img := vgimg.New(vg.Points(720), vg.Points(320))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows: 1,
		Cols: 2,
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}

	plots := [][]*plot.Plot{{left, right}}
	canvases := plot.Align(plots, tiles, dc)

	plots[0][0].Draw(canvases[0][0])
	plots[0][1].Draw(canvases[0][1])

	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bayex: create plot file: %w", err)
	}
	defer w.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("bayex: write plot: %w", err)
	}

	return nil
}

// surfacePlot builds one panel: a filled heat map of the posterior mean
// with the run's sampled points overlaid.
func surfacePlot(title string, domain Domain, grid surfaceGrid, run RunResult) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title

	params := domain.Parameters()
	p.X.Label.Text = params[0].Name
	p.Y.Label.Text = params[1].Name

	heat := plotter.NewHeatMap(grid, palette.Heat(16, 1))
	p.Add(heat)

	n, _ := run.X.Dims()
	points := make(plotter.XYs, n)

	for i := 0; i < n; i++ {
		points[i].X = run.X.At(i, 0)
		points[i].Y = run.X.At(i, 1)
	}

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, fmt.Errorf("bayex: scatter for %q: %w", title, err)
	}

	scatter.GlyphStyle.Color = color.Black
	scatter.GlyphStyle.Radius = vg.Points(1.5)

	p.Add(scatter)

	return p, nil
}
