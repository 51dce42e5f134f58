package render

import (
	"math"
	"sort"

	"github.com/lixenwraith/fabviz/camera"
	"github.com/lixenwraith/fabviz/palette"
	"github.com/lixenwraith/fabviz/particle"
	"github.com/lixenwraith/fabviz/scene"
	"github.com/lixenwraith/fabviz/vmath"
)

// face is one side of an axis-aligned box: outward normal and corner indices (counter-clockwise seen from outside)
type face struct {
	normal  vmath.Vec3F
	corners [4]int
}

// Box corners are indexed by bit: x=1, y=2, z=4 selects Max on that axis
var boxFaces = [6]face{
	{vmath.V3F(-1, 0, 0), [4]int{0, 4, 6, 2}},
	{vmath.V3F(1, 0, 0), [4]int{1, 3, 7, 5}},
	{vmath.V3F(0, -1, 0), [4]int{0, 1, 5, 4}},
	{vmath.V3F(0, 1, 0), [4]int{2, 6, 7, 3}},
	{vmath.V3F(0, 0, -1), [4]int{0, 2, 3, 1}},
	{vmath.V3F(0, 0, 1), [4]int{4, 5, 7, 6}},
}

// Rasterizer draws the scene graph and particles into a Canvas
type Rasterizer struct {
	Background palette.RGB
	Light      vmath.Vec3F // direction towards the light, normalized
	Ambient    float64
	Diffuse    float64

	viewProj vmath.Mat4
	eye      vmath.Vec3F
	width    float64
	height   float64
	pixelY   float64 // vertical stretch for non-square pixels
	order    []*scene.Node
}

// NewRasterizer returns a rasterizer with a key light from the upper front
func NewRasterizer() *Rasterizer {
	return &Rasterizer{
		Background: palette.RGB{R: 12, G: 14, B: 20},
		Light:      vmath.V3FNormalize(vmath.V3F(0.4, 1, 0.6)),
		Ambient:    0.35,
		Diffuse:    0.65,
		pixelY:     1,
	}
}

// SetPixelAspect sets pixel height over width; terminal half-blocks are close to 1
func (r *Rasterizer) SetPixelAspect(a float64) {
	if a > 0 {
		r.pixelY = a
	}
}

// Draw clears c and renders every drawn node then every live particle
// Opaque nodes are drawn first; translucent nodes follow back to front
func (r *Rasterizer) Draw(c *Canvas, cam camera.Pose, g *scene.Graph, field *particle.Field) {
	c.Clear(r.Background)
	w, h := c.Size()
	if w == 0 || h == 0 {
		return
	}
	r.width, r.height = float64(w), float64(h)
	aspect := r.width / (r.height * r.pixelY)
	r.viewProj = cam.ViewProjection(aspect)
	r.eye = cam.Eye

	if g != nil {
		r.order = r.order[:0]
		for _, n := range g.Nodes() {
			if n.Drawn() {
				r.order = append(r.order, n)
			}
		}
		sort.SliceStable(r.order, func(i, j int) bool {
			a, b := r.order[i], r.order[j]
			ao, bo := a.Current.Opacity >= 1, b.Current.Opacity >= 1
			if ao != bo {
				return ao
			}
			if ao {
				return false
			}
			return r.distSq(a) > r.distSq(b)
		})
		for _, n := range r.order {
			r.drawBox(c, n.Bounds(), n.Current.Color, vmath.Clamp01(n.Current.Opacity), n.Current.Glow)
		}
	}

	if field != nil {
		field.Each(func(p particle.Particle) {
			r.drawPoint(c, p)
		})
	}
}

func (r *Rasterizer) distSq(n *scene.Node) float64 {
	return vmath.V3FMagSq(vmath.V3FSub(n.Bounds().Center(), r.eye))
}

// Project maps a world point to pixel coordinates and NDC depth
func (r *Rasterizer) Project(p vmath.Vec3F) (x, y, z float64, ok bool) {
	clip := vmath.Mat4MulPoint(r.viewProj, p)
	if clip.W <= 1e-6 {
		return 0, 0, 0, false
	}
	nx, ny, nz := clip.X/clip.W, clip.Y/clip.W, clip.Z/clip.W
	if nz < -1 || nz > 1 {
		return 0, 0, 0, false
	}
	return (nx + 1) * 0.5 * r.width, (1 - ny) * 0.5 * r.height, nz, true
}

func (r *Rasterizer) drawBox(c *Canvas, b vmath.Box3F, base palette.RGB, alpha, glow float64) {
	if b.Empty() {
		return
	}
	var corners [8]vmath.Vec3F
	for i := range corners {
		corners[i] = b.Min
		if i&1 != 0 {
			corners[i].X = b.Max.X
		}
		if i&2 != 0 {
			corners[i].Y = b.Max.Y
		}
		if i&4 != 0 {
			corners[i].Z = b.Max.Z
		}
	}

	type screenPt struct{ x, y, z float64 }
	var proj [8]screenPt
	var visible [8]bool
	for i, p := range corners {
		x, y, z, ok := r.Project(p)
		proj[i] = screenPt{x, y, z}
		visible[i] = ok
	}

	center := b.Center()
	half := vmath.V3FScale(b.Size(), 0.5)
	for _, f := range boxFaces {
		faceCenter := vmath.V3FAdd(center, vmath.V3FMul(f.normal, half))
		if vmath.V3FDot(f.normal, vmath.V3FSub(r.eye, faceCenter)) <= 0 {
			continue
		}
		q := f.corners
		if !visible[q[0]] || !visible[q[1]] || !visible[q[2]] || !visible[q[3]] {
			continue
		}
		col := r.shade(base, f.normal, glow)
		a, b1, c1, d := proj[q[0]], proj[q[1]], proj[q[2]], proj[q[3]]
		r.fillTriangle(c, a.x, a.y, a.z, b1.x, b1.y, b1.z, c1.x, c1.y, c1.z, col, alpha)
		r.fillTriangle(c, a.x, a.y, a.z, c1.x, c1.y, c1.z, d.x, d.y, d.z, col, alpha)
	}
}

// shade applies flat directional lighting plus emissive glow
func (r *Rasterizer) shade(base palette.RGB, normal vmath.Vec3F, glow float64) palette.RGB {
	lit := r.Ambient + r.Diffuse*math.Max(0, vmath.V3FDot(normal, r.Light))
	col := base.Scale(lit)
	if glow > 0 {
		col = col.Add(base.Scale(glow * 0.6))
	}
	return col
}

// fillTriangle scan-converts with edge functions over the clamped bounding box; either winding
func (r *Rasterizer) fillTriangle(c *Canvas, x0, y0, z0, x1, y1, z1, x2, y2, z2 float64, col palette.RGB, alpha float64) {
	area := edge(x0, y0, x1, y1, x2, y2)
	if math.Abs(area) < 1e-9 {
		return
	}
	minX := max(int(math.Floor(min(x0, x1, x2))), 0)
	maxX := min(int(math.Ceil(max(x0, x1, x2))), int(r.width)-1)
	minY := max(int(math.Floor(min(y0, y1, y2))), 0)
	maxY := min(int(math.Ceil(max(y0, y1, y2))), int(r.height)-1)

	inv := 1 / area
	for py := minY; py <= maxY; py++ {
		sy := float64(py) + 0.5
		for px := minX; px <= maxX; px++ {
			sx := float64(px) + 0.5
			w0 := edge(x1, y1, x2, y2, sx, sy) * inv
			w1 := edge(x2, y2, x0, y0, sx, sy) * inv
			w2 := edge(x0, y0, x1, y1, sx, sy) * inv
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*z0 + w1*z1 + w2*z2
			c.Plot(px, py, z, col, alpha)
		}
	}
}

func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// drawPoint plots one particle, fading with remaining life
func (r *Rasterizer) drawPoint(c *Canvas, p particle.Particle) {
	x, y, z, ok := r.Project(p.Pos)
	if !ok {
		return
	}
	alpha := 0.35 + 0.65*vmath.Clamp01(p.Life)
	c.Plot(int(x), int(y), z, p.Color, alpha)
}
