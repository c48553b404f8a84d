package viz

const trailRetain = 200

// CanvasRenderer draws the pendulum on a braille canvas. It implements
// sim.Renderer: positions arrive in meters with the pivot at the origin
// and y pointing up, and are scaled so the full swing circle fits the
// canvas.
type CanvasRenderer struct {
	canvas *Canvas
	scale  float64 // sub-pixels per meter
	pivotX int
	pivotY int
	bobX   int
	bobY   int
	hasBob bool
	trail  [][2]int
}

func NewCanvasRenderer(width, height int, rodLength float64) *CanvasRenderer {
	cw, ch := width*2, height*4
	reach := float64(cw / 2)
	if float64(ch/2) < reach {
		reach = float64(ch / 2)
	}
	return &CanvasRenderer{
		canvas: NewCanvas(width, height),
		scale:  0.9 * reach / rodLength,
		pivotX: cw / 2,
		pivotY: ch / 2,
		trail:  make([][2]int, 0, trailRetain),
	}
}

func (r *CanvasRenderer) toScreen(x, y float64) (int, int) {
	return r.pivotX + int(x*r.scale), r.pivotY - int(y*r.scale)
}

func (r *CanvasRenderer) SetPosition(x, y float64) {
	r.bobX, r.bobY = r.toScreen(x, y)
	r.hasBob = true
}

func (r *CanvasRenderer) AppendTrail(x, y float64) {
	sx, sy := r.toScreen(x, y)
	r.trail = append(r.trail, [2]int{sx, sy})
	if len(r.trail) > trailRetain {
		r.trail = r.trail[1:]
	}
}

func (r *CanvasRenderer) ClearTrail() {
	r.trail = r.trail[:0]
}

// Frame redraws the scene and returns it as terminal text.
func (r *CanvasRenderer) Frame() string {
	r.canvas.Clear()

	for _, pt := range r.trail {
		r.canvas.Set(pt[0], pt[1])
	}

	// Shelf the pendulum hangs from.
	r.canvas.DrawLine(r.pivotX-6, r.pivotY-1, r.pivotX+6, r.pivotY-1)

	if r.hasBob {
		r.canvas.DrawLine(r.pivotX, r.pivotY, r.bobX, r.bobY)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				r.canvas.Set(r.bobX+dx, r.bobY+dy)
			}
		}
	}

	return r.canvas.String()
}

// Canvas exposes the backing canvas for snapshot export.
func (r *CanvasRenderer) Canvas() *Canvas { return r.canvas }
