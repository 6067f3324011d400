package game

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

var ErrInvalidDimensions = errors.New("terrain dimensions must be positive")

// Ground is the destructible surface the round is played on. *Terrain is the
// production implementation; tests substitute their own.
type Ground interface {
	Dimensions() (width, height int)
	HeightAt(x float64) float64
	SlopeAt(x float64) float64
	IsColliding(x, y float64) bool
	Destroy(x, y, radius float64) int
	SurfaceY(x int) float64
}

// Terrain is a seeded height field rasterised into a per-pixel occupancy grid.
// Occupancy only ever goes from solid to empty.
type Terrain struct {
	width  int
	height int
	seed   int64

	phases [TerrainOctaves]float64
	amps   [TerrainOctaves]float64

	solid []bool // row-major: solid[y*width + x]
}

func RandomSeed() int64 {
	return time.Now().UnixNano()
}

func NewTerrain(width, height int, seed int64) (*Terrain, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	t := &Terrain{
		width:  width,
		height: height,
		seed:   seed,
		solid:  make([]bool, width*height),
	}

	rng := rand.New(rand.NewSource(seed))
	base := float64(height) / 8
	for i := 0; i < TerrainOctaves; i++ {
		t.amps[i] = base * math.Pow(0.5, float64(i)) * (0.5 + 0.5*rng.Float64())
		t.phases[i] = rng.Float64() * 2 * math.Pi
	}

	for x := 0; x < width; x++ {
		top := int(math.Ceil(t.HeightAt(float64(x))))
		if top < 0 {
			top = 0
		}
		for y := top; y < height; y++ {
			t.solid[y*width+x] = true
		}
	}
	return t, nil
}

func (t *Terrain) Seed() int64 { return t.seed }

func (t *Terrain) Dimensions() (int, int) { return t.width, t.height }

// HeightAt is the generated ground line at x in screen coordinates (larger is lower).
// It ignores craters.
func (t *Terrain) HeightAt(x float64) float64 {
	h := float64(t.height) / 2
	freq := TerrainBaseFrequency
	for i := 0; i < TerrainOctaves; i++ {
		h += t.amps[i] * math.Sin(x*freq+t.phases[i])
		freq *= 2
	}
	return h
}

func (t *Terrain) SlopeAt(x float64) float64 {
	return (t.HeightAt(x+SlopeProbeDist) - t.HeightAt(x-SlopeProbeDist)) / (2 * SlopeProbeDist)
}

func (t *Terrain) IsColliding(x, y float64) bool {
	if !(x >= 0 && y >= 0 && x < float64(t.width) && y < float64(t.height)) {
		return false
	}
	return t.solid[int(y)*t.width+int(x)]
}

// Solid reports the occupancy of a single pixel; out of range is empty.
func (t *Terrain) Solid(x, y int) bool {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return false
	}
	return t.solid[y*t.width+x]
}

// Destroy clears every pixel within radius of (x, y) and returns how many
// pixels changed.
func (t *Terrain) Destroy(x, y, radius float64) int {
	if radius <= 0 {
		return 0
	}
	minX := int(math.Max(0, math.Floor(x-radius)))
	maxX := int(math.Min(float64(t.width-1), math.Ceil(x+radius)))
	minY := int(math.Max(0, math.Floor(y-radius)))
	maxY := int(math.Min(float64(t.height-1), math.Ceil(y+radius)))
	r2 := radius * radius

	cleared := 0
	for py := minY; py <= maxY; py++ {
		dy := float64(py) - y
		row := py * t.width
		for px := minX; px <= maxX; px++ {
			dx := float64(px) - x
			if dx*dx+dy*dy > r2 {
				continue
			}
			if t.solid[row+px] {
				t.solid[row+px] = false
				cleared++
			}
		}
	}
	return cleared
}

// SurfaceY returns the first solid row of column x, or the terrain height if
// the column has been blown clear.
func (t *Terrain) SurfaceY(x int) float64 {
	if x < 0 || x >= t.width {
		return float64(t.height)
	}
	for y := 0; y < t.height; y++ {
		if t.solid[y*t.width+x] {
			return float64(y)
		}
	}
	return float64(t.height)
}

// SampleSurface samples SurfaceY every step columns.
func SampleSurface(g Ground, step int) []float64 {
	if step < 1 {
		step = 1
	}
	w, _ := g.Dimensions()
	out := make([]float64, 0, w/step+1)
	for x := 0; x < w; x += step {
		out = append(out, g.SurfaceY(x))
	}
	return out
}
