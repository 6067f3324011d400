package game

import (
	"math"

	"github.com/google/uuid"
)

type Vec2 struct{ X, Y float64 }

func (a Vec2) Add(b Vec2) Vec2      { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2      { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Dot(b Vec2) float64   { return a.X*b.X + a.Y*b.Y }
func (a Vec2) Len() float64         { return math.Hypot(a.X, a.Y) }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Trail is a fixed-size ring of recent projectile centres, oldest overwritten first.
type Trail struct {
	buf   []Vec2
	head  int
	size  int
	limit int
}

func newTrail(n int) *Trail {
	if n < 1 {
		n = 1
	}
	return &Trail{buf: make([]Vec2, n), limit: n}
}

func (t *Trail) push(p Vec2) {
	t.buf[t.head] = p
	t.head = (t.head + 1) % t.limit
	if t.size < t.limit {
		t.size++
	}
}

func (t *Trail) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Points returns the stored centres oldest first.
func (t *Trail) Points() []Vec2 {
	if t == nil || t.size == 0 {
		return nil
	}
	out := make([]Vec2, 0, t.size)
	start := (t.head - t.size + t.limit) % t.limit
	for i := 0; i < t.size; i++ {
		out = append(out, t.buf[(start+i)%t.limit])
	}
	return out
}

// Latest returns the most recently pushed centre.
func (t *Trail) Latest() (Vec2, bool) {
	if t == nil || t.size == 0 {
		return Vec2{}, false
	}
	return t.buf[(t.head-1+t.limit)%t.limit], true
}

func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}
