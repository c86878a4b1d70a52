package displace

import (
	"strings"
	"testing"

	"github.com/Faultbox/tubescene/internal/engine/heightfield"
	"github.com/Faultbox/tubescene/internal/engine/shader"
	"github.com/Faultbox/tubescene/pkg/math"
	"github.com/chewxy/math32"
)

const eps = 1e-4

func near(a, b float32) bool {
	return math32.Abs(a-b) < eps
}

type sampleFunc func(u, v float32) float32

func (f sampleFunc) Sample(u, v float32) float32 { return f(u, v) }

func TestRadiusAtMidHeight(t *testing.T) {
	d, r := Radius(0.5)
	if d != 0 || !near(r, 1.4) {
		t.Errorf("Radius(0.5) = (%f, %f), want (0, 1.4)", d, r)
	}
	if _, r := Radius(1); !near(r, 2.65) {
		t.Errorf("Radius(1) = %f, want 2.65", r)
	}
	if _, r := Radius(0); !near(r, 0.15) {
		t.Errorf("Radius(0) = %f, want 0.15", r)
	}
}

func TestConstantFieldIsCylinder(t *testing.T) {
	field := heightfield.Constant(4, 4, 0.5)
	for i := 0; i <= 20; i++ {
		for j := 0; j <= 10; j++ {
			p := math.Vec3{X: -1 + float32(i)*0.1, Y: -1 + float32(j)*0.2}
			got := Evaluate(p, field)
			xz := math32.Hypot(got.Position.X, got.Position.Z)
			if !near(xz, BaseRadius) {
				t.Fatalf("vertex %v: xz radius %f, want %f", p, xz, BaseRadius)
			}
			if got.Position.Y != p.Y {
				t.Fatalf("vertex %v: y changed to %f", p, got.Position.Y)
			}
		}
	}
}

func TestUVRanges(t *testing.T) {
	tests := []struct {
		pos  math.Vec3
		want math.Vec2
	}{
		{math.Vec3{X: 0, Y: 0}, math.Vec2{X: 0.5, Y: 0.5}},
		{math.Vec3{X: -1, Y: 0}, math.Vec2{X: 0, Y: 0.5}},
		{math.Vec3{X: 0.5, Y: 1}, math.Vec2{X: 0.75, Y: 5.0 / 6.0}},
		{math.Vec3{X: -0.5, Y: -1}, math.Vec2{X: 0.25, Y: 1.0 / 6.0}},
	}
	for _, tt := range tests {
		got := UV(tt.pos)
		if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
			t.Errorf("UV(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestSeamCloses(t *testing.T) {
	field := heightfield.Constant(2, 2, 0.5)
	left := Evaluate(math.Vec3{X: -1, Y: 0.3}, field).Position
	right := Evaluate(math.Vec3{X: 1, Y: 0.3}, field).Position
	if left.Distance(right) > eps {
		t.Errorf("seam open: %v vs %v", left, right)
	}
}

func TestRotationIsCounterClockwise(t *testing.T) {
	field := heightfield.Constant(2, 2, 0.5)
	// u = 0.25 is a quarter turn: (0, r) rotates to (-r, 0).
	got := Evaluate(math.Vec3{X: -0.5, Y: 0}, field).Position
	if !near(got.X, -BaseRadius) || !near(got.Z, 0) {
		t.Errorf("quarter turn = %v, want (-%f, 0, 0)", got, BaseRadius)
	}
}

func TestSamplerSeesDisplacementUV(t *testing.T) {
	var gotU, gotV float32
	s := sampleFunc(func(u, v float32) float32 {
		gotU, gotV = u, v
		return 1
	})
	res := Evaluate(math.Vec3{X: 0.5, Y: 1}, s)
	if !near(gotU, 0.75) || !near(gotV, 5.0/6.0) {
		t.Errorf("sampled at (%f, %f)", gotU, gotV)
	}
	if !near(res.Radius, 2.65) || !near(res.Displacement, 1) {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestBounds(t *testing.T) {
	field := heightfield.Constant(2, 2, 0.5)
	var positions []math.Vec3
	for i := 0; i <= 8; i++ {
		positions = append(positions,
			math.Vec3{X: -1 + float32(i)*0.25, Y: -1},
			math.Vec3{X: -1 + float32(i)*0.25, Y: 1})
	}
	lo, hi := Bounds(positions, field)
	if !near(lo.X, -BaseRadius) || !near(hi.X, BaseRadius) || !near(lo.Y, -1) || !near(hi.Y, 1) {
		t.Errorf("bounds = %v..%v", lo, hi)
	}
}

func TestGLSLUsesSharedConstants(t *testing.T) {
	code := VertexTransform()
	for _, want := range []string{"1.4 + 1.25 * displacement", "vec2(1.0, 4.0)", "-1.5, 1.5", "vec4 mvPosition"} {
		if !strings.Contains(code, want) {
			t.Errorf("vertex transform missing %q:\n%s", want, code)
		}
	}
	if !strings.Contains(VertexDeclarations(), "uniform vec2 translate;") {
		t.Error("translate uniform not declared")
	}
}

func TestInjectionsTargetDistinctAnchors(t *testing.T) {
	inj := Injections()
	if len(inj) != 4 {
		t.Fatalf("len = %d, want 4", len(inj))
	}
	seen := map[string]bool{}
	for _, i := range inj {
		key := i.Stage.String() + "/" + i.Anchor
		if seen[key] {
			t.Errorf("duplicate anchor %s", key)
		}
		seen[key] = true
	}
	if inj[1].Mode != shader.Replace || inj[1].Anchor != AnchorVertexTransform {
		t.Errorf("projection must be replaced, got %+v", inj[1])
	}
}
