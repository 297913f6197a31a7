package platformer

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestMultiplyAffineIdentity(t *testing.T) {
	id := identityTransform
	m := [6]float64{2, 1, 3, 4, 5, 6}
	assertMatrix(t, "id*m", multiplyAffine(id, m), m)
	assertMatrix(t, "m*id", multiplyAffine(m, id), m)
}

func TestMultiplyAffineTranslations(t *testing.T) {
	got := multiplyAffine(translateAffine(10, 20), translateAffine(5, 3))
	assertMatrix(t, "translations", got, [6]float64{1, 0, 0, 1, 15, 23})
}

func TestRotateAffine90(t *testing.T) {
	// Clockwise on a y-down screen: +X maps to +Y.
	p := transformPoint(rotateAffine(math.Pi/2), Vec2{1, 0})
	assertNear(t, "x", p.X, 0)
	assertNear(t, "y", p.Y, 1)
}

func TestRotateAffineMatchesVecRotate(t *testing.T) {
	v := Vec2{3, -2}
	got := transformPoint(rotateAffine(35*math.Pi/180), v)
	want := v.Rotate(35)
	assertNear(t, "x", got.X, want.X)
	assertNear(t, "y", got.Y, want.Y)
}

func TestInvertAffine(t *testing.T) {
	m := [6]float64{2, 0, 0, 3, 10, 20}
	inv := invertAffine(m)
	assertMatrix(t, "m*inv=id", multiplyAffine(m, inv), identityTransform)
}

func TestInvertAffineComplex(t *testing.T) {
	m := multiplyAffine(translateAffine(40, -7), multiplyAffine(scaleAffine(2), rotateAffine(math.Pi/3)))
	inv := invertAffine(m)
	assertMatrix(t, "m*inv=id", multiplyAffine(m, inv), identityTransform)
}

func TestInvertAffineSingularReturnsIdentity(t *testing.T) {
	m := [6]float64{0, 0, 0, 1, 10, 20}
	assertMatrix(t, "singular→identity", invertAffine(m), identityTransform)
}

func TestInvertAffineBothZeroScales(t *testing.T) {
	m := [6]float64{0, 0, 0, 0, 50, 100}
	assertMatrix(t, "zero-scale→identity", invertAffine(m), identityTransform)
}

func TestTransformRectRotated(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 4}
	got := transformRect(rotateAffine(math.Pi/2), r)
	assertNear(t, "x", got.X, -4)
	assertNear(t, "y", got.Y, 0)
	assertNear(t, "w", got.Width, 4)
	assertNear(t, "h", got.Height, 10)
}

func BenchmarkMultiplyAffine(b *testing.B) {
	a := [6]float64{2, 0.1, 0.3, 3, 100, 200}
	c := [6]float64{1.5, 0.2, 0.1, 2.5, 50, 30}
	b.ReportAllocs()
	for b.Loop() {
		_ = multiplyAffine(a, c)
	}
}
