package geometry

import (
	"math"
	"testing"
)

// floatEquals is a helper for testing scalar float values with epsilon.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

func TestNewVector(t *testing.T) {
	v := NewVector(1, 2)
	if v.X != 1 || v.Y != 2 {
		t.Errorf("NewVector(1, 2) = %v; want (1, 2)", v)
	}
}

func TestVector_String(t *testing.T) {
	v := Vector2D{1.234, 5.678}
	want := "(1.23, 5.68)"
	if got := v.String(); got != want {
		t.Errorf("Vector2D.String() = %q; want %q", got, want)
	}
}

func TestVector_Arithmetic(t *testing.T) {
	v1 := Vector2D{1, 2}
	v2 := Vector2D{3, 4}

	t.Run("Add", func(t *testing.T) {
		want := Vector2D{4, 6}
		if got := v1.Add(v2); !got.Eq(want) {
			t.Errorf("%v.Add(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Sub", func(t *testing.T) {
		want := Vector2D{-2, -2}
		if got := v1.Sub(v2); !got.Eq(want) {
			t.Errorf("%v.Sub(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Mul", func(t *testing.T) {
		want := Vector2D{2, 4}
		if got := v1.Mul(2); !got.Eq(want) {
			t.Errorf("%v.Mul(2) = %v; want %v", v1, got, want)
		}
	})

	t.Run("AddScalar", func(t *testing.T) {
		want := Vector2D{-1.5, -0.5}
		if got := v1.AddScalar(-2.5); !got.Eq(want) {
			t.Errorf("%v.AddScalar(-2.5) = %v; want %v", v1, got, want)
		}
	})
}

func TestVector_Magnitude(t *testing.T) {
	v := Vector2D{3, 4}
	if got := v.LenSqr(); !floatEquals(got, 25) {
		t.Errorf("LenSqr() = %v; want 25", got)
	}
	if got := v.Len(); !floatEquals(got, 5) {
		t.Errorf("Len() = %v; want 5", got)
	}
	if got := v.DistanceSquaredTo(Vector2D{0, 0}); !floatEquals(got, 25) {
		t.Errorf("DistanceSquaredTo(origin) = %v; want 25", got)
	}
}

func TestVector_ClampAxes(t *testing.T) {
	tests := []struct {
		name  string
		in    Vector2D
		limit float64
		want  Vector2D
	}{
		{"Inside", Vector2D{3, -4}, 20, Vector2D{3, -4}},
		{"X over", Vector2D{25, 1}, 20, Vector2D{20, 1}},
		{"Both under", Vector2D{-30, -21}, 20, Vector2D{-20, -20}},
		{"On the limit", Vector2D{20, -20}, 20, Vector2D{20, -20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.ClampAxes(tt.limit); !got.Eq(tt.want) {
				t.Errorf("%v.ClampAxes(%v) = %v; want %v", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}

func TestMean(t *testing.T) {
	if got := Mean(nil); !got.Eq(Vector2D{}) {
		t.Errorf("Mean(nil) = %v; want zero vector", got)
	}
	got := Mean([]Vector2D{{0, 0}, {100, 0}, {0, 100}, {100, 100}})
	if want := (Vector2D{50, 50}); !got.Eq(want) {
		t.Errorf("Mean(square corners) = %v; want %v", got, want)
	}
}
