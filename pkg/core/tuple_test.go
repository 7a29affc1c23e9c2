package core

import (
	"math"
	"testing"
)

func TestTuple_PointAndVector(t *testing.T) {
	p := NewPoint(4, -4, 3)
	if !p.IsPoint() || p.IsVector() {
		t.Errorf("Expected point, got w=%f", p.W)
	}

	v := NewVector(4, -4, 3)
	if !v.IsVector() || v.IsPoint() {
		t.Errorf("Expected vector, got w=%f", v.W)
	}
}

func TestTuple_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		got      Tuple
		expected Tuple
	}{
		{
			name:     "adding a vector to a point",
			got:      NewPoint(3, -2, 5).Add(NewVector(-2, 3, 1)),
			expected: NewPoint(1, 1, 6),
		},
		{
			name:     "subtracting two points yields a vector",
			got:      NewPoint(3, 2, 1).Subtract(NewPoint(5, 6, 7)),
			expected: NewVector(-2, -4, -6),
		},
		{
			name:     "subtracting a vector from a point",
			got:      NewPoint(3, 2, 1).Subtract(NewVector(5, 6, 7)),
			expected: NewPoint(-2, -4, -6),
		},
		{
			name:     "negating a vector",
			got:      NewVector(1, -2, 3).Negate(),
			expected: NewVector(-1, 2, -3),
		},
		{
			name:     "scaling a vector",
			got:      NewVector(1, -2, 3).Multiply(3.5),
			expected: NewVector(3.5, -7, 10.5),
		},
		{
			name:     "dividing a vector",
			got:      NewVector(1, -2, 3).Divide(2),
			expected: NewVector(0.5, -1, 1.5),
		},
		{
			name:     "cross product",
			got:      NewVector(1, 2, 3).Cross(NewVector(2, 3, 4)),
			expected: NewVector(-1, 2, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestTuple_LengthAndNormalize(t *testing.T) {
	v := NewVector(1, 2, 3)
	if math.Abs(v.Length()-math.Sqrt(14)) > Epsilon {
		t.Errorf("Expected length sqrt(14), got %f", v.Length())
	}

	n := v.Normalize()
	if math.Abs(n.Length()-1) > Epsilon {
		t.Errorf("Expected unit length, got %f", n.Length())
	}
}

func TestTuple_Dot(t *testing.T) {
	got := NewVector(1, 2, 3).Dot(NewVector(2, 3, 4))
	if got != 20 {
		t.Errorf("Expected dot product 20, got %f", got)
	}
}

func TestTuple_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		v        Tuple
		normal   Tuple
		expected Tuple
	}{
		{
			name:     "reflecting at 45 degrees",
			v:        NewVector(1, -1, 0),
			normal:   NewVector(0, 1, 0),
			expected: NewVector(1, 1, 0),
		},
		{
			name:     "reflecting off a slanted surface",
			v:        NewVector(0, -1, 0),
			normal:   NewVector(math.Sqrt2/2, math.Sqrt2/2, 0),
			expected: NewVector(1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Reflect(tt.normal)
			if !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
