package spiral

import (
	"math"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
)

var center = geom.Pt(250, 250)

func TestNewValid(t *testing.T) {
	s, err := New(center, 0.1, 0.2)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if s.Center() != center {
		t.Errorf("Center() = %v, want %v", s.Center(), center)
	}
}

func TestNewInvalidSteps(t *testing.T) {
	tests := []struct {
		name                  string
		angleStep, radiusStep float64
	}{
		{"zero steps", 0, 0},
		{"negative angle step", -0.1, 0.2},
		{"negative radius step", 0.1, -0.2},
		{"zero angle step", 0, 0.2},
		{"zero radius step", 0.1, 0},
		{"nan angle step", math.NaN(), 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(center, tt.angleStep, tt.radiusStep)
			if err == nil {
				t.Fatal("New() should fail")
			}
			if !errors.Is(err, errors.ErrCodeInvalidArgument) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidArgument)
			}
			if s != nil {
				t.Error("New() should return nil spiral on error")
			}
		})
	}
}

func TestFirstPointIsCenter(t *testing.T) {
	s, _ := New(center, DefaultAngleStep, DefaultRadiusStep)
	if got := s.Next(); got != center {
		t.Errorf("first point = %v, want %v", got, center)
	}
}

func TestNextFollowsArchimedeanSpiral(t *testing.T) {
	const angleStep, radiusStep = 0.3, 2.0
	s, _ := New(geom.Pt(0, 0), angleStep, radiusStep)

	for i := 0; i < 200; i++ {
		got := s.Next()
		r := float64(i) * radiusStep
		a := float64(i) * angleStep
		want := geom.Pt(int(math.Round(r*math.Cos(a))), int(math.Round(r*math.Sin(a))))
		if got != want {
			t.Fatalf("step %d: got %v, want %v", i, got, want)
		}
	}
	if s.Step() != 200 {
		t.Errorf("Step() = %d, want 200", s.Step())
	}
}

func TestStateAdvancesMonotonically(t *testing.T) {
	s, _ := New(center, 0.1, 0.2)

	prevAngle, prevRadius := s.Angle(), s.Radius()
	for i := 0; i < 100; i++ {
		s.Next()
		if s.Angle() <= prevAngle || s.Radius() <= prevRadius {
			t.Fatalf("step %d: state did not advance (angle %v -> %v, radius %v -> %v)",
				i, prevAngle, s.Angle(), prevRadius, s.Radius())
		}
		prevAngle, prevRadius = s.Angle(), s.Radius()
	}
}

func TestDistanceGrows(t *testing.T) {
	s, _ := New(center, DefaultAngleStep, 1.0)

	for i := 0; i < 500; i++ {
		p := s.Next()
		// Rounding moves each coordinate by at most 0.5.
		if d := p.Dist(center); math.Abs(d-float64(i)) > 1 {
			t.Fatalf("step %d: distance %v, want about %d", i, d, i)
		}
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	a, _ := New(center, 0.07, 0.3)
	b, _ := New(center, 0.07, 0.3)

	for i := 0; i < 1000; i++ {
		if pa, pb := a.Next(), b.Next(); pa != pb {
			t.Fatalf("step %d: %v != %v", i, pa, pb)
		}
	}
}
