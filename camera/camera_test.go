package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/silk/config"
)

func testCameraConfig() config.CameraConfig {
	return config.CameraConfig{
		FovY:           45,
		Near:           0.1,
		Far:            1000,
		Distance:       28,
		MobileDistance: 34,
		ParallaxX:      3.8,
		ParallaxY:      -2.5,
		OffsetY:        0.4,
	}
}

func TestNew(t *testing.T) {
	cam := New(testCameraConfig(), 1280, 720)

	if cam.Position != (r3.Vec{Z: 28}) {
		t.Errorf("expected camera at (0, 0, 28), got %v", cam.Position)
	}
	if math.Abs(cam.FovYDegrees()-45) > 1e-9 {
		t.Errorf("expected fov 45, got %f", cam.FovYDegrees())
	}
	if math.Abs(cam.Aspect-1280.0/720.0) > 1e-9 {
		t.Errorf("expected aspect %f, got %f", 1280.0/720.0, cam.Aspect)
	}
}

func TestResize(t *testing.T) {
	cam := New(testCameraConfig(), 1280, 720)

	cam.Resize(500, 1000)
	if cam.Aspect != 0.5 {
		t.Errorf("expected aspect 0.5, got %f", cam.Aspect)
	}

	// Zero height keeps the last aspect
	cam.Resize(500, 0)
	if cam.Aspect != 0.5 {
		t.Errorf("zero height changed aspect to %f", cam.Aspect)
	}
}

func TestParallax(t *testing.T) {
	cam := New(testCameraConfig(), 1280, 720)

	cam.Parallax(0.5, -0.4, 1280, 768)
	want := r3.Vec{X: 1.9, Y: 1.4, Z: 28}
	if r3.Norm(r3.Sub(cam.Position, want)) > 1e-9 {
		t.Errorf("desktop parallax: got %v, want %v", cam.Position, want)
	}
	if cam.Target != (r3.Vec{}) {
		t.Errorf("expected camera aimed at origin, got %v", cam.Target)
	}

	cam.Parallax(0, 0, 500, 768)
	if cam.Position.Z != 34 {
		t.Errorf("mobile parallax: expected z 34, got %f", cam.Position.Z)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(testCameraConfig(), 1280, 720)

	// Target should map to screen center
	sx, sy, ok := cam.WorldToScreen(r3.Vec{})
	if !ok {
		t.Fatal("origin should be in front of camera")
	}
	if math.Abs(sx-640) > 0.01 || math.Abs(sy-360) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestWorldToScreenOrientation(t *testing.T) {
	cam := New(testCameraConfig(), 1280, 720)

	sx, sy, _ := cam.WorldToScreen(r3.Vec{X: 1, Y: 1})
	if sx <= 640 {
		t.Errorf("+X should project right of center, got %f", sx)
	}
	if sy >= 360 {
		t.Errorf("+Y should project above center, got %f", sy)
	}

	if _, _, ok := cam.WorldToScreen(r3.Vec{Z: 40}); ok {
		t.Error("point behind camera should not project")
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(testCameraConfig(), 1280, 720)

	if !cam.IsVisible(r3.Vec{}) {
		t.Error("origin should be visible")
	}
	if cam.IsVisible(r3.Vec{X: 500}) {
		t.Error("far off-axis point should not be visible")
	}
	if cam.IsVisible(r3.Vec{Z: -2000}) {
		t.Error("point past far plane should not be visible")
	}
}

func TestBasisOrthonormal(t *testing.T) {
	cam := New(testCameraConfig(), 1280, 720)
	cam.Parallax(0.7, 0.3, 1280, 768)

	f, r, u := cam.Basis()
	for _, v := range []r3.Vec{f, r, u} {
		if math.Abs(r3.Norm(v)-1) > 1e-9 {
			t.Errorf("basis vector %v not unit length", v)
		}
	}
	if math.Abs(r3.Dot(f, r)) > 1e-9 || math.Abs(r3.Dot(f, u)) > 1e-9 || math.Abs(r3.Dot(r, u)) > 1e-9 {
		t.Error("basis vectors not orthogonal")
	}
}
