package particles

import (
	"math"
	"testing"
)

func TestPoseAt(t *testing.T) {
	profile := DensityProfile{Count: 1, MaxSize: 3, AnimationDurationMs: 1000, SparkleFrequency: 0}
	plain := Particle{AnimationDelayMs: 200}
	sparkle := Particle{AnimationDelayMs: 0, IsSparkle: true}

	tests := []struct {
		name    string
		p       Particle
		speed   AnimationSpeed
		now     float64
		reduced bool
		want    Pose
	}{
		{"before delay", plain, NormalPace, 100, false, floatRest},
		{"cycle start", plain, NormalPace, 200, false, floatRest},
		{"midpoint", plain, NormalPace, 700, false, floatPeak},
		{"full cycle", plain, NormalPace, 1200, false, floatRest},
		{"reduced motion at midpoint", plain, NormalPace, 700, true, floatRest},
		{"sparkle midpoint", sparkle, NormalPace, 500, false, sparkPeak},
		{"slow midpoint", sparkle, Slow, 750, false, sparkPeak},
		{"fast midpoint", sparkle, Fast, 250, false, sparkPeak},
		{"sparkle reduced", sparkle, Fast, 250, true, sparkRest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PoseAt(tt.p, profile, tt.speed, tt.now, tt.reduced)
			if !poseNear(got, tt.want) {
				t.Errorf("PoseAt = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRestPose(t *testing.T) {
	if got := RestPose(Particle{IsSparkle: true}); got != sparkRest {
		t.Errorf("sparkle rest = %+v", got)
	}
	if got := RestPose(Particle{}); got != floatRest {
		t.Errorf("float rest = %+v", got)
	}
}

func TestParseSpeed(t *testing.T) {
	for _, s := range []string{"slow", "medium", "fast"} {
		if _, err := ParseSpeed(s); err != nil {
			t.Errorf("ParseSpeed(%q): %v", s, err)
		}
	}
	if _, err := ParseSpeed("warp"); err == nil {
		t.Error("ParseSpeed(warp) should fail")
	}
}

func poseNear(a, b Pose) bool {
	const eps = 1e-9
	return math.Abs(a.Opacity-b.Opacity) < eps &&
		math.Abs(a.Scale-b.Scale) < eps &&
		math.Abs(a.OffsetY-b.OffsetY) < eps
}
