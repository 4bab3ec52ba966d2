package viewport

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/pthm-cable/glowfield/particles"
)

func newTestShell() *Shell {
	return NewShell(Options{
		Profiles:             particles.DefaultProfiles(),
		Breakpoint:           DefaultBreakpoint,
		Sources:              SeededSources(1),
		RespectReducedMotion: true,
	})
}

func TestBreakpoint(t *testing.T) {
	b := Breakpoint(DefaultBreakpoint)
	tests := []struct {
		width int
		want  bool
	}{
		{320, true},
		{768, true},
		{769, false},
		{1920, false},
	}
	for _, tt := range tests {
		if got := b.IsMobile(tt.width); got != tt.want {
			t.Errorf("IsMobile(%d) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestShellRegeneratesOnClassChange(t *testing.T) {
	s := newTestShell()

	steps := []struct {
		name            string
		state           State
		wantGenerations int
		wantLen         int
	}{
		{"first apply", State{Width: 1280, Density: particles.Medium}, 1, 50},
		{"desktop resize", State{Width: 1024, Density: particles.Medium}, 1, 50},
		{"cross breakpoint", State{Width: 600, Density: particles.Medium}, 2, 30},
		{"mobile resize", State{Width: 400, Density: particles.Medium}, 2, 30},
		{"density change", State{Width: 400, Density: particles.High}, 3, 48},
		{"reduced motion only", State{Width: 400, Density: particles.High, ReducedMotion: true}, 3, 48},
		{"back to desktop", State{Width: 1440, Density: particles.High, ReducedMotion: true}, 4, 80},
	}

	for _, step := range steps {
		field, err := s.Apply(step.state)
		if err != nil {
			t.Fatalf("%s: Apply: %v", step.name, err)
		}
		if got := s.Generations(); got != step.wantGenerations {
			t.Errorf("%s: generations = %d, want %d", step.name, got, step.wantGenerations)
		}
		if field.Len() != step.wantLen {
			t.Errorf("%s: Len() = %d, want %d", step.name, field.Len(), step.wantLen)
		}
		if field.ReducedMotion != step.state.ReducedMotion {
			t.Errorf("%s: ReducedMotion = %v", step.name, field.ReducedMotion)
		}
	}
}

func TestShellRetagKeepsParticles(t *testing.T) {
	s := newTestShell()

	before, err := s.Apply(State{Width: 1280, Density: particles.Low})
	if err != nil {
		t.Fatal(err)
	}
	after, err := s.Apply(State{Width: 1280, Density: particles.Low, ReducedMotion: true})
	if err != nil {
		t.Fatal(err)
	}

	if !after.ReducedMotion {
		t.Error("field should be tagged reduced motion")
	}
	if diff := cmp.Diff(before.Particles(), after.Particles()); diff != "" {
		t.Errorf("retag changed particles:\n%s", diff)
	}
}

func TestShellIgnoresReducedMotionWhenNotRespected(t *testing.T) {
	s := NewShell(Options{Profiles: particles.DefaultProfiles(), RespectReducedMotion: false})

	field, err := s.Apply(State{Width: 1280, Density: particles.Low, ReducedMotion: true})
	if err != nil {
		t.Fatal(err)
	}
	if field.ReducedMotion {
		t.Error("reduced motion should be ignored")
	}
}

func TestShellRejectsUnknownDensity(t *testing.T) {
	s := newTestShell()
	if _, err := s.Apply(State{Width: 1280, Density: particles.Low}); err != nil {
		t.Fatal(err)
	}

	_, err := s.Apply(State{Width: 1280, Density: particles.Tier("ultra")})
	var cfgErr *particles.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want *particles.ConfigError", err)
	}

	// The previous field survives a rejected state.
	field, ok := s.Field()
	if !ok || field.Density != particles.Low {
		t.Errorf("field after rejection = %v (ok=%v)", field.Density, ok)
	}
}

func TestShellNotifiesListeners(t *testing.T) {
	s := newTestShell()
	var got []int
	s.OnChange(func(f particles.ParticleField) { got = append(got, f.Len()) })

	states := []State{
		{Width: 1280, Density: particles.Medium},
		{Width: 1200, Density: particles.Medium},
		{Width: 500, Density: particles.Medium},
		{Width: 500, Density: particles.Medium, ReducedMotion: true},
	}
	for _, st := range states {
		if _, err := s.Apply(st); err != nil {
			t.Fatal(err)
		}
	}

	if diff := cmp.Diff([]int{50, 30, 30}, got); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
}

func TestSeededSourcesRepeat(t *testing.T) {
	s := newTestShell()
	first, _ := s.Apply(State{Width: 1280, Density: particles.Medium})
	s.Apply(State{Width: 500, Density: particles.Medium})
	again, _ := s.Apply(State{Width: 1280, Density: particles.Medium})

	if diff := cmp.Diff(first.Particles(), again.Particles()); diff != "" {
		t.Errorf("regenerated desktop field differs:\n%s", diff)
	}
}

func TestCoalescerFlushAppliesLastState(t *testing.T) {
	s := newTestShell()
	c := NewCoalescer(s, time.Hour)
	defer c.Stop()

	for w := 1280; w >= 400; w -= 40 {
		c.Submit(State{Width: w, Density: particles.Medium})
	}
	if s.Generations() != 0 {
		t.Fatalf("generations before flush = %d, want 0", s.Generations())
	}
	if !c.Pending() {
		t.Fatal("expected a pending state")
	}

	c.Flush()
	if s.Generations() != 1 {
		t.Errorf("generations = %d, want 1", s.Generations())
	}
	field, _ := s.Field()
	if !field.MobileOptimized {
		t.Error("last submitted state was mobile")
	}
	if c.Pending() {
		t.Error("flush should clear the pending state")
	}
}

func TestCoalescerWindowElapses(t *testing.T) {
	s := newTestShell()
	done := make(chan particles.ParticleField, 1)
	s.OnChange(func(f particles.ParticleField) { done <- f })

	c := NewCoalescer(s, 10*time.Millisecond)
	defer c.Stop()
	c.Submit(State{Width: 1280, Density: particles.High})

	select {
	case f := <-done:
		if f.Len() != 80 {
			t.Errorf("Len() = %d, want 80", f.Len())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("coalesced state never applied")
	}
}

func TestCoalescerZeroWindowAndStop(t *testing.T) {
	s := newTestShell()
	c := NewCoalescer(s, 0)

	c.Submit(State{Width: 1280, Density: particles.Low})
	if s.Generations() != 1 {
		t.Errorf("generations = %d, want 1", s.Generations())
	}

	c.Stop()
	c.Submit(State{Width: 300, Density: particles.Low})
	if s.Generations() != 1 {
		t.Errorf("submit after Stop applied a state")
	}
}
