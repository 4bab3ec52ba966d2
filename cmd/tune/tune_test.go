package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/glowfield/particles"
)

func TestParamVectorRoundtrip(t *testing.T) {
	base := particles.DefaultProfiles().MustGet(particles.Medium)
	pv := NewParamVector(particles.Medium, base)

	def := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-9 {
			t.Errorf("param %s: %v -> %v", pv.Specs[i].Name, def[i], back[i])
		}
	}

	p := pv.Profile(base, def)
	if p != base {
		t.Errorf("default vector profile = %+v, want %+v", p, base)
	}
}

func TestProfileClamps(t *testing.T) {
	base := particles.DefaultProfiles().MustGet(particles.Low)
	pv := NewParamVector(particles.Low, base)

	p := pv.Profile(base, []float64{1000, -3, 2})
	if p.Count != 200 || p.MaxSize != 1 || p.SparkleFrequency != 1 {
		t.Errorf("clamped profile = %+v", p)
	}
	if p.AnimationDurationMs != base.AnimationDurationMs {
		t.Errorf("duration changed: %d", p.AnimationDurationMs)
	}
}

func TestEvaluatePrefersTarget(t *testing.T) {
	base := particles.DefaultProfiles().MustGet(particles.Medium)
	pv := NewParamVector(particles.Medium, base)
	seeds := []int64{42, 1042, 2042}

	// Measure what the default profile produces and use that as the target.
	probe := NewFitnessEvaluator(pv, base, seeds[:1], 10, Targets{Coverage: 1, SparkleFraction: 1, SizeMean: 1})
	probe.Evaluate(pv.DefaultVector())
	st := probe.LastStats()

	fe := NewFitnessEvaluator(pv, base, seeds, 10, Targets{
		Coverage:        st.Coverage,
		SparkleFraction: st.SparkleFraction,
		SizeMean:        st.SizeMean,
	})
	atDefault := fe.Evaluate(pv.DefaultVector())
	far := fe.Evaluate([]float64{5, 10, 0.95})
	if atDefault >= far {
		t.Errorf("fitness at the measured profile (%v) should beat a distant one (%v)", atDefault, far)
	}
}

func TestRelErr(t *testing.T) {
	if got := relErr(3, 2); got != 0.5 {
		t.Errorf("relErr(3, 2) = %v", got)
	}
	if got := relErr(0.25, 0); got != 0.25 {
		t.Errorf("relErr(0.25, 0) = %v", got)
	}
}

func TestWriteLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tune_log.csv")
	rows := []EvalRow{{Eval: 1, Fitness: 0.5, Count: 50}, {Eval: 2, Fitness: 0.25, Count: 60}}
	if err := writeLog(path, rows); err != nil {
		t.Fatalf("writeLog: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var got []EvalRow
	if err := gocsv.UnmarshalFile(f, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1].Count != 60 || got[1].Fitness != 0.25 {
		t.Errorf("read back %+v", got)
	}
}
