package service

import (
	"testing"

	"github.com/hwojcik/exagen/internal/model"
)

func TestNextDifficulty(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		isCorrect bool
		want      float64
		wantTrend string
	}{
		{"correct from default", 5.0, true, 4.5, model.TrendDecreasing},
		{"incorrect from default", 5.0, false, 6.0, model.TrendIncreasing},
		{"correct lands exactly on midpoint", 5.5, true, 5.0, model.TrendStable},
		{"incorrect lands exactly on midpoint", 4.0, false, 5.0, model.TrendStable},
		{"correct below midpoint", 3.0, true, 2.5, model.TrendDecreasing},
		{"incorrect above midpoint", 8.0, false, 9.0, model.TrendIncreasing},
		{"correct clamped at floor", 1.0, true, 1.0, model.TrendDecreasing},
		{"correct near floor", 1.2, true, 1.0, model.TrendDecreasing},
		{"incorrect clamped at ceiling", 10.0, false, 10.0, model.TrendIncreasing},
		{"incorrect near ceiling", 9.5, false, 10.0, model.TrendIncreasing},
		{"correct above midpoint stays stable", 6.0, true, 5.5, model.TrendStable},
		{"incorrect below midpoint stays stable", 3.0, false, 4.0, model.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, trend := NextDifficulty(tt.current, tt.isCorrect)
			if got != tt.want {
				t.Errorf("NextDifficulty(%v, %v) difficulty = %v, want %v", tt.current, tt.isCorrect, got, tt.want)
			}
			if trend != tt.wantTrend {
				t.Errorf("NextDifficulty(%v, %v) trend = %q, want %q", tt.current, tt.isCorrect, trend, tt.wantTrend)
			}
		})
	}
}

func TestNextDifficultyStaysClamped(t *testing.T) {
	d := model.BaseDifficulty
	for i := 0; i < 50; i++ {
		d, _ = NextDifficulty(d, false)
		if d > model.MaxDifficulty {
			t.Fatalf("difficulty exceeded ceiling after %d incorrect outcomes: %v", i+1, d)
		}
	}
	if d != model.MaxDifficulty {
		t.Errorf("repeated incorrect outcomes should saturate at %v, got %v", model.MaxDifficulty, d)
	}

	for i := 0; i < 50; i++ {
		d, _ = NextDifficulty(d, true)
		if d < model.MinDifficulty {
			t.Fatalf("difficulty dropped below floor after %d correct outcomes: %v", i+1, d)
		}
	}
	if d != model.MinDifficulty {
		t.Errorf("repeated correct outcomes should saturate at %v, got %v", model.MinDifficulty, d)
	}
}
