package workspace

import (
	"math"
	"testing"

	"github.com/protoboard/protoboard/pkg/catalog"
)

func TestStats(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		name      string
		modules   []string
		wantPower float64
		wantIO    float64
		wantMa    float64
	}{
		{"empty", nil, 0.5, 0, 0},
		{"one", []string{"mod-servo"}, 0.62, 12, 500},
		{"two", []string{"mod-servo", "mod-bme688"}, 0.74, 24, 503.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(cat)
			for _, id := range tt.modules {
				s.AddModule(mustModule(t, cat, id))
			}
			st := s.Stats()
			if math.Abs(st.PowerW-tt.wantPower) > 1e-9 {
				t.Errorf("PowerW = %v, want %v", st.PowerW, tt.wantPower)
			}
			if st.IOUtilizationPct != tt.wantIO {
				t.Errorf("IOUtilizationPct = %v, want %v", st.IOUtilizationPct, tt.wantIO)
			}
			if math.Abs(st.TotalCurrentMa-tt.wantMa) > 1e-9 {
				t.Errorf("TotalCurrentMa = %v, want %v", st.TotalCurrentMa, tt.wantMa)
			}
			if st.BoardMaxCurrentMa != 500 {
				t.Errorf("BoardMaxCurrentMa = %d, want 500", st.BoardMaxCurrentMa)
			}
		})
	}
}

func TestStatsIOCapped(t *testing.T) {
	cat := catalog.Default()
	s := New(cat)
	m := mustModule(t, cat, "mod-bme688")
	for range 9 {
		s.AddModule(m)
	}
	if got := s.Stats().IOUtilizationPct; got != 98 {
		t.Errorf("IOUtilizationPct = %v, want 98", got)
	}
}

func TestOverBudget(t *testing.T) {
	cat := catalog.Default()
	s := New(cat)
	s.AddModule(mustModule(t, cat, "mod-servo"))
	if s.Stats().OverBudget() {
		t.Error("500 mA on a 500 mA board should not be over budget")
	}
	s.AddModule(mustModule(t, cat, "mod-bme688"))
	if !s.Stats().OverBudget() {
		t.Error("503.9 mA on a 500 mA board should be over budget")
	}
	if (Stats{TotalCurrentMa: 10}).OverBudget() {
		t.Error("unrated board reported over budget")
	}
}
