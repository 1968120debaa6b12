package workspace

// Console estimate coefficients.
const (
	basePowerW       = 0.5
	powerPerModuleW  = 0.12
	ioPerModulePct   = 12
	maxIOUtilization = 98
)

// Stats are the rough figures shown in the workspace console.
type Stats struct {
	BoardID           string  `json:"boardId"`
	ModuleCount       int     `json:"moduleCount"`
	PowerW            float64 `json:"powerW"`
	IOUtilizationPct  float64 `json:"ioUtilizationPct"`
	TotalCurrentMa    float64 `json:"totalCurrentMa"`
	BoardMaxCurrentMa int     `json:"boardMaxCurrentMa"`
}

// OverBudget reports whether the modules' typical current exceeds what the
// board can supply. Boards without a rating are never over budget.
func (s Stats) OverBudget() bool {
	return s.BoardMaxCurrentMa > 0 && s.TotalCurrentMa > float64(s.BoardMaxCurrentMa)
}

// Stats computes console figures from the current state.
func (s *Store) Stats() Stats {
	snap := s.Snapshot()
	return ComputeStats(snap, s.cat.BoardOrDefault(snap.BoardID).Power.MaxCurrentMa)
}

// ComputeStats derives console figures from a snapshot.
func ComputeStats(snap Snapshot, boardMaxCurrentMa int) Stats {
	n := len(snap.Modules)
	var current float64
	for _, m := range snap.Modules {
		current += m.Electrical.TypicalCurrentMa
	}
	return Stats{
		BoardID:           snap.BoardID,
		ModuleCount:       n,
		PowerW:            float64(n)*powerPerModuleW + basePowerW,
		IOUtilizationPct:  min(maxIOUtilization, float64(n*ioPerModulePct)),
		TotalCurrentMa:    current,
		BoardMaxCurrentMa: boardMaxCurrentMa,
	}
}
