package tempo

// Snapshot is the serializable measurement state of a stopwatch. It
// carries only accumulated numbers; presentation settings never appear
// here.
type Snapshot struct {
	WallSeconds float64 `json:"wall_seconds" yaml:"wall_seconds"`
	CPUSeconds  float64 `json:"cpu_seconds" yaml:"cpu_seconds"`
	Calls       uint64  `json:"calls" yaml:"calls"`
	Running     bool    `json:"running" yaml:"running"`
}

// Snapshot captures the current accumulated totals. A running stopwatch
// snapshots its live totals.
func (s *Stopwatch) Snapshot() Snapshot {
	return Snapshot{
		WallSeconds: s.Elapsed().Seconds(),
		CPUSeconds:  s.CPUElapsed().Seconds(),
		Calls:       s.calls,
		Running:     s.running,
	}
}

// Aggregate summarizes snapshots of the same timer name gathered from
// several workers.
type Aggregate struct {
	Count     int     `json:"count" yaml:"count"`
	Calls     uint64  `json:"calls" yaml:"calls"`
	WallTotal float64 `json:"wall_total" yaml:"wall_total"`
	WallMin   float64 `json:"wall_min" yaml:"wall_min"`
	WallMax   float64 `json:"wall_max" yaml:"wall_max"`
	WallMean  float64 `json:"wall_mean" yaml:"wall_mean"`
	CPUTotal  float64 `json:"cpu_total" yaml:"cpu_total"`
	CPUMean   float64 `json:"cpu_mean" yaml:"cpu_mean"`
}

// Gather merges per-name snapshot maps collected from multiple workers
// (for example one Registry.Collect per worker) into per-name statistics.
func Gather(collections ...map[string]Snapshot) map[string]Aggregate {
	out := make(map[string]Aggregate)
	for _, coll := range collections {
		for name, snap := range coll {
			agg, ok := out[name]
			if !ok {
				agg = Aggregate{WallMin: snap.WallSeconds, WallMax: snap.WallSeconds}
			}
			agg.Count++
			agg.Calls += snap.Calls
			agg.WallTotal += snap.WallSeconds
			agg.CPUTotal += snap.CPUSeconds
			if snap.WallSeconds < agg.WallMin {
				agg.WallMin = snap.WallSeconds
			}
			if snap.WallSeconds > agg.WallMax {
				agg.WallMax = snap.WallSeconds
			}
			out[name] = agg
		}
	}
	for name, agg := range out {
		agg.WallMean = agg.WallTotal / float64(agg.Count)
		agg.CPUMean = agg.CPUTotal / float64(agg.Count)
		out[name] = agg
	}
	return out
}
