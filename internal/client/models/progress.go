package models

// Progress reports how far the network client is through indexing or
// replication.
type Progress struct {
	Start   int64 `json:"start"`
	Current int64 `json:"current"`
	Target  int64 `json:"target"`
}

// Ratio is the completed fraction in [0, 1]. An empty range counts as done.
func (p Progress) Ratio() float64 {
	total := p.Target - p.Start
	if total <= 0 {
		return 1
	}
	done := p.Current - p.Start
	switch {
	case done <= 0:
		return 0
	case done >= total:
		return 1
	}
	return float64(done) / float64(total)
}
