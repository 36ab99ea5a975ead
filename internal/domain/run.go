package domain

import "time"

// RunStats holds statistics from one generate run
type RunStats struct {
	ID           string
	Root         string
	StartedAt    time.Time
	Duration     time.Duration
	DirsWritten  int
	DirsSkipped  int
	FilesIndexed int
	FilesCached  int
}

// Add folds the counters of other into s.
func (s RunStats) Add(other RunStats) RunStats {
	s.DirsWritten += other.DirsWritten
	s.DirsSkipped += other.DirsSkipped
	s.FilesIndexed += other.FilesIndexed
	s.FilesCached += other.FilesCached
	return s
}

// MatchSource says which sidecar produced a search match
type MatchSource string

const (
	MatchText MatchSource = "text"
	MatchTags MatchSource = "tags"
)

// Match is one search hit
type Match struct {
	Path   string      `json:"path"`
	Rank   int         `json:"rank"`
	Source MatchSource `json:"source"`
}
