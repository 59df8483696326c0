package snapshot

import "time"

// QueryKind labels the query reported to an Observer.
type QueryKind string

const (
	QueryEdges    QueryKind = "edges"
	QueryActivity QueryKind = "activity"
	QueryFindEdge QueryKind = "find_edge"
)

// Observer receives timing and volume information from a Snapshot.
//
// Methods are called after the snapshot lock has been released and may be
// called from several goroutines at once.
type Observer interface {
	// ObserveAppend reports an append of samples units.
	ObserveAppend(samples int, elapsed time.Duration)
	// ObserveQuery reports a completed query and the number of results it produced.
	ObserveQuery(kind QueryKind, results int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveAppend(int, time.Duration) {}
func (nopObserver) ObserveQuery(QueryKind, int, time.Duration) {}
