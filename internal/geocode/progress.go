package geocode

// Progress receives one notification per processed address. The
// enricher takes it as an explicit collaborator so nothing in this
// package mutates shared counters.
type Progress interface {
	Resolved(done, total int, lat, lon float64)
	NotFound(done, total int)
	Failed(done, total int, address string, err error)
}

// NopProgress discards all notifications.
type NopProgress struct{}

func (NopProgress) Resolved(done, total int, lat, lon float64) {}

func (NopProgress) NotFound(done, total int) {}

func (NopProgress) Failed(done, total int, address string, err error) {}
