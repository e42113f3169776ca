package engine

import "time"

// Ticker is a restartable redraw timer. Start and Stop are idempotent,
// C returns nil while stopped so a select on it blocks.
type Ticker struct {
	interval time.Duration
	ticker   *time.Ticker
}

// DefaultTickInterval replaces non-positive intervals.
const DefaultTickInterval = time.Second / 60

func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Ticker{interval: interval}
}

func (t *Ticker) Start() {
	if t.ticker != nil {
		return
	}
	t.ticker = time.NewTicker(t.interval)
}

func (t *Ticker) Stop() {
	if t.ticker == nil {
		return
	}
	t.ticker.Stop()
	t.ticker = nil
}

func (t *Ticker) Running() bool {
	return t.ticker != nil
}

func (t *Ticker) C() <-chan time.Time {
	if t.ticker == nil {
		return nil
	}
	return t.ticker.C
}
