package core

import "github.com/spaghettifunk/exhibit/engine/containers"

const AVG_COUNT uint8 = 30

// TickMetrics keeps a rolling average of tick durations and the achieved
// tick rate.
type TickMetrics struct {
	window            *containers.RingQueue[float64]
	windowSumMS       float64
	msAvg             float64
	ticks             int32
	accumulatedTickMS float64
	tps               float64
}

func NewTickMetrics() *TickMetrics {
	return &TickMetrics{
		window: containers.NewRingQueue[float64](int(AVG_COUNT)),
	}
}

// Update records one tick that took tickElapsedTime seconds.
func (m *TickMetrics) Update(tickElapsedTime float64) {
	tickMS := tickElapsedTime * 1000.0
	if m.window.IsFull() {
		oldest, _ := m.window.Dequeue()
		m.windowSumMS -= oldest
	}
	_ = m.window.Enqueue(tickMS)
	m.windowSumMS += tickMS
	if m.window.IsFull() {
		m.msAvg = m.windowSumMS / float64(AVG_COUNT)
	}

	m.accumulatedTickMS += tickMS
	if m.accumulatedTickMS > 1000 {
		m.tps = float64(m.ticks)
		m.accumulatedTickMS -= 1000
		m.ticks = 0
	}

	m.ticks++
}

// TPS is the number of ticks counted over the last full second.
func (m *TickMetrics) TPS() float64 {
	return m.tps
}

// TickTime is the average tick duration in milliseconds over the last
// AVG_COUNT ticks. It stays zero until that many ticks were recorded.
func (m *TickMetrics) TickTime() float64 {
	return m.msAvg
}

func (m *TickMetrics) Tick() (float64, float64) {
	return m.tps, m.msAvg
}
