package domain

import "time"

// Delta returns curr-prev, or 0 when the counter went backwards (reset or device change)
func Delta(prev, curr uint64) uint64 {
	if curr < prev {
		return 0
	}
	return curr - prev
}

// CPUPercent returns the busy share of the ticks elapsed between two readings.
// A zero or backwards total yields 0; the result is always within [0, 100].
func CPUPercent(prev, curr CPUTimes) float64 {
	totalDelta := Delta(prev.Total, curr.Total)
	if totalDelta == 0 {
		return 0
	}
	idleDelta := Delta(prev.Idle, curr.Idle)
	if idleDelta > totalDelta {
		return 0
	}

	usage := 1.0 - float64(idleDelta)/float64(totalDelta)
	return float64(ClampGauge(usage * 100.0))
}

// PerSecond converts the growth of a counter over elapsed into a per-second rate.
// Non-positive elapsed yields 0.
func PerSecond(prev, curr uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(Delta(prev, curr)) / elapsed.Seconds()
}

// Derive computes the metrics of one tick from the previous and current snapshots.
// Rates are divided by the wall time between the snapshots, so they stay per-second
// whatever the sampling interval is.
func Derive(prev, curr CounterSnapshot, mem, disk Gauge) Metrics {
	elapsed := curr.Taken.Sub(prev.Taken)

	return Metrics{
		CPUPercent:      CPUPercent(prev.CPU(), curr.CPU()),
		MemPercent:      float64(mem),
		DiskPercent:     float64(disk),
		DiskReadPerSec:  PerSecond(prev.DiskReadBytes, curr.DiskReadBytes, elapsed),
		DiskWritePerSec: PerSecond(prev.DiskWriteBytes, curr.DiskWriteBytes, elapsed),
		NetRxPerSec:     PerSecond(prev.NetRxBytes, curr.NetRxBytes, elapsed),
		NetTxPerSec:     PerSecond(prev.NetTxBytes, curr.NetTxBytes, elapsed),
		Elapsed:         elapsed,
	}
}
