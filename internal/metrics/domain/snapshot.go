package domain

import "time"

// CPUTimes is the aggregate idle and total tick count of all CPUs
type CPUTimes struct {
	Idle  uint64
	Total uint64
}

// DiskIO is the accumulated bytes read and written by physical disks
type DiskIO struct {
	ReadBytes  uint64
	WriteBytes uint64
}

// NetIO is the accumulated bytes received and transmitted by non-loopback interfaces
type NetIO struct {
	RxBytes uint64
	TxBytes uint64
}

// CounterSnapshot holds every monotonic counter read at one instant.
// It is a value object: a new snapshot replaces the old one, fields are never mutated.
type CounterSnapshot struct {
	CPUIdleTicks   uint64
	CPUTotalTicks  uint64
	DiskReadBytes  uint64
	DiskWriteBytes uint64
	NetRxBytes     uint64
	NetTxBytes     uint64
	Taken          time.Time
}

// NewCounterSnapshot assembles a snapshot from the three counter families
func NewCounterSnapshot(cpu CPUTimes, disk DiskIO, net NetIO, taken time.Time) CounterSnapshot {
	return CounterSnapshot{
		CPUIdleTicks:   cpu.Idle,
		CPUTotalTicks:  cpu.Total,
		DiskReadBytes:  disk.ReadBytes,
		DiskWriteBytes: disk.WriteBytes,
		NetRxBytes:     net.RxBytes,
		NetTxBytes:     net.TxBytes,
		Taken:          taken,
	}
}

// CPU returns the CPU counters of the snapshot
func (s CounterSnapshot) CPU() CPUTimes {
	return CPUTimes{Idle: s.CPUIdleTicks, Total: s.CPUTotalTicks}
}

// Gauge is a point-in-time percentage in [0, 100]
type Gauge float64

// ClampGauge bounds v to [0, 100]
func ClampGauge(v float64) Gauge {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return Gauge(v)
}

// Metrics is what one tick derives from two snapshots and the gauges.
// Rates are in bytes per second.
type Metrics struct {
	CPUPercent      float64
	MemPercent      float64
	DiskPercent     float64
	DiskReadPerSec  float64
	DiskWritePerSec float64
	NetRxPerSec     float64
	NetTxPerSec     float64
	Elapsed         time.Duration
}
