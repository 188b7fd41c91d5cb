package domain

import "context"

// CounterSource reads monotonic counters from the host.
// Implementations hold no state between calls.
type CounterSource interface {
	// ReadCPUTimes reads the aggregate idle and total CPU ticks
	ReadCPUTimes(ctx context.Context) (CPUTimes, error)
	// ReadDiskIO sums bytes read and written by allow-listed block devices
	ReadDiskIO(ctx context.Context) (DiskIO, error)
	// ReadNetDev sums bytes received and transmitted by all interfaces but loopback
	ReadNetDev(ctx context.Context) (NetIO, error)
}

// GaugeSource reads instantaneous, non-cumulative values from the host
type GaugeSource interface {
	// ReadMemPercent returns the share of physical memory in use
	ReadMemPercent(ctx context.Context) (Gauge, error)
	// ReadDiskUsagePercent returns the share of the filesystem at path in use
	ReadDiskUsagePercent(ctx context.Context, path string) (Gauge, error)
}

// SystemMetricsReader is a host backend that provides both counters and gauges
type SystemMetricsReader interface {
	CounterSource
	GaugeSource
}
