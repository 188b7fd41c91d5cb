package infrastructure

import (
	"context"
	"math"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"

	"sysmon/internal/metrics/domain"
)

// clockTicks converts gopsutil CPU seconds back into USER_HZ ticks
const clockTicks = 100

// GopsutilReader implements domain.SystemMetricsReader with gopsutil,
// for hosts without a Linux procfs.
type GopsutilReader struct {
	prefixes []string
}

// NewGopsutilReader creates a reader counting disks whose name starts with one of prefixes
func NewGopsutilReader(prefixes []string) *GopsutilReader {
	if len(prefixes) == 0 {
		prefixes = PlatformDiskPrefixes()
	}
	return &GopsutilReader{prefixes: prefixes}
}

var _ domain.SystemMetricsReader = (*GopsutilReader)(nil)

func (r *GopsutilReader) ReadCPUTimes(ctx context.Context) (domain.CPUTimes, error) {
	stats, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return domain.CPUTimes{}, domain.NewIOError("cpu times", err)
	}
	if len(stats) == 0 {
		return domain.CPUTimes{}, domain.NewParseError("cpu times", 0, "no aggregate cpu entry", nil)
	}

	s := stats[0]
	fields := []float64{s.User, s.Nice, s.System, s.Idle, s.Iowait, s.Irq, s.Softirq}

	var times domain.CPUTimes
	for i, secs := range fields {
		v := toTicks(secs)
		if i == 3 {
			times.Idle = v
		}
		times.Total += v
	}
	return times, nil
}

func (r *GopsutilReader) ReadDiskIO(ctx context.Context) (domain.DiskIO, error) {
	counters, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		return domain.DiskIO{}, domain.NewIOError("disk io counters", err)
	}

	match := DiskStatsParser{Prefixes: r.prefixes}
	var dio domain.DiskIO
	for name, c := range counters {
		if !match.matches(name) {
			continue
		}
		dio.ReadBytes += c.ReadBytes
		dio.WriteBytes += c.WriteBytes
	}
	return dio, nil
}

func (r *GopsutilReader) ReadNetDev(ctx context.Context) (domain.NetIO, error) {
	counters, err := psnet.IOCountersWithContext(ctx, true)
	if err != nil {
		return domain.NetIO{}, domain.NewIOError("net io counters", err)
	}

	var nio domain.NetIO
	for _, c := range counters {
		if isLoopback(c.Name) {
			continue
		}
		nio.RxBytes += c.BytesRecv
		nio.TxBytes += c.BytesSent
	}
	return nio, nil
}

func (r *GopsutilReader) ReadMemPercent(ctx context.Context) (domain.Gauge, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, domain.NewIOError("virtual memory", err)
	}
	return MemPercent(vm.Total, vm.Free), nil
}

func (r *GopsutilReader) ReadDiskUsagePercent(ctx context.Context, path string) (domain.Gauge, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return 0, domain.NewIOError("statfs "+path, err)
	}
	return bytesUsagePercent(usage.Total, usage.Free), nil
}

func toTicks(secs float64) uint64 {
	if secs <= 0 {
		return 0
	}
	return uint64(math.Round(secs * clockTicks))
}

// isLoopback matches "lo" and the numbered loopbacks of BSD-like systems ("lo0")
func isLoopback(name string) bool {
	if name == "lo" {
		return true
	}
	rest, ok := strings.CutPrefix(name, "lo")
	if !ok || rest == "" {
		return false
	}
	for _, c := range rest {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
