package infrastructure

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"sysmon/internal/metrics/domain"
	"sysmon/internal/shared/logger"
)

// DefaultProcRoot is where the kernel exposes its counters
const DefaultProcRoot = "/proc"

// ProcFSReader implements domain.SystemMetricsReader on top of the Linux procfs text interfaces
type ProcFSReader struct {
	root     string
	diskstat DiskStatsParser
	netdev   NetDevParser
	statfs   func(path string) (domain.Gauge, error)
}

// NewProcFSReader creates a reader rooted at root (normally /proc).
// prefixes is the device-name allow-list for disk I/O; nil selects DefaultDiskPrefixes.
func NewProcFSReader(root string, prefixes []string, log logger.Logger) *ProcFSReader {
	if root == "" {
		root = DefaultProcRoot
	}
	if len(prefixes) == 0 {
		prefixes = DefaultDiskPrefixes
	}
	return &ProcFSReader{
		root:     root,
		diskstat: DiskStatsParser{Prefixes: prefixes, Logger: log},
		netdev:   NetDevParser{Logger: log},
		statfs:   diskUsagePercent,
	}
}

var _ domain.SystemMetricsReader = (*ProcFSReader)(nil)

// ReadCPUTimes reads the aggregate CPU ticks from <root>/stat
func (r *ProcFSReader) ReadCPUTimes(ctx context.Context) (domain.CPUTimes, error) {
	var times domain.CPUTimes
	err := r.withFile(ctx, "stat", func(f io.Reader) (err error) {
		times, err = ParseCPUTimes(f)
		return err
	})
	return times, err
}

// ReadDiskIO reads per-device sector counters from <root>/diskstats
func (r *ProcFSReader) ReadDiskIO(ctx context.Context) (domain.DiskIO, error) {
	var dio domain.DiskIO
	err := r.withFile(ctx, "diskstats", func(f io.Reader) (err error) {
		dio, err = r.diskstat.Parse(f)
		return err
	})
	return dio, err
}

// ReadNetDev reads per-interface byte counters from <root>/net/dev
func (r *ProcFSReader) ReadNetDev(ctx context.Context) (domain.NetIO, error) {
	var nio domain.NetIO
	err := r.withFile(ctx, filepath.Join("net", "dev"), func(f io.Reader) (err error) {
		nio, err = r.netdev.Parse(f)
		return err
	})
	return nio, err
}

// ReadMemPercent reads MemTotal and MemFree from <root>/meminfo
func (r *ProcFSReader) ReadMemPercent(ctx context.Context) (domain.Gauge, error) {
	var pct domain.Gauge
	err := r.withFile(ctx, "meminfo", func(f io.Reader) (err error) {
		pct, err = ParseMemPercent(f)
		return err
	})
	return pct, err
}

// ReadDiskUsagePercent queries filesystem statistics for path
func (r *ProcFSReader) ReadDiskUsagePercent(ctx context.Context, path string) (domain.Gauge, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return r.statfs(path)
}

func (r *ProcFSReader) withFile(ctx context.Context, name string, parse func(io.Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(r.root, name)
	f, err := os.Open(path)
	if err != nil {
		return domain.NewIOError(path, err)
	}
	defer f.Close()

	return parse(f)
}
