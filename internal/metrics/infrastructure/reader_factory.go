package infrastructure

import (
	"fmt"
	"runtime"

	"sysmon/internal/metrics/domain"
	"sysmon/internal/shared/logger"
)

const (
	SourceProcFS   = "procfs"
	SourceGopsutil = "gopsutil"
)

// DefaultSource picks procfs on Linux and gopsutil everywhere else
func DefaultSource() string {
	if runtime.GOOS == "linux" {
		return SourceProcFS
	}
	return SourceGopsutil
}

// ValidSource reports whether NewSystemMetricsReader accepts source
func ValidSource(source string) bool {
	return source == SourceProcFS || source == SourceGopsutil
}

// NewSystemMetricsReader creates the host backend named by source
func NewSystemMetricsReader(source, procRoot string, prefixes []string, log logger.Logger) (domain.SystemMetricsReader, error) {
	switch source {
	case "", SourceProcFS:
		return NewProcFSReader(procRoot, prefixes, log), nil
	case SourceGopsutil:
		return NewGopsutilReader(prefixes), nil
	default:
		return nil, fmt.Errorf("unknown metrics source %q", source)
	}
}
