//go:build !linux

package infrastructure

import (
	"github.com/shirou/gopsutil/v4/disk"

	"sysmon/internal/metrics/domain"
)

func diskUsagePercent(path string) (domain.Gauge, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, domain.NewIOError("statfs "+path, err)
	}
	return bytesUsagePercent(usage.Total, usage.Free), nil
}
