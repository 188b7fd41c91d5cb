//go:build linux

package infrastructure

import (
	"golang.org/x/sys/unix"

	"sysmon/internal/metrics/domain"
)

func diskUsagePercent(path string) (domain.Gauge, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, domain.NewIOError("statfs "+path, err)
	}
	return UsagePercent(st.Blocks, st.Bfree, uint64(st.Frsize)), nil
}
