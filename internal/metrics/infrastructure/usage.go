package infrastructure

import "sysmon/internal/metrics/domain"

// UsagePercent returns the used share of a filesystem from its block counts.
// used = (blocks-free)*size, total = blocks*size; an empty filesystem is 0%.
func UsagePercent(blocks, freeBlocks, blockSize uint64) domain.Gauge {
	return bytesUsagePercent(blocks*blockSize, freeBlocks*blockSize)
}

func bytesUsagePercent(total, free uint64) domain.Gauge {
	if total == 0 || free > total {
		return 0
	}
	return domain.ClampGauge(float64(total-free) * 100.0 / float64(total))
}
