package infrastructure

import (
	"bufio"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"sysmon/internal/metrics/domain"
	"sysmon/internal/shared/logger"
)

// SectorSize is the fixed unit of the sector counters in /proc/diskstats
const SectorSize = 512

// cpuFields is the number of leading tick counters summed into the total:
// user, nice, system, idle, iowait, irq, softirq
const cpuFields = 7

// DefaultDiskPrefixes names the block devices counted as physical disks
var DefaultDiskPrefixes = []string{"sd", "nvme", "hd"}

// PlatformDiskPrefixes returns DefaultDiskPrefixes extended with the
// whole-disk naming of the running OS ("disk0" on darwin).
func PlatformDiskPrefixes() []string {
	prefixes := append([]string(nil), DefaultDiskPrefixes...)
	if runtime.GOOS == "darwin" {
		prefixes = append(prefixes, "disk")
	}
	return prefixes
}

// ParseCPUTimes parses the aggregate "cpu" line at the top of /proc/stat
func ParseCPUTimes(r io.Reader) (domain.CPUTimes, error) {
	const source = "stat"

	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return domain.CPUTimes{}, domain.NewIOError(source, err)
		}
		return domain.CPUTimes{}, domain.NewParseError(source, 1, "empty", nil)
	}

	fields := strings.Fields(sc.Text())
	if len(fields) == 0 || fields[0] != "cpu" {
		return domain.CPUTimes{}, domain.NewParseError(source, 1, "first line is not the aggregate cpu line", nil)
	}
	if len(fields) < cpuFields+1 {
		return domain.CPUTimes{}, domain.NewParseError(source, 1,
			fmt.Sprintf("want %d tick fields, got %d", cpuFields, len(fields)-1), nil)
	}

	var times domain.CPUTimes
	for i := 1; i <= cpuFields; i++ {
		v, err := strconv.ParseUint(fields[i], 10, 64)
		if err != nil {
			return domain.CPUTimes{}, domain.NewParseError(source, 1, fmt.Sprintf("field %d is not numeric", i), err)
		}
		if i == 4 {
			times.Idle = v
		}
		times.Total += v
	}

	return times, nil
}

// ParseMemPercent parses the first two lines of /proc/meminfo (MemTotal, MemFree)
func ParseMemPercent(r io.Reader) (domain.Gauge, error) {
	const source = "meminfo"

	sc := bufio.NewScanner(r)
	var values [2]uint64
	for i := range values {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, domain.NewIOError(source, err)
			}
			return 0, domain.NewParseError(source, i+1, "missing line", nil)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			return 0, domain.NewParseError(source, i+1, "missing value", nil)
		}
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, domain.NewParseError(source, i+1, "value is not numeric", err)
		}
		values[i] = v
	}

	return MemPercent(values[0], values[1]), nil
}

// MemPercent returns (total-free)*100/total, 0 when total is 0
func MemPercent(total, free uint64) domain.Gauge {
	return bytesUsagePercent(total, free)
}

// DiskStatsParser sums sector counters of allow-listed devices in /proc/diskstats
type DiskStatsParser struct {
	Prefixes []string
	Logger   logger.Logger
}

func (p DiskStatsParser) matches(name string) bool {
	for _, prefix := range p.Prefixes {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Parse skips malformed lines rather than failing the whole read
func (p DiskStatsParser) Parse(r io.Reader) (domain.DiskIO, error) {
	var readSectors, writeSectors uint64

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 10 {
			p.skip("diskstats", lineNo, "too few fields")
			continue
		}
		if !p.matches(fields[2]) {
			continue
		}

		rd, err := strconv.ParseUint(fields[5], 10, 64)
		if err != nil {
			p.skip("diskstats", lineNo, "sectors read is not numeric")
			continue
		}
		wr, err := strconv.ParseUint(fields[9], 10, 64)
		if err != nil {
			p.skip("diskstats", lineNo, "sectors written is not numeric")
			continue
		}
		readSectors += rd
		writeSectors += wr
	}
	if err := sc.Err(); err != nil {
		return domain.DiskIO{}, domain.NewIOError("diskstats", err)
	}

	return domain.DiskIO{
		ReadBytes:  readSectors * SectorSize,
		WriteBytes: writeSectors * SectorSize,
	}, nil
}

func (p DiskStatsParser) skip(source string, line int, reason string) {
	if p.Logger != nil {
		p.Logger.Debug("Skipping malformed line", "source", source, "line", line, "reason", reason)
	}
}

// NetDevParser sums byte counters of every interface but loopback in /proc/net/dev
type NetDevParser struct {
	Logger logger.Logger
}

// Parse skips the two header lines and malformed interface lines
func (p NetDevParser) Parse(r io.Reader) (domain.NetIO, error) {
	var rx, tx uint64

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if lineNo <= 2 {
			continue
		}

		iface, data, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			p.skip(lineNo, "no interface separator")
			continue
		}
		if strings.TrimSpace(iface) == "lo" {
			continue
		}

		fields := strings.Fields(data)
		if len(fields) < 9 {
			p.skip(lineNo, "too few fields")
			continue
		}
		received, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			p.skip(lineNo, "received bytes is not numeric")
			continue
		}
		transmitted, err := strconv.ParseUint(fields[8], 10, 64)
		if err != nil {
			p.skip(lineNo, "transmitted bytes is not numeric")
			continue
		}
		rx += received
		tx += transmitted
	}
	if err := sc.Err(); err != nil {
		return domain.NetIO{}, domain.NewIOError("net/dev", err)
	}

	return domain.NetIO{RxBytes: rx, TxBytes: tx}, nil
}

func (p NetDevParser) skip(line int, reason string) {
	if p.Logger != nil {
		p.Logger.Debug("Skipping malformed line", "source", "net/dev", "line", line, "reason", reason)
	}
}
