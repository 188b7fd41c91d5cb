package domain

import (
	"math"
	"testing"
	"time"
)

func TestCPUPercent(t *testing.T) {
	tests := []struct {
		name string
		prev CPUTimes
		curr CPUTimes
		want float64
	}{
		{
			name: "busy quarter idle",
			prev: CPUTimes{Idle: 1000, Total: 5000},
			curr: CPUTimes{Idle: 1200, Total: 5800},
			want: 75.0,
		},
		{
			name: "zero total delta",
			prev: CPUTimes{Idle: 1000, Total: 5000},
			curr: CPUTimes{Idle: 1000, Total: 5000},
			want: 0,
		},
		{
			name: "fully idle",
			prev: CPUTimes{Idle: 100, Total: 200},
			curr: CPUTimes{Idle: 200, Total: 300},
			want: 0,
		},
		{
			name: "fully busy",
			prev: CPUTimes{Idle: 100, Total: 200},
			curr: CPUTimes{Idle: 100, Total: 300},
			want: 100,
		},
		{
			name: "total counter reset",
			prev: CPUTimes{Idle: 1000, Total: 5000},
			curr: CPUTimes{Idle: 10, Total: 50},
			want: 0,
		},
		{
			name: "idle counter reset",
			prev: CPUTimes{Idle: 1000, Total: 5000},
			curr: CPUTimes{Idle: 10, Total: 5800},
			want: 100,
		},
		{
			name: "idle grew more than total",
			prev: CPUTimes{Idle: 0, Total: 100},
			curr: CPUTimes{Idle: 500, Total: 200},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CPUPercent(tt.prev, tt.curr)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CPUPercent() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("CPUPercent() = %v, outside [0, 100]", got)
			}
		})
	}
}

func TestDelta(t *testing.T) {
	if got := Delta(10, 25); got != 15 {
		t.Errorf("Delta(10, 25) = %d, want 15", got)
	}
	if got := Delta(25, 10); got != 0 {
		t.Errorf("Delta(25, 10) = %d, want 0", got)
	}
	if got := Delta(math.MaxUint64-1, math.MaxUint64); got != 1 {
		t.Errorf("Delta near max = %d, want 1", got)
	}
}

func TestPerSecond(t *testing.T) {
	tests := []struct {
		name    string
		prev    uint64
		curr    uint64
		elapsed time.Duration
		want    float64
	}{
		{name: "one second", prev: 0, curr: 4096, elapsed: time.Second, want: 4096},
		{name: "two seconds", prev: 1000, curr: 3000, elapsed: 2 * time.Second, want: 1000},
		{name: "half second", prev: 0, curr: 512, elapsed: 500 * time.Millisecond, want: 1024},
		{name: "zero elapsed", prev: 0, curr: 512, elapsed: 0, want: 0},
		{name: "negative elapsed", prev: 0, curr: 512, elapsed: -time.Second, want: 0},
		{name: "counter reset", prev: 512, curr: 0, elapsed: time.Second, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PerSecond(tt.prev, tt.curr, tt.elapsed); got != tt.want {
				t.Errorf("PerSecond() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDerive_MonotonicSequenceNonNegative(t *testing.T) {
	start := time.Unix(1700000000, 0)
	snap := CounterSnapshot{Taken: start}

	for i := 1; i <= 50; i++ {
		next := CounterSnapshot{
			CPUIdleTicks:   snap.CPUIdleTicks + uint64(i%3),
			CPUTotalTicks:  snap.CPUTotalTicks + uint64(i%3) + uint64(i%5),
			DiskReadBytes:  snap.DiskReadBytes + uint64(i*512),
			DiskWriteBytes: snap.DiskWriteBytes + uint64((i%2)*512),
			NetRxBytes:     snap.NetRxBytes + uint64(i*i),
			NetTxBytes:     snap.NetTxBytes,
			Taken:          snap.Taken.Add(time.Duration(i) * 100 * time.Millisecond),
		}

		m := Derive(snap, next, 50, 50)
		for name, v := range map[string]float64{
			"cpu":        m.CPUPercent,
			"disk read":  m.DiskReadPerSec,
			"disk write": m.DiskWritePerSec,
			"net rx":     m.NetRxPerSec,
			"net tx":     m.NetTxPerSec,
		} {
			if v < 0 {
				t.Fatalf("step %d: %s rate %v is negative", i, name, v)
			}
		}
		if m.CPUPercent > 100 {
			t.Fatalf("step %d: cpu %v above 100", i, m.CPUPercent)
		}
		snap = next
	}
}

func TestDerive(t *testing.T) {
	start := time.Unix(1700000000, 0)
	prev := NewCounterSnapshot(
		CPUTimes{Idle: 1000, Total: 5000},
		DiskIO{ReadBytes: 0, WriteBytes: 1 << 20},
		NetIO{RxBytes: 2048, TxBytes: 0},
		start,
	)
	curr := NewCounterSnapshot(
		CPUTimes{Idle: 1200, Total: 5800},
		DiskIO{ReadBytes: 4 << 20, WriteBytes: 3 << 20},
		NetIO{RxBytes: 6144, TxBytes: 1024},
		start.Add(2*time.Second),
	)

	m := Derive(prev, curr, 75, 40)

	if m.CPUPercent != 75 {
		t.Errorf("CPUPercent = %v, want 75", m.CPUPercent)
	}
	if m.MemPercent != 75 || m.DiskPercent != 40 {
		t.Errorf("gauges = %v/%v, want 75/40", m.MemPercent, m.DiskPercent)
	}
	if m.DiskReadPerSec != 2<<20 {
		t.Errorf("DiskReadPerSec = %v, want %v", m.DiskReadPerSec, 2<<20)
	}
	if m.DiskWritePerSec != 1<<20 {
		t.Errorf("DiskWritePerSec = %v, want %v", m.DiskWritePerSec, 1<<20)
	}
	if m.NetRxPerSec != 2048 || m.NetTxPerSec != 512 {
		t.Errorf("net = %v/%v, want 2048/512", m.NetRxPerSec, m.NetTxPerSec)
	}
	if m.Elapsed != 2*time.Second {
		t.Errorf("Elapsed = %v, want 2s", m.Elapsed)
	}
}

func TestClampGauge(t *testing.T) {
	if ClampGauge(-3) != 0 || ClampGauge(140) != 100 || ClampGauge(42.5) != 42.5 {
		t.Error("ClampGauge did not bound to [0, 100]")
	}
}
