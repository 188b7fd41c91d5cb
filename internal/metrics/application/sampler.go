package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"sysmon/internal/metrics/domain"
	"sysmon/internal/shared/logger"
)

const (
	DefaultInterval  = time.Second
	DefaultMountPath = "/"
)

// SamplerOptions are the out-of-core settings threaded into the Sampler
type SamplerOptions struct {
	Interval  time.Duration
	MountPath string
	// Now stamps snapshots; defaults to time.Now
	Now func() time.Time
}

// Sampler runs the seed-then-tick loop. It exclusively owns the previous
// snapshot; nothing else reads or writes it.
type Sampler struct {
	counters domain.CounterSource
	gauges   domain.GaugeSource
	sink     domain.Sink
	logger   logger.Logger

	interval  time.Duration
	mountPath string
	now       func() time.Time

	state SamplerState
	prev  domain.CounterSnapshot

	// whether prev holds real counters for each optional family
	prevDiskIOValid bool
	prevNetIOValid  bool
}

// NewSampler creates a sampler in the seeding state
func NewSampler(counters domain.CounterSource, gauges domain.GaugeSource, sink domain.Sink, logger logger.Logger, opts SamplerOptions) *Sampler {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MountPath == "" {
		opts.MountPath = DefaultMountPath
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Sampler{
		counters:  counters,
		gauges:    gauges,
		sink:      sink,
		logger:    logger,
		interval:  opts.Interval,
		mountPath: opts.MountPath,
		now:       opts.Now,
		state:     StateSeeding,
	}
}

// State returns the current loop phase
func (s *Sampler) State() SamplerState {
	return s.state
}

// Seed takes the initial snapshot so the first emitted line already covers a full interval
func (s *Sampler) Seed(ctx context.Context) error {
	r, err := s.collect(ctx)
	if err != nil {
		return fmt.Errorf("failed to take initial snapshot: %w", err)
	}

	s.setPrev(r)
	s.state = StateTicking
	s.logger.Debug("Sampler seeded", "interval", s.interval, "path", s.mountPath)
	return nil
}

// Tick takes a new snapshot, derives metrics against the previous one and replaces it.
// On error the previous snapshot is kept.
func (s *Sampler) Tick(ctx context.Context) (domain.Metrics, error) {
	if s.state != StateTicking {
		return domain.Metrics{}, fmt.Errorf("tick in %s state", s.state)
	}

	r, err := s.collect(ctx)
	if err != nil {
		return domain.Metrics{}, err
	}

	m := domain.Derive(s.prev, r.snapshot, r.mem, r.disk)
	// a family without real counters on both ends has no meaningful delta;
	// the first good read after a gap only becomes the new baseline
	if !s.prevDiskIOValid || !r.diskIOValid {
		m.DiskReadPerSec, m.DiskWritePerSec = 0, 0
	}
	if !s.prevNetIOValid || !r.netIOValid {
		m.NetRxPerSec, m.NetTxPerSec = 0, 0
	}
	s.setPrev(r)

	s.logger.Debug("Sampler tick",
		"elapsed", m.Elapsed,
		"cpu", fmt.Sprintf("%.1f%%", m.CPUPercent),
		"mem", fmt.Sprintf("%.1f%%", m.MemPercent),
		"disk", fmt.Sprintf("%.1f%%", m.DiskPercent),
		"disk_read", humanRate(m.DiskReadPerSec),
		"disk_write", humanRate(m.DiskWritePerSec),
		"net_rx", humanRate(m.NetRxPerSec),
		"net_tx", humanRate(m.NetTxPerSec),
	)
	return m, nil
}

// Run seeds, then ticks every interval until ctx is canceled.
// Cancellation is a clean exit: it returns nil and nothing more is emitted.
// A failing mandatory source ends the loop with its error.
func (s *Sampler) Run(ctx context.Context) error {
	if err := s.Seed(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		m, err := s.Tick(ctx)
		if ctx.Err() != nil {
			// abandoned mid-iteration
			return nil
		}
		if err != nil {
			return err
		}

		if err := s.sink.Emit(ctx, m); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("failed to emit metrics: %w", err)
		}
	}
}

func (s *Sampler) setPrev(r reading) {
	s.prev = r.snapshot
	s.prevDiskIOValid = r.diskIOValid
	s.prevNetIOValid = r.netIOValid
}

// collect reads every source concurrently and joins before anything is derived.
// CPU, memory and filesystem usage are mandatory; disk and network I/O fall back
// to the previous counters and are marked invalid when their interface is unreadable.
func (s *Sampler) collect(ctx context.Context) (reading, error) {
	var (
		cpu domain.CPUTimes
		dio domain.DiskIO
		nio domain.NetIO
		r   = reading{diskIOValid: true, netIOValid: true}
	)
	prev := s.prev

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cpu, err = s.counters.ReadCPUTimes(gctx)
		if err != nil {
			return fmt.Errorf("cpu: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		r.mem, err = s.gauges.ReadMemPercent(gctx)
		if err != nil {
			return fmt.Errorf("memory: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		r.disk, err = s.gauges.ReadDiskUsagePercent(gctx, s.mountPath)
		if err != nil {
			return fmt.Errorf("disk usage: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		dio, err = s.counters.ReadDiskIO(gctx)
		if err != nil {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			s.logger.Warn("Disk I/O counters unavailable", "err", err)
			dio = domain.DiskIO{ReadBytes: prev.DiskReadBytes, WriteBytes: prev.DiskWriteBytes}
			r.diskIOValid = false
		}
		return nil
	})
	g.Go(func() error {
		var err error
		nio, err = s.counters.ReadNetDev(gctx)
		if err != nil {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			s.logger.Warn("Network counters unavailable", "err", err)
			nio = domain.NetIO{RxBytes: prev.NetRxBytes, TxBytes: prev.NetTxBytes}
			r.netIOValid = false
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return reading{}, err
	}

	r.snapshot = domain.NewCounterSnapshot(cpu, dio, nio, s.now())
	return r, nil
}

func humanRate(bytesPerSec float64) string {
	if bytesPerSec < 0 {
		bytesPerSec = 0
	}
	return humanize.IBytes(uint64(bytesPerSec)) + "/s"
}
