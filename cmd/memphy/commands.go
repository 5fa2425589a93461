package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bietkhonhungvandi212/memphy/internal/config"
	"github.com/bietkhonhungvandi212/memphy/internal/memphy"
	"github.com/bietkhonhungvandi212/memphy/internal/storage/page"
	util "github.com/bietkhonhungvandi212/memphy/internal/utils"
)

var (
	dumpAfter bool

	formatCmd = &cobra.Command{
		Use:   "format",
		Short: "Format a device and print its frame layout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			m, err := memphy.New[int](opts)
			if err != nil {
				return err
			}
			dev := m.Device()
			fmt.Fprintf(cmd.OutOrStdout(), "capacity=%d page_size=%d frames=%d mode=%s unaddressed=%d\n",
				dev.Capacity(), dev.PageSize(), dev.FrameCount(), dev.Mode(),
				dev.Capacity()-dev.FrameCount()*dev.PageSize())
			return nil
		},
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			return config.Write(cmd.OutOrStdout(), opts)
		},
	}

	simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Run worker processes that compete for frames and evict on exhaustion",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			if opts.Workers <= 0 {
				return util.ErrInvalidWorkers
			}

			logger, closer, err := newLogger(opts)
			if err != nil {
				return err
			}
			defer func() {
				if err := closer(); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
			}()

			reg := prometheus.NewRegistry()
			m, err := memphy.New[int](opts, memphy.WithLogger(logger), memphy.WithRegisterer(reg))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := simulate(ctx, m, opts, logger); err != nil {
				return err
			}
			if err := logMetrics(reg, logger); err != nil {
				return err
			}
			if dumpAfter {
				return m.Dump(cmd.OutOrStdout())
			}
			return nil
		},
	}
)

func init() {
	simulateCmd.Flags().BoolVar(&dumpAfter, "dump", true, "dump device contents when the run ends")
}

// simulate runs one goroutine per worker. Each worker fills frames_per_worker
// frames with its id, evicting the oldest used frame whenever the pool is empty.
// A frame is filled before it is recorded, so only its holder ever writes it.
func simulate(ctx context.Context, m *memphy.Memory[int], opts util.Options, logger *zap.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	for w := 1; w <= opts.Workers; w++ {
		g.Go(func() error {
			wlog := logger.With(zap.Int("worker", w))
			for i := 0; i < opts.FramesPerWorker; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				frame := acquireOrEvict(m, wlog)
				for off := 0; off < opts.PageSize; off++ {
					if err := m.WriteFrame(frame, off, byte(w)); err != nil {
						m.Pool().ReleaseFrame(frame)
						return fmt.Errorf("worker %d: %w", w, err)
					}
				}
				if err := m.Pool().RecordUsed(frame, w); err != nil {
					m.Pool().ReleaseFrame(frame)
					return fmt.Errorf("worker %d: %w", w, err)
				}
				wlog.Debug("filled frame", zap.Stringer("frame", frame))
			}
			return nil
		})
	}
	return g.Wait()
}

func acquireOrEvict(m *memphy.Memory[int], logger *zap.Logger) page.Frame {
	for {
		frame, err := m.Pool().AcquireFreeFrame()
		if err == nil {
			return frame
		}

		victim, ok := m.Pool().TakeAnyUsed()
		if !ok {
			// every frame is being filled by some worker
			runtime.Gosched()
			continue
		}
		m.Pool().ReleaseFrame(victim.Frame)
		logger.Debug("evicted frame",
			zap.Stringer("frame", victim.Frame),
			zap.Int("owner", victim.Owner),
		)
	}
}

func logMetrics(reg prometheus.Gatherer, logger *zap.Logger) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	fields := make([]zap.Field, 0, len(families))
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			switch {
			case metric.GetGauge() != nil:
				fields = append(fields, zap.Float64(mf.GetName(), metric.GetGauge().GetValue()))
			case metric.GetCounter() != nil:
				fields = append(fields, zap.Float64(mf.GetName(), metric.GetCounter().GetValue()))
			}
		}
	}
	logger.Info("simulation finished", fields...)
	return nil
}
