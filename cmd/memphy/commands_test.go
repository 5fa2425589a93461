package main

import (
	"bytes"
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/bietkhonhungvandi212/memphy/internal/memphy"
	"github.com/bietkhonhungvandi212/memphy/internal/storage/page"
	util "github.com/bietkhonhungvandi212/memphy/internal/utils"
)

func TestSimulate(t *testing.T) {
	for _, mode := range []util.AccessMode{util.RandomAccess, util.SequentialAccess} {
		t.Run(mode.String(), func(t *testing.T) {
			opts := util.DefaultOptions()
			opts.Capacity = 8 * 16
			opts.PageSize = 16
			opts.Mode = mode
			opts.Workers = 4
			opts.FramesPerWorker = 6 // 24 fills on 8 frames forces eviction

			m, err := memphy.New[int](opts)
			require.NoError(t, err)
			require.NoError(t, simulate(context.Background(), m, opts, zaptest.NewLogger(t)))

			pool := m.Pool()
			used := pool.UsedFrames()
			assert.Equal(t, 8, pool.FreeCount()+len(used), "no frame lost")

			all := pool.FreeFrames()
			for _, rec := range used {
				all = append(all, rec.Frame)
				for off := 0; off < opts.PageSize; off++ {
					b, err := m.ReadFrame(rec.Frame, off)
					require.NoError(t, err)
					assert.Equal(t, byte(rec.Owner), b, "%s holds its owner's data", rec.Frame)
				}
			}
			slices.Sort(all)
			assert.Equal(t, page.Sequence(8), all)
		})
	}
}

func TestFormatCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"format", "--capacity", "450", "--page-size", "100", "--mode", "sequential"})
	t.Cleanup(func() {
		capacity, pageSize, mode = 0, 0, ""
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "capacity=450 page_size=100 frames=4 mode=sequential unaddressed=50\n", out.String())
}

func TestLoadOptionsOverrides(t *testing.T) {
	path := util.CreateTempFile(t, "memphy.yaml", []byte("capacity: 400\npage_size: 100\n"))
	configFile, mode = path, "tape"
	t.Cleanup(func() { configFile, mode = "", "" })

	_, err := loadOptions()
	assert.ErrorIs(t, err, util.ErrUnsupportedMode)

	mode = "random"
	opts, err := loadOptions()
	require.NoError(t, err)
	assert.Equal(t, 400, opts.Capacity)
	assert.Equal(t, 100, opts.PageSize)
	assert.Equal(t, util.RandomAccess, opts.Mode)
}
