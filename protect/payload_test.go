package protect

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	trishare "github.com/BackendStack21/trishare-go"
	"github.com/BackendStack21/trishare-go/core"
	"github.com/BackendStack21/trishare-go/metrics"
)

func fastConfig() trishare.Config {
	return core.FastConfig
}

func TestPayload_AdvanceToCompletion(t *testing.T) {
	cfg := fastConfig()
	data := []byte("protected payload contents")

	p, err := New(data, cfg.Sharing, cfg.Temporal)
	require.NoError(t, err)
	assert.Equal(t, 0, p.ShareLen()%trishare.Alignment)

	for i := 1; i <= TotalSteps; i++ {
		require.False(t, p.IsComplete(), "complete before step %d", i)
		require.NoError(t, p.Advance())
		assert.Equal(t, i, p.Steps())
	}
	assert.True(t, p.IsComplete())
	assert.Equal(t, 1.0, p.Progress())

	got, err := p.Reconstruct()
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestPayload_SharesProcessedInOrder(t *testing.T) {
	cfg := fastConfig()
	p, err := New([]byte("ordered"), cfg.Sharing, cfg.Temporal)
	require.NoError(t, err)

	for i := 0; i < trishare.CycleLength; i++ {
		require.NoError(t, p.Advance())
	}
	proofs := p.Proofs()
	require.Len(t, proofs, trishare.ShareCount)
	assert.NotNil(t, proofs[0])
	assert.Nil(t, proofs[1])
	assert.Nil(t, proofs[2])
	assert.Equal(t, trishare.CycleLength, proofs[0].IterationCount)
}

func TestPayload_ReconstructBeforeComplete(t *testing.T) {
	cfg := fastConfig()
	p, err := New([]byte("early"), cfg.Sharing, cfg.Temporal)
	require.NoError(t, err)
	require.NoError(t, p.Advance())

	_, err = p.Reconstruct()
	assert.ErrorIs(t, err, trishare.ErrInvalidState)
}

func TestPayload_AdvanceAfterComplete(t *testing.T) {
	p, err := Protect(context.Background(), []byte("done"), fastConfig())
	require.NoError(t, err)

	require.NoError(t, p.Advance())
	assert.Equal(t, TotalSteps, p.Steps())
}

func TestPayload_EmptyData(t *testing.T) {
	cfg := fastConfig()
	_, err := New(nil, cfg.Sharing, cfg.Temporal)
	assert.ErrorIs(t, err, trishare.ErrInvalidInput)
}

func TestProtect_LargePayloadParallel(t *testing.T) {
	cfg := core.ImagingConfig
	cfg.Temporal.EnforceTiming = false

	data := bytes.Repeat([]byte{0xA5, 0x5A, 0x01}, 100_000)
	p, err := Protect(context.Background(), data, cfg)
	require.NoError(t, err)

	got, err := p.Reconstruct()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, got))
}

func TestProtect_Deadline(t *testing.T) {
	cfg := fastConfig()
	cfg.Temporal.EnforceTiming = true
	cfg.Temporal.MinIterationTime = 20 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := Protect(ctx, []byte("slow"), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, trishare.ErrTimeout)
}

func TestProtect_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Protect(ctx, []byte("canceled"), fastConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProtect_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	require.NoError(t, err)

	_, err = Protect(context.Background(), []byte("metered"), fastConfig(), WithMetrics(rec))
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "trishare_vdf_iterations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = testutil.GatherAndCount(reg, "trishare_operations_total")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, 4, "split, iterate, prove, verify_proof and protect series")
}
