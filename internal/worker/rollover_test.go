package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/financas-casa/internal/application/ledger"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	"github.com/jhoicas/financas-casa/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReplicator struct {
	mu     sync.Mutex
	months []entity.Month
	err    error
}

func (r *recordingReplicator) Replicate(_ context.Context, month entity.Month) (*ledger.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.months = append(r.months, month)
	if r.err != nil {
		return nil, r.err
	}
	return &ledger.Result{Replicated: 1}, nil
}

func (r *recordingReplicator) calls() []entity.Month {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Month(nil), r.months...)
}

func TestRunOnce_UsesLedgerTimezone(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	rep := &recordingReplicator{}
	w := NewRolloverWorker(rep, time.Hour, saoPaulo, logger.Nop())
	// 01/03 01:00 UTC todavía es 28/02 en São Paulo.
	w.now = func() time.Time { return time.Date(2025, time.March, 1, 1, 0, 0, 0, time.UTC) }

	w.RunOnce(context.Background())

	require.Len(t, rep.calls(), 1)
	assert.Equal(t, entity.NewMonth(2025, time.February), rep.calls()[0])
}

func TestRunOnce_ErrorIsLogged(t *testing.T) {
	rep := &recordingReplicator{err: errors.New("db caída")}
	w := NewRolloverWorker(rep, time.Hour, nil, logger.Nop())

	assert.NotPanics(t, func() { w.RunOnce(context.Background()) })
	assert.Len(t, rep.calls(), 1)
}

func TestRun_TicksUntilCancelled(t *testing.T) {
	rep := &recordingReplicator{}
	w := NewRolloverWorker(rep, 5*time.Millisecond, time.UTC, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(rep.calls()) >= 3 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run no terminó tras cancelar el contexto")
	}
}
