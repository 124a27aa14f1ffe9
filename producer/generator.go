package producer

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

const (
	logMsgStarted         = "producer started"
	logMsgStopping        = "stopping producer"
	logMsgTotal           = "total operations"
	logMsgCommitted       = "committed: "
	logMsgSkipped         = "skipped: "
	logMsgOperationFailed = "operation failed"
	logMsgBeginFailed     = "beginning unit of work failed"
	logMsgCommitFailed    = "commit failed"
	logMsgRollbackFailed  = "rollback failed"
	logMsgCloseFailed     = "closing store failed"
	logAttrError          = "error"
	logAttrSequence       = "seq"
	logAttrOperation      = "op"
	logAttrReason         = "reason"
	logAttrInterval       = "interval"
	logAttrCommitted      = "committed"
	logAttrSkipped        = "skipped"
	logAttrFailed         = "failed"
	logAttrUserID         = "user_id"
	logAttrActivityID     = "activity_id"
	logAttrUsername       = "username"
	logAttrStatus         = "status"
	logAttrNewStatus      = "new_status"
	logAttrActivityType   = "activity_type"
	logAttrDurationMS     = "duration_ms"
)

// State is the lifecycle state of a Generator.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// OperationExecutor performs one operation on a unit of work. Executor is the default.
type OperationExecutor interface {
	Execute(ctx context.Context, uow UnitOfWork, kind OperationKind) (Result, error)
}

// Summary reports the cumulative outcome of a run.
type Summary struct {
	Committed int
	Skipped   int
	Failed    int
}

// Generator runs the scheduler loop against a Store.
type Generator struct {
	store            Store
	executor         OperationExecutor
	picker           OperationPicker
	interval         time.Duration
	logger           Logger
	metricsCollector MetricsCollector
	state            atomic.Int32
	summary          Summary
}

// NewGenerator creates a Generator with the default 2:1:5 operation weights and a 3s interval.
func NewGenerator(store Store, options ...Option) (*Generator, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	g := &Generator{
		store:    store,
		executor: Executor{},
		picker:   NewWeightedPicker(DefaultWeights(), nil),
		interval: defaultInterval,
	}

	for _, option := range options {
		if err := option(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// State returns the current lifecycle state. It is safe to call from other goroutines.
func (g *Generator) State() State {
	return State(g.state.Load())
}

// Run executes cycles until ctx is canceled, then closes the store and returns the summary.
// An operation that is already executing when ctx is canceled runs to completion.
// The returned error is only non-nil when closing the store failed or Run was called twice.
func (g *Generator) Run(ctx context.Context) (Summary, error) {
	if !g.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return Summary{}, ErrGeneratorAlreadyStarted
	}

	g.logInfo(logMsgStarted, logAttrInterval, g.interval.String())

	for ctx.Err() == nil {
		g.runCycle(ctx)

		if !g.wait(ctx) {
			break
		}
	}

	return g.shutdown()
}

func (g *Generator) shutdown() (Summary, error) {
	g.state.Store(int32(StateStopping))
	g.logInfo(logMsgStopping)

	closeErr := g.store.Close(context.Background())
	if closeErr != nil {
		g.logError(logMsgCloseFailed, closeErr)
	}

	g.state.Store(int32(StateStopped))
	g.logInfo(
		logMsgTotal,
		logAttrCommitted, g.summary.Committed,
		logAttrSkipped, g.summary.Skipped,
		logAttrFailed, g.summary.Failed,
	)

	return g.summary, closeErr
}

// wait blocks for the configured interval and reports whether the loop should continue.
// Cancellation ends the wait at once instead of letting the interval run out.
func (g *Generator) wait(ctx context.Context) bool {
	if g.interval == 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(g.interval)
	defer timer.Stop()

	select {
	case <-timer.C:
		return ctx.Err() == nil
	case <-ctx.Done():
		return false
	}
}

func (g *Generator) runCycle(ctx context.Context) {
	// Work in flight is never torn down halfway by the interrupt.
	workCtx := context.WithoutCancel(ctx)
	kind := g.picker.Pick()
	start := time.Now()

	uow, err := g.store.Begin(workCtx)
	if err != nil {
		g.recordFailure(workCtx, kind, start, logMsgBeginFailed, errors.Join(ErrBeginFailed, err))
		return
	}

	result, execErr := g.executor.Execute(workCtx, uow, kind)
	if execErr != nil {
		g.rollback(workCtx, uow)
		g.recordFailure(workCtx, kind, start, logMsgOperationFailed, execErr)
		return
	}

	if !result.Applied() {
		// Nothing was written; release the empty unit of work.
		g.rollback(workCtx, uow)
		g.summary.Skipped++
		g.recordOutcome(workCtx, kind, StatusSkipped, start)
		g.logDebug(logMsgSkipped+string(kind), logAttrOperation, string(kind), logAttrReason, string(result.NoOp))
		return
	}

	if commitErr := uow.Commit(workCtx); commitErr != nil {
		g.recordFailure(workCtx, kind, start, logMsgCommitFailed, errors.Join(ErrCommitFailed, commitErr))
		return
	}

	g.summary.Committed++
	g.recordOutcome(workCtx, kind, StatusCommitted, start)
	RecordValue(workCtx, g.metricsCollector, MetricCommittedOperations, float64(g.summary.Committed), nil)

	args := []any{logAttrSequence, g.summary.Committed, logAttrOperation, string(kind)}
	args = append(args, result.LogArgs()...)
	args = append(args, logAttrDurationMS, time.Since(start).Milliseconds())
	g.logInfo(logMsgCommitted+string(kind), args...)
}

func (g *Generator) rollback(ctx context.Context, uow UnitOfWork) {
	if err := uow.Rollback(ctx); err != nil {
		g.logError(logMsgRollbackFailed, errors.Join(ErrRollbackFailed, err))
	}
}

func (g *Generator) recordFailure(ctx context.Context, kind OperationKind, start time.Time, msg string, err error) {
	g.summary.Failed++
	g.recordOutcome(ctx, kind, StatusFailed, start)
	g.logError(msg, err, logAttrOperation, string(kind))
}

func (g *Generator) recordOutcome(ctx context.Context, kind OperationKind, status string, start time.Time) {
	IncrementCounter(ctx, g.metricsCollector, MetricOperationsTotal, map[string]string{
		LabelOperation: string(kind),
		LabelStatus:    status,
	})
	RecordDuration(ctx, g.metricsCollector, MetricOperationDurationSeconds, time.Since(start), map[string]string{
		LabelOperation: string(kind),
	})
}

func (g *Generator) logInfo(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Info(msg, args...)
	}
}

func (g *Generator) logDebug(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Debug(msg, args...)
	}
}

func (g *Generator) logError(msg string, err error, args ...any) {
	if g.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		g.logger.Error(msg, allArgs...)
	}
}
