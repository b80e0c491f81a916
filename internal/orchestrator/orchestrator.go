// Package orchestrator runs the generators in dependency order and hands
// their records to a sink. Every phase is retried as a whole when the sink
// reports a unique-constraint violation.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/Rana718/demoseed/internal/generator"
	"github.com/Rana718/demoseed/internal/registry"
	"github.com/Rana718/demoseed/internal/sink"
	"github.com/Rana718/demoseed/internal/types"
)

var ErrRetriesExhausted = errors.New("retries exhausted")

// PhaseError reports the phase a run stopped in.
type PhaseError struct {
	Phase     string
	Attempts  int
	Exhausted bool
	Err       error
}

func (e *PhaseError) Error() string {
	if e.Exhausted {
		return fmt.Sprintf("phase %s failed after %d attempts: %v", e.Phase, e.Attempts, e.Err)
	}
	return fmt.Sprintf("phase %s failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

func (e *PhaseError) Is(target error) bool {
	return e.Exhausted && target == ErrRetriesExhausted
}

type Orchestrator struct {
	opts     Options
	sink     sink.Sink
	log      zerolog.Logger
	reporter Reporter
	now      func() time.Time
	sleep    func(context.Context, time.Duration) error
	setup    func(*generator.Env)
}

type Option func(*Orchestrator)

func WithLogger(log zerolog.Logger) Option {
	return func(o *Orchestrator) { o.log = log }
}

func WithReporter(r Reporter) Option {
	return func(o *Orchestrator) { o.reporter = r }
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithEnvSetup calls setup on the generation env before the first phase.
func WithEnvSetup(setup func(*generator.Env)) Option {
	return func(o *Orchestrator) { o.setup = setup }
}

// WithSleep replaces the backoff wait between attempts.
func WithSleep(sleep func(context.Context, time.Duration) error) Option {
	return func(o *Orchestrator) { o.sleep = sleep }
}

func New(opts Options, s sink.Sink, options ...Option) (*Orchestrator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: sink is required", ErrInvalidOptions)
	}

	o := &Orchestrator{
		opts:     opts,
		sink:     s,
		log:      zerolog.Nop(),
		reporter: nopReporter{},
		now:      time.Now,
		sleep:    sleepContext,
	}
	for _, opt := range options {
		opt(o)
	}
	return o, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run executes every phase in order. The returned Summary is never nil;
// on failure it covers the phases committed so far.
func (o *Orchestrator) Run(ctx context.Context) (*Summary, error) {
	start := o.now()
	seed := o.opts.Seed
	if seed == 0 {
		seed = start.UnixNano()
	}

	summary := &Summary{RunID: xid.New(), Seed: seed, StartedAt: start, Dataset: &Dataset{}}
	log := o.log.With().Str("run_id", summary.RunID.String()).Logger()
	log.Info().
		Int64("seed", seed).
		Int("employees", o.opts.EmployeeCount()).
		Int("customers", o.opts.CustomerCount()).
		Msg("generation started")

	env := generator.NewEnv(registry.New(), seed, start)
	if o.setup != nil {
		o.setup(env)
	}
	defer func() {
		summary.Stats = env.Registry.Stats()
		summary.Duration = o.now().Sub(start)
	}()

	var written []string
	for _, p := range phases {
		result, tables, err := o.runPhase(ctx, log, env, p, summary.Dataset, written)
		summary.Phases = append(summary.Phases, result)
		if err != nil {
			return summary, err
		}
		summary.Tables = append(summary.Tables, tables...)
		for _, t := range tables {
			written = append(written, t.Table)
		}
	}

	log.Info().Int("rows", summary.TotalRows()).Msg("generation finished")
	return summary, nil
}

func (o *Orchestrator) runPhase(ctx context.Context, log zerolog.Logger, env *generator.Env, p phase, data *Dataset, written []string) (PhaseResult, []TableCount, error) {
	log = log.With().Int("phase", p.number).Str("name", p.name).Logger()
	result := PhaseResult{Number: p.number, Name: p.name}
	started := o.now()
	snapshot := env.Registry.Clone()

	fail := func(err error, exhausted bool) (PhaseResult, []TableCount, error) {
		env.Registry = snapshot
		result.Duration = o.now().Sub(started)
		result.Error = err.Error()
		o.reporter.Report(Event{Kind: EventPhaseFailed, Phase: p.number, Name: p.name, Attempt: result.Attempts, Elapsed: result.Duration, Err: err})
		log.Error().Err(err).Int("attempts", result.Attempts).Msg("phase failed")
		return result, nil, &PhaseError{Phase: p.name, Attempts: result.Attempts, Exhausted: exhausted, Err: err}
	}

	o.reporter.Report(Event{Kind: EventPhaseStarted, Phase: p.number, Name: p.name, Attempt: 1})
	for n := 1; ; n++ {
		result.Attempts = n
		env.Registry = snapshot.Clone()
		for _, c := range p.categories {
			env.Unique.Reset(c)
		}

		staged := *data
		tables, err := o.attempt(ctx, env, p, n, &staged, written)
		if err == nil {
			*data = staged
			result.Duration = o.now().Sub(started)
			o.reporter.Report(Event{Kind: EventPhaseCompleted, Phase: p.number, Name: p.name, Attempt: n, Elapsed: result.Duration})
			log.Info().Int("attempts", n).Dur("elapsed", result.Duration).Msg("phase completed")
			return result, tables, nil
		}

		if ctx.Err() != nil || !sink.IsUniqueViolation(err) {
			return fail(err, false)
		}
		if n >= o.opts.Retry.MaxAttempts {
			return fail(err, true)
		}

		log.Warn().Err(err).Int("attempt", n).Dur("backoff", o.opts.Retry.Backoff).Msg("unique violation, retrying phase")
		o.reporter.Report(Event{Kind: EventPhaseRetry, Phase: p.number, Name: p.name, Attempt: n + 1, Err: err})
		if err := o.sleep(ctx, o.opts.Retry.Backoff); err != nil {
			return fail(err, false)
		}
	}
}

// attempt is the state of one try at a phase.
type attempt struct {
	ctx       context.Context
	env       *generator.Env
	sink      sink.Sink
	batchSize int
	employees int
	customers int

	phase     phase
	number    int
	committed []string
	tables    []TableCount
	report    Reporter
}

// checkOrder fails when table would be written before a table it
// references.
func (a *attempt) checkOrder(table string) error {
	order := append([]string(nil), a.committed...)
	for _, t := range a.tables {
		order = append(order, t.Table)
	}
	return types.CheckOrder(append(order, table))
}

func (a *attempt) persisted(database, table string, rows int) {
	a.tables = append(a.tables, TableCount{Database: database, Table: table, Rows: rows})
	a.report.Report(Event{Kind: EventTablePersisted, Phase: a.phase.number, Name: a.phase.name, Attempt: a.number,
		Database: database, Table: table, Rows: rows})
}

// attempt runs p once. With a transactional sink the whole attempt is one
// transaction.
func (o *Orchestrator) attempt(ctx context.Context, env *generator.Env, p phase, n int, data *Dataset, committed []string) ([]TableCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a := &attempt{
		ctx:       ctx,
		env:       env,
		sink:      o.sink,
		batchSize: o.opts.BatchSize,
		employees: o.opts.EmployeeCount(),
		customers: o.opts.CustomerCount(),
		phase:     p,
		number:    n,
		committed: committed,
		report:    o.reporter,
	}

	ts, ok := o.sink.(sink.TxSink)
	if !ok {
		if err := p.run(a, data); err != nil {
			return nil, err
		}
		return a.tables, nil
	}

	tx, err := ts.Begin(ctx)
	if err != nil {
		return nil, err
	}
	a.sink = tx
	if err := p.run(a, data); err != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			o.log.Warn().Err(rbErr).Str("phase", p.name).Msg("rollback failed")
		}
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return a.tables, nil
}
