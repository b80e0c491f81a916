package orchestrator

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Rana718/demoseed/internal/generator"
	"github.com/Rana718/demoseed/internal/sink"
	"github.com/Rana718/demoseed/internal/sink/mocks"
	"github.com/Rana718/demoseed/internal/types"
	"github.com/Rana718/demoseed/internal/unique"
)

var testNow = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

func testOptions(seed int64) Options {
	opts := DefaultOptions()
	opts.ScaleFactor = 0.1
	opts.Seed = seed
	opts.BatchSize = 50
	return opts
}

type sleepRecorder struct {
	calls []time.Duration
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.calls = append(s.calls, d)
	return nil
}

func newTestOrchestrator(t *testing.T, opts Options, s sink.Sink, extra ...Option) (*Orchestrator, *sleepRecorder) {
	t.Helper()
	rec := &sleepRecorder{}
	o, err := New(opts, s, append([]Option{WithClock(func() time.Time { return testNow }), WithSleep(rec.sleep)}, extra...)...)
	require.NoError(t, err)
	return o, rec
}

var uniqueViolation = &sink.PersistenceError{Kind: sink.KindUniqueViolation, Database: types.AccountsDB, Table: types.TableAccounts,
	Err: errors.New("duplicate key value violates unique constraint \"accounts_account_number_key\"")}

// failingSink forwards to a memory sink and fails the first failures
// inserts into one table.
func failingSink(ctrl *gomock.Controller, mem *sink.Memory, table string, failures int, err error) *mocks.MockSink {
	m := mocks.NewMockSink(ctrl)
	m.EXPECT().InsertBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, database, tbl string, rows []sink.Row) error {
			if tbl == table && failures > 0 {
				failures--
				return err
			}
			return mem.InsertBatch(ctx, database, tbl, rows)
		}).AnyTimes()
	return m
}

func TestRunEndToEnd(t *testing.T) {
	mem := sink.NewMemory(types.UniqueKeys)
	var events []Event
	o, rec := newTestOrchestrator(t, testOptions(42), mem, WithReporter(ReporterFunc(func(e Event) { events = append(events, e) })))

	summary, err := o.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Empty(t, rec.calls)
	assert.EqualValues(t, 42, summary.Seed)

	require.Len(t, summary.Phases, 6)
	for i, p := range summary.Phases {
		assert.Equal(t, i+1, p.Number)
		assert.Equal(t, PhaseNames()[i], p.Name)
		assert.Equal(t, 1, p.Attempts)
		assert.Empty(t, p.Error)
	}

	d := summary.Dataset
	assert.Len(t, d.Employees, 15)
	assert.Len(t, d.Customers, 120)
	assert.Equal(t, 15, summary.Stats.Employees)
	assert.Equal(t, 120, summary.Stats.Customers)
	assert.Equal(t, len(d.Accounts), summary.Stats.Accounts)
	assert.Equal(t, len(d.Loans), summary.Stats.Loans)

	for _, db := range types.Databases() {
		for _, table := range types.Schema[db] {
			assert.Equal(t, mem.Count(db, table), summary.Rows(db, table), "%s.%s", db, table)
		}
	}
	assert.Len(t, summary.Tables, 22)
	assert.Equal(t, len(d.Transactions), mem.Count(types.AccountsDB, types.TableTransactions))

	approved := make(map[string]bool)
	for _, a := range d.Applications {
		approved[a.ID] = a.Approved()
	}
	for _, l := range d.Loans {
		assert.True(t, approved[l.ApplicationID], "loan %s follows an approved application", l.ID)
	}
	if summary.Stats.ApprovedApplications == 0 {
		assert.Empty(t, d.Loans)
	}

	started, completed, persisted := 0, 0, 0
	var order []string
	for _, e := range events {
		switch e.Kind {
		case EventPhaseStarted:
			started++
		case EventPhaseCompleted:
			completed++
		case EventTablePersisted:
			persisted++
			order = append(order, e.Table)
		case EventPhaseRetry, EventPhaseFailed:
			t.Errorf("unexpected event %s", e.Kind)
		}
	}
	assert.Equal(t, 6, started)
	assert.Equal(t, 6, completed)
	assert.Equal(t, 22, persisted)
	assert.NoError(t, types.CheckOrder(order), "tables are written after the tables they reference")
}

func TestRunIsDeterministicForASeed(t *testing.T) {
	run := func() *Summary {
		o, _ := newTestOrchestrator(t, testOptions(7), sink.NewMemory(types.UniqueKeys))
		summary, err := o.Run(context.Background())
		require.NoError(t, err)
		return summary
	}

	a, b := run(), run()
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.Stats, b.Stats)
	assert.Equal(t, a.Tables, b.Tables)
	assert.Equal(t, a.Dataset.Employees, b.Dataset.Employees)
	assert.Equal(t, a.Dataset.Loans, b.Dataset.Loans)
}

func TestRunRetriesOnUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		failures int
		attempts int
	}{
		{"first attempt fails", 1, 2},
		{"two attempts fail", 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mem := sink.NewMemory(types.UniqueKeys)
			var retries []Event
			o, rec := newTestOrchestrator(t, testOptions(42), failingSink(ctrl, mem, types.TableAccounts, tt.failures, uniqueViolation),
				WithReporter(ReporterFunc(func(e Event) {
					if e.Kind == EventPhaseRetry {
						retries = append(retries, e)
					}
				})))

			summary, err := o.Run(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.attempts, summary.Phases[2].Attempts)
			assert.Equal(t, "accounts", summary.Phases[2].Name)
			assert.Len(t, rec.calls, tt.failures)
			for _, d := range rec.calls {
				assert.Equal(t, DefaultBackoff, d)
			}
			require.Len(t, retries, tt.failures)
			assert.Equal(t, 2, retries[0].Attempt)

			assert.Equal(t, len(summary.Dataset.Accounts), summary.Stats.Accounts, "failed attempts leave no registry residue")
			assert.Equal(t, len(summary.Dataset.Accounts), mem.Count(types.AccountsDB, types.TableAccounts))
		})
	}
}

func TestRunGivesUpAfterMaxAttempts(t *testing.T) {
	ctrl := gomock.NewController(t)
	mem := sink.NewMemory(types.UniqueKeys)
	o, rec := newTestOrchestrator(t, testOptions(42), failingSink(ctrl, mem, types.TableAccounts, 1000, uniqueViolation))

	summary, err := o.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.True(t, sink.IsUniqueViolation(err))

	var pe *PhaseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "accounts", pe.Phase)
	assert.Equal(t, 3, pe.Attempts)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Len(t, rec.calls, 2)

	require.Len(t, summary.Phases, 3)
	assert.Equal(t, 3, summary.Phases[2].Attempts)
	assert.NotEmpty(t, summary.Phases[2].Error)

	assert.Equal(t, 120, mem.Count(types.AccountsDB, types.TableCustomers), "committed phases are kept")
	assert.Zero(t, mem.Count(types.AccountsDB, types.TableAccounts))
	assert.Zero(t, summary.Stats.Accounts)
	assert.Equal(t, 120, summary.Stats.Customers)
	assert.Zero(t, summary.Rows(types.AccountsDB, types.TableAccounts))
}

func TestRunAbortsOnOtherErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	mem := sink.NewMemory(types.UniqueKeys)
	boom := &sink.PersistenceError{Kind: sink.KindOther, Database: types.EmployeesDB, Table: types.TableDepartments, Err: errors.New("connection refused")}
	o, rec := newTestOrchestrator(t, testOptions(42), failingSink(ctrl, mem, types.TableDepartments, 1, boom))

	summary, err := o.Run(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRetriesExhausted)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, rec.calls)

	var pe *PhaseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "employees", pe.Phase)
	assert.Equal(t, 1, pe.Attempts)
	require.Len(t, summary.Phases, 1)
	assert.Zero(t, summary.Stats.Employees)
}

// cyclingSource repeats the first period values of a seeded source, so the
// generators run out of distinct phone numbers.
type cyclingSource struct {
	values []int64
	next   int
}

func newCyclingSource(seed int64, period int) *cyclingSource {
	src := rand.NewSource(seed)
	values := make([]int64, period)
	for i := range values {
		values[i] = src.Int63()
	}
	return &cyclingSource{values: values}
}

func (s *cyclingSource) Int63() int64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *cyclingSource) Seed(int64) {}

func TestRunAbortsOnUniqueValueExhaustion(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockSink(ctrl)
	m.EXPECT().InsertBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	opts := testOptions(42)
	employees := 200
	opts.Employees = &employees

	var events []Event
	o, rec := newTestOrchestrator(t, opts, m,
		WithEnvSetup(func(env *generator.Env) { env.Rand = rand.New(newCyclingSource(42, 16)) }),
		WithReporter(ReporterFunc(func(e Event) { events = append(events, e) })))

	summary, err := o.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, unique.ErrExhausted)
	assert.NotErrorIs(t, err, ErrRetriesExhausted)
	assert.False(t, sink.IsUniqueViolation(err))
	assert.Empty(t, rec.calls, "exhaustion is not retried")

	var pe *PhaseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "employees", pe.Phase)
	assert.Equal(t, 1, pe.Attempts)
	assert.False(t, pe.Exhausted)

	var exhausted *unique.ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, generator.CategoryEmployeePhone, exhausted.Category)

	require.Len(t, summary.Phases, 1)
	assert.Equal(t, 1, summary.Phases[0].Attempts)
	assert.Zero(t, summary.Stats.Employees)
	assert.Zero(t, summary.Stats.Departments)
	for _, e := range events {
		assert.NotEqual(t, EventPhaseRetry, e.Kind)
	}
	require.NotEmpty(t, events)
	assert.Equal(t, EventPhaseFailed, events[len(events)-1].Kind)
}

func TestRunStopsOnCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	mem := sink.NewMemory(types.UniqueKeys)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := mocks.NewMockSink(ctrl)
	m.EXPECT().InsertBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, database, table string, rows []sink.Row) error {
			if table == types.TableCustomers {
				cancel()
			}
			return mem.InsertBatch(ctx, database, table, rows)
		}).AnyTimes()

	o, rec := newTestOrchestrator(t, testOptions(42), m)
	summary, err := o.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrRetriesExhausted)
	assert.Empty(t, rec.calls)

	require.Len(t, summary.Phases, 2)
	assert.Equal(t, 1, summary.Phases[1].Attempts)
	assert.Equal(t, 15, mem.Count(types.EmployeesDB, types.TableEmployees))
}

func TestRunWithCancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	mem := sink.NewMemory(types.UniqueKeys)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o, err := New(testOptions(42), failingSink(ctrl, mem, types.TableDepartments, 1, uniqueViolation),
		WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)

	// a cancelled context stops the run before the first insert
	_, err = o.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))
}

func TestRunRollsBackFailedTransactions(t *testing.T) {
	ctrl := gomock.NewController(t)
	mem := sink.NewMemory(types.UniqueKeys)

	failed := mocks.NewMockTx(ctrl)
	failed.EXPECT().InsertBatch(gomock.Any(), types.EmployeesDB, types.TableDepartments, gomock.Any()).Return(uniqueViolation)
	failed.EXPECT().Rollback(gomock.Any()).Return(nil)

	ts := mocks.NewMockTxSink(ctrl)
	first := true
	ts.EXPECT().Begin(gomock.Any()).DoAndReturn(func(ctx context.Context) (sink.Tx, error) {
		if first {
			first = false
			return failed, nil
		}
		return mem.Begin(ctx)
	}).Times(7)

	o, rec := newTestOrchestrator(t, testOptions(42), ts)
	summary, err := o.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Phases[0].Attempts)
	assert.Len(t, rec.calls, 1)
	assert.Equal(t, len(summary.Dataset.Departments), mem.Count(types.EmployeesDB, types.TableDepartments))
}

func TestNewValidatesOptions(t *testing.T) {
	neg := -1
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero scale", func(o *Options) { o.ScaleFactor = 0 }},
		{"negative scale", func(o *Options) { o.ScaleFactor = -0.5 }},
		{"zero batch", func(o *Options) { o.BatchSize = 0 }},
		{"no attempts", func(o *Options) { o.Retry.MaxAttempts = 0 }},
		{"negative backoff", func(o *Options) { o.Retry.Backoff = -time.Second }},
		{"negative employees", func(o *Options) { o.Employees = &neg }},
		{"negative customers", func(o *Options) { o.Customers = &neg }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			_, err := New(opts, sink.NewMemory(nil))
			assert.ErrorIs(t, err, ErrInvalidOptions)
		})
	}

	_, err := New(DefaultOptions(), nil)
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestCounts(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 150, opts.EmployeeCount())
	assert.Equal(t, 1200, opts.CustomerCount())

	opts.ScaleFactor = 0.1
	assert.Equal(t, 15, opts.EmployeeCount())
	assert.Equal(t, 120, opts.CustomerCount())

	employees, customers := 3, 0
	opts.Employees, opts.Customers = &employees, &customers
	assert.Equal(t, 3, opts.EmployeeCount())
	assert.Equal(t, 0, opts.CustomerCount())
}
