package observability_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/tape"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func busyBeaver2(t *testing.T) *domain.Program {
	t.Helper()
	table, err := compiler.NewParser().ParseLines([]string{
		"A 0 B 1 R",
		"A 1 B 1 L",
		"B 0 A 1 L",
		"B 1 H 1 R",
	})
	require.NoError(t, err)
	return &domain.Program{
		Name:       "bb2",
		Initial:    "A",
		Blank:      "0",
		Halting:    domain.NewStateSet("H"),
		TapeLength: 2,
		Table:      table,
	}
}

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics("")
	eng, err := runtime.NewFromProgram(busyBeaver2(t),
		runtime.WithLifecycleHooks(m.Hooks()),
		runtime.WithChunkSize(1),
	)
	require.NoError(t, err)

	out, err := eng.Run(100, nil)
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeHalted, out.Kind)

	assert.Equal(t, 6.0, testutil.ToFloat64(m.Steps.WithLabelValues("bb2")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Outcomes.WithLabelValues("bb2", "halted")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Outcomes.WithLabelValues("bb2", "budget_exceeded")))

	grown := testutil.ToFloat64(m.TapeGrowth.WithLabelValues("bb2", "front")) +
		testutil.ToFloat64(m.TapeGrowth.WithLabelValues("bb2", "back"))
	assert.Equal(t, float64(eng.Tape().Len()-2), grown, "growth counter matches materialized cells")
}

func TestMetrics_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics("test")

	require.NoError(t, m.Register(reg))
	require.NoError(t, m.Register(reg), "registering twice is tolerated")

	m.Steps.WithLabelValues("x").Inc()
	count, err := testutil.GatherAndCount(reg, "test_steps_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	hooks := observability.NewMetrics("").Hooks().Merge(observability.LogHooks(logger))
	tp := tape.New(1, "0")
	table, err := compiler.NewParser().ParseLines([]string{"A 0 H 1 R"})
	require.NoError(t, err)

	eng := runtime.NewEngine("A", tp, table, domain.NewStateSet("H"),
		runtime.WithLifecycleHooks(hooks),
		runtime.WithName("one"),
	)
	_, err = eng.Run(10, nil)
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, "msg=step")
	assert.Contains(t, logs, "move=R")
	assert.Contains(t, logs, "msg=outcome")
	assert.Equal(t, 1, strings.Count(logs, "kind=halted"))
}
