package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func Test_App_IntervalDefault(t *testing.T) {
	app := newApp(&bytes.Buffer{})

	var intervalFlag *cli.Float64Flag
	for _, f := range app.Flags {
		if candidate, ok := f.(*cli.Float64Flag); ok && candidate.Name == flagInterval {
			intervalFlag = candidate
		}
	}

	require.NotNil(t, intervalFlag)
	assert.InDelta(t, 3.0, intervalFlag.Value, 0)
	assert.Equal(t, []string{"PRODUCER_INTERVAL"}, intervalFlag.EnvVars)
}

func Test_App_InvalidModeExitsWithFailure(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CDC_MODE", "MYSQL")

	err := newApp(&bytes.Buffer{}).Run([]string{appName})

	require.Error(t, err)
	assert.Equal(t, exitFailure, exitCode(err))
	assert.Contains(t, err.Error(), "invalid CDC_MODE")
}

func Test_App_NegativeIntervalExitsWithFailure(t *testing.T) {
	err := newApp(&bytes.Buffer{}).Run([]string{appName, "--interval=-1"})

	require.Error(t, err)
	assert.Equal(t, exitFailure, exitCode(err))
}

func Test_App_OutOfRangeIntervalExitsWithFailure(t *testing.T) {
	for _, arg := range []string{"--interval=1e12", "--interval=NaN", "--interval=+Inf"} {
		t.Run(arg, func(t *testing.T) {
			err := newApp(&bytes.Buffer{}).Run([]string{appName, arg})

			require.Error(t, err)
			assert.Equal(t, exitFailure, exitCode(err))
			assert.NotContains(t, err.Error(), "negative")
		})
	}
}

func Test_ParseInterval(t *testing.T) {
	interval, err := parseInterval(0.25)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, interval)

	interval, err = parseInterval(0)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), interval)

	_, err = parseInterval(maxIntervalSeconds)
	assert.Error(t, err)
}

func Test_App_InterruptWhileConnectingExitsCleanly(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "1")
	t.Setenv("CONNECT_MAX_ATTEMPTS", "3")
	t.Setenv("CONNECT_RETRY_DELAY", "1h")
	t.Setenv("CONNECT_TIMEOUT", "1s")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.AfterFunc(200*time.Millisecond, cancel)

	var out bytes.Buffer
	err := newApp(&out).RunContext(ctx, []string{appName})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "failed to connect")
	assert.Contains(t, out.String(), "stopped before a database connection was established")
	assert.NotContains(t, out.String(), "max retries reached")
}

func Test_App_UnreachableDatabaseExitsWithFailure(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "1")
	t.Setenv("CONNECT_MAX_ATTEMPTS", "2")
	t.Setenv("CONNECT_RETRY_DELAY", "10ms")
	t.Setenv("CONNECT_TIMEOUT", "1s")

	var out bytes.Buffer
	err := newApp(&out).Run([]string{appName, "--interval", "0.5"})

	require.Error(t, err)
	assert.Equal(t, exitFailure, exitCode(err))
	assert.Contains(t, out.String(), "connecting to database")
	assert.Contains(t, out.String(), "max retries reached")
}

func Test_ExitCode(t *testing.T) {
	assert.Equal(t, 3, exitCode(cli.Exit("custom", 3)))
	assert.Equal(t, exitFailure, exitCode(errors.New("plain")))
}
