//go:build integration && !windows

package rod_test

import (
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/bisscrape/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Signal 0 probes for the process without affecting it.
func TestSession_Close_KillsLauncherProcess(t *testing.T) {
	t.Parallel()

	session, err := rod.NewSession()
	require.NoError(t, err)

	pid := session.LauncherPID()
	require.NotZero(t, pid, "launcher PID should be set")

	err = syscall.Kill(pid, syscall.Signal(0))
	require.NoError(t, err, "launcher process should be running before Close()")

	err = session.Close()
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	err = syscall.Kill(pid, syscall.Signal(0))
	assert.Error(t, err, "launcher process should be terminated after Close()")
}
