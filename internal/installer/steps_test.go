package installer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armando-rios/dev-setup/internal/errdefs"
)

func drain(progress chan ProgressMsg) []ProgressMsg {
	var msgs []ProgressMsg
	for {
		select {
		case msg := <-progress:
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

func TestRunPhaseEmitsSnapshots(t *testing.T) {
	progress := make(chan ProgressMsg, 16)
	steps := []Step{
		{Label: "first", Run: func(ctx context.Context) error { return nil }},
		{Label: "second", Run: func(ctx context.Context) error { return nil }},
	}

	res := RunPhase(context.Background(), PhaseBaseInstall, steps, progress)
	require.True(t, res.Success)

	msgs := drain(progress)
	require.Len(t, msgs, 4)

	assert.Equal(t, StatusCurrent, msgs[0].Steps[0].Status)
	assert.Equal(t, StatusPending, msgs[0].Steps[1].Status)
	assert.Equal(t, StatusCompleted, msgs[1].Steps[0].Status)
	assert.Equal(t, StatusCurrent, msgs[2].Steps[1].Status)
	assert.Equal(t, StatusCompleted, msgs[3].Steps[1].Status)

	for _, msg := range msgs {
		assert.Equal(t, PhaseBaseInstall, msg.Phase)
		assert.False(t, msg.Done)
		assert.NoError(t, msg.Err)
	}
}

func TestRunPhaseSnapshotsAreIndependent(t *testing.T) {
	progress := make(chan ProgressMsg, 16)
	steps := []Step{
		{Label: "only", Run: func(ctx context.Context) error { return nil }},
	}

	RunPhase(context.Background(), PhasePostConfig, steps, progress)
	msgs := drain(progress)
	require.Len(t, msgs, 2)

	// Mutating an emitted snapshot must not leak into other snapshots.
	msgs[1].Steps[0].Status = StatusError
	assert.Equal(t, StatusCurrent, msgs[0].Steps[0].Status)
}

func TestRunPhaseFailureStopsPipeline(t *testing.T) {
	progress := make(chan ProgressMsg, 16)
	thirdRan := false
	steps := []Step{
		{Label: "first", Run: func(ctx context.Context) error { return nil }},
		{Label: "second", Run: func(ctx context.Context) error { return errors.New("device busy") }},
		{Label: "third", Run: func(ctx context.Context) error { thirdRan = true; return nil }},
	}

	res := RunPhase(context.Background(), PhaseBaseInstall, steps, progress)
	require.False(t, res.Success)
	assert.Equal(t, "second: device busy", res.Reason)
	assert.False(t, thirdRan)

	msgs := drain(progress)
	require.Len(t, msgs, 4)

	last := msgs[len(msgs)-1]
	assert.True(t, last.Done)
	assert.Equal(t, StatusCompleted, last.Steps[0].Status)
	assert.Equal(t, StatusError, last.Steps[1].Status)
	assert.Equal(t, StatusPending, last.Steps[2].Status)

	var stepErr *errdefs.StepError
	require.ErrorAs(t, last.Err, &stepErr)
	assert.Equal(t, "second", stepErr.Label)
	assert.Equal(t, "device busy", stepErr.Detail)
}

func TestRunPhaseCancelledContext(t *testing.T) {
	progress := make(chan ProgressMsg, 16)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	steps := []Step{
		{Label: "never", Run: func(ctx context.Context) error { ran = true; return nil }},
	}

	res := RunPhase(ctx, PhaseDotfiles, steps, progress)
	require.False(t, res.Success)
	assert.False(t, ran)
	assert.Equal(t, "never: cancelled", res.Reason)

	msgs := drain(progress)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].Done)
	assert.Equal(t, StatusError, msgs[0].Steps[0].Status)
}

func TestInstallPhaseString(t *testing.T) {
	assert.Equal(t, "System checks", PhaseSystemChecks.String())
	assert.Equal(t, "Base installation", PhaseBaseInstall.String())
	assert.Equal(t, "System configuration", PhasePostConfig.String())
	assert.Equal(t, "Software installation", PhaseSoftware.String())
	assert.Equal(t, "Dotfiles setup", PhaseDotfiles.String())
	assert.Equal(t, "Complete", PhaseComplete.String())
	assert.Equal(t, "Unknown", InstallPhase(99).String())
}
