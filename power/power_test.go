// Copyright © 2026 The vagrant-kubeadm-kubernetes authors

package power

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/viriatis/vagrant-kubeadm-kubernetes/vbox"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateAttrs(state string) map[string]string {
	return map[string]string{"VMState": state}
}

func testConverger(ops vbox.VBoxOperations, dryRun bool) *Converger {
	return &Converger{
		VBox:         ops,
		DryRun:       dryRun,
		PollInterval: 5 * time.Millisecond,
		Timeout:      25 * time.Millisecond,
		SettleDelay:  0,
	}
}

// vmStateMachine serves ShowVMInfo answers and flips to "poweroff" when a
// trigger fires, mimicking a guest that honors (or ignores) shutdown.
type vmStateMachine struct {
	mu    sync.Mutex
	state string
}

func (s *vmStateMachine) get() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stateAttrs(s.state)
}

func (s *vmStateMachine) set(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func TestShutdownAllClassification(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockOps := vbox.NewMockVBoxOperations(ctrl)

	running := &vmStateMachine{state: vbox.StateRunning}
	mockOps.EXPECT().ShowVMInfo(gomock.Any(), "vm-running").
		DoAndReturn(func(context.Context, string) (map[string]string, error) {
			return running.get(), nil
		}).AnyTimes()
	mockOps.EXPECT().ShowVMInfo(gomock.Any(), "vm-off").Return(stateAttrs(vbox.StatePowerOff), nil)
	mockOps.EXPECT().ShowVMInfo(gomock.Any(), "vm-saved").Return(stateAttrs(vbox.StateSaved), nil)
	mockOps.EXPECT().ShowVMInfo(gomock.Any(), "vm-paused").Return(stateAttrs("paused"), nil)

	// the running VM honors the ACPI signal
	mockOps.EXPECT().ACPIPowerButton(gomock.Any(), "vm-running").
		DoAndReturn(func(context.Context, string) error {
			running.set(vbox.StatePowerOff)
			return nil
		})

	report, err := testConverger(mockOps, false).ShutdownAll(context.Background(),
		[]string{"vm-running", "vm-off", "vm-saved", "vm-paused"})
	require.NoError(t, err)

	assert.Equal(t, []string{"vm-running", "vm-off", "vm-saved"}, report.Eligible)
	assert.Equal(t, []string{"vm-running"}, report.PoweredDown)
	assert.Equal(t, map[string]string{"vm-paused": "paused"}, report.Skipped)
}

func TestShutdownAllDryRunIssuesNoCommands(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockOps := vbox.NewMockVBoxOperations(ctrl)

	// only the classification query is allowed; an ACPI or forced power-off
	// call would fail the test as an unexpected mock invocation
	mockOps.EXPECT().ShowVMInfo(gomock.Any(), "vm-running").Return(stateAttrs(vbox.StateRunning), nil).Times(1)

	report, err := testConverger(mockOps, true).ShutdownAll(context.Background(), []string{"vm-running"})
	require.NoError(t, err)
	assert.Equal(t, []string{"vm-running"}, report.PoweredDown)
}

func TestShutdownAllEscalatesExactlyOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockOps := vbox.NewMockVBoxOperations(ctrl)

	vm := &vmStateMachine{state: vbox.StateRunning}
	mockOps.EXPECT().ShowVMInfo(gomock.Any(), "vm-stuck").
		DoAndReturn(func(context.Context, string) (map[string]string, error) {
			return vm.get(), nil
		}).AnyTimes()

	// the guest ignores ACPI but a forced power-off lands
	mockOps.EXPECT().ACPIPowerButton(gomock.Any(), "vm-stuck").Return(nil)
	mockOps.EXPECT().PowerOff(gomock.Any(), "vm-stuck").
		DoAndReturn(func(context.Context, string) error {
			vm.set(vbox.StatePowerOff)
			return nil
		}).Times(1)

	report, err := testConverger(mockOps, false).ShutdownAll(context.Background(), []string{"vm-stuck"})
	require.NoError(t, err)
	assert.Equal(t, []string{"vm-stuck"}, report.PoweredDown)
}

func TestShutdownAllFailsWhenForcedOffDoesNotConverge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockOps := vbox.NewMockVBoxOperations(ctrl)

	mockOps.EXPECT().ShowVMInfo(gomock.Any(), "vm-wedged").Return(stateAttrs(vbox.StateRunning), nil).AnyTimes()
	mockOps.EXPECT().ACPIPowerButton(gomock.Any(), "vm-wedged").Return(nil)
	mockOps.EXPECT().PowerOff(gomock.Any(), "vm-wedged").Return(nil).Times(1)

	_, err := testConverger(mockOps, false).ShutdownAll(context.Background(), []string{"vm-wedged"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConvergence))
}

func TestShutdownAllSkipsOnStateQueryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockOps := vbox.NewMockVBoxOperations(ctrl)

	mockOps.EXPECT().ShowVMInfo(gomock.Any(), "vm-broken").Return(nil, errors.New("boom"))

	report, err := testConverger(mockOps, false).ShutdownAll(context.Background(), []string{"vm-broken"})
	require.NoError(t, err)
	assert.Empty(t, report.Eligible)
	assert.Contains(t, report.Skipped, "vm-broken")
}
