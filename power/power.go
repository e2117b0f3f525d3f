// Copyright © 2026 The vagrant-kubeadm-kubernetes authors

package power

import (
	"context"
	"time"

	"github.com/viriatis/vagrant-kubeadm-kubernetes/pkg/constants"
	"github.com/viriatis/vagrant-kubeadm-kubernetes/vbox"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/wait"
)

// ErrConvergence means at least one VM refused to power off even after the
// forced escalation. The run must abort: reattaching disks of a running VM
// corrupts guest state.
var ErrConvergence = errors.New("power convergence failed")

// ShutdownReport is the outcome of driving a fleet toward poweroff.
type ShutdownReport struct {
	// Eligible lists VMs that are off (or were already off) and may be
	// migrated, in discovery order.
	Eligible []string
	// PoweredDown lists the subset of Eligible this run shut down itself.
	// Only these are restarted afterwards.
	PoweredDown []string
	// Skipped maps VMs left untouched to the raw state that excluded them.
	Skipped map[string]string
}

// Converger drives running VMs to a powered-off state: graceful ACPI signal
// first, bounded polling, then a single forced power-off per straggler.
type Converger struct {
	VBox         vbox.VBoxOperations
	DryRun       bool
	PollInterval time.Duration
	Timeout      time.Duration
	SettleDelay  time.Duration
}

func NewConverger(ops vbox.VBoxOperations, dryRun bool) *Converger {
	return &Converger{
		VBox:         ops,
		DryRun:       dryRun,
		PollInterval: constants.PowerPollInterval,
		Timeout:      constants.PowerOffTimeout,
		SettleDelay:  constants.ForcedOffSettle,
	}
}

// ShutdownAll classifies every VM, signals the running ones, and waits for
// the fleet to converge. In dry-run mode classification is logged and the
// wait is skipped entirely.
func (c *Converger) ShutdownAll(ctx context.Context, vms []string) (ShutdownReport, error) {
	report := ShutdownReport{Skipped: make(map[string]string)}

	for _, vm := range vms {
		state, err := c.vmState(ctx, vm)
		if err != nil {
			logrus.Warnf("Could not determine state of %s, skipping: %v", vm, err)
			report.Skipped[vm] = "state query failed"
			continue
		}

		switch state {
		case vbox.StateRunning:
			if c.DryRun {
				logrus.Infof("[dry-run] Would send ACPI power signal to %s", vm)
			} else {
				logrus.Infof("Sending ACPI power signal to %s", vm)
				if err := c.VBox.ACPIPowerButton(ctx, vm); err != nil {
					// The poll below catches a VM that ignored the signal
					// and escalates to a forced power-off.
					logrus.Warnf("ACPI signal to %s failed: %v", vm, err)
				}
			}
			report.Eligible = append(report.Eligible, vm)
			report.PoweredDown = append(report.PoweredDown, vm)
		case vbox.StatePowerOff, vbox.StateSaved:
			logrus.Infof("%s is already off (%s)", vm, state)
			report.Eligible = append(report.Eligible, vm)
		default:
			logrus.Infof("%s is in state %q, leaving untouched", vm, state)
			report.Skipped[vm] = state
		}
	}

	if c.DryRun || len(report.PoweredDown) == 0 {
		return report, nil
	}

	if err := c.waitForPowerOff(ctx, report.PoweredDown); err != nil {
		return report, err
	}
	return report, nil
}

func (c *Converger) vmState(ctx context.Context, vm string) (string, error) {
	attrs, err := c.VBox.ShowVMInfo(ctx, vm)
	if err != nil {
		return "", err
	}
	return attrs["VMState"], nil
}

func (c *Converger) isOff(ctx context.Context, vm string) (bool, error) {
	state, err := c.vmState(ctx, vm)
	if err != nil {
		return false, err
	}
	return state == vbox.StatePowerOff || state == vbox.StateSaved, nil
}

// waitForPowerOff polls the tracked VMs together each interval until all
// are off or the bound elapses, then escalates with exactly one forced
// power-off per straggler and re-verifies after a settle delay.
func (c *Converger) waitForPowerOff(ctx context.Context, vms []string) error {
	logrus.Infof("Waiting up to %s for %d VM(s) to power off", c.Timeout, len(vms))

	err := wait.PollUntilContextTimeout(ctx, c.PollInterval, c.Timeout, true,
		func(ctx context.Context) (bool, error) {
			for _, vm := range vms {
				off, err := c.isOff(ctx, vm)
				if err != nil {
					logrus.Warnf("State check for %s failed: %v", vm, err)
					return false, nil
				}
				if !off {
					return false, nil
				}
			}
			return true, nil
		})
	if err == nil {
		logrus.Info("All VMs powered off")
		return nil
	}
	if ctx.Err() != nil {
		return errors.Wrap(ctx.Err(), "power-off wait interrupted")
	}

	// Escalation: one forced power-off per VM still on.
	forced := false
	for _, vm := range vms {
		off, err := c.isOff(ctx, vm)
		if err == nil && off {
			continue
		}
		logrus.Warnf("%s did not shut down in time, forcing power off", vm)
		if err := c.VBox.PowerOff(ctx, vm); err != nil {
			logrus.Errorf("Forced power off of %s failed: %v", vm, err)
		}
		forced = true
	}
	if forced {
		time.Sleep(c.SettleDelay)
	}

	var stillOn []string
	for _, vm := range vms {
		off, err := c.isOff(ctx, vm)
		if err != nil || !off {
			stillOn = append(stillOn, vm)
		}
	}
	if len(stillOn) > 0 {
		return errors.Wrapf(ErrConvergence, "VMs still running after forced power off: %v", stillOn)
	}
	logrus.Info("All VMs powered off after escalation")
	return nil
}
