// Copyright © 2026 The vagrant-kubeadm-kubernetes authors

package migrate

import (
	"context"
	"time"

	"github.com/viriatis/vagrant-kubeadm-kubernetes/pkg/constants"
	"github.com/viriatis/vagrant-kubeadm-kubernetes/pkg/utils"
	"github.com/viriatis/vagrant-kubeadm-kubernetes/power"
	"github.com/viriatis/vagrant-kubeadm-kubernetes/vbox"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// GuestVerifier probes one node after migration. Failure is reported as a
// warning and never affects the run's outcome.
type GuestVerifier interface {
	Verify(ctx context.Context, vm string) error
}

// RunSummary accumulates per-VM outcomes across a run.
type RunSummary struct {
	Converted   int
	Skipped     int
	Failed      int
	PoweredDown []string
	Results     []Result
}

func (s *RunSummary) record(res Result) {
	s.Results = append(s.Results, res)
	switch res.Outcome {
	case OutcomeConverted:
		s.Converted++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
}

// Runner sequences the whole migration across the fleet: discovery, power
// convergence, per-VM migration, restart, and best-effort verification.
// Everything runs sequentially; one VM fully completes or fails before the
// next is touched.
type Runner struct {
	VBox      vbox.VBoxOperations
	Converger *power.Converger
	Migrator  *Migrate
	Guest     GuestVerifier

	Pattern   string
	DryRun    bool
	NoRestart bool

	RestartStagger time.Duration
	VerifySettle   time.Duration
}

func NewRunner(ops vbox.VBoxOperations, guest GuestVerifier, pattern string, dryRun, noRestart bool) *Runner {
	return &Runner{
		VBox:           ops,
		Converger:      power.NewConverger(ops, dryRun),
		Migrator:       &Migrate{VBox: ops, DryRun: dryRun},
		Guest:          guest,
		Pattern:        pattern,
		DryRun:         dryRun,
		NoRestart:      noRestart,
		RestartStagger: constants.RestartStagger,
		VerifySettle:   constants.VerifySettle,
	}
}

// Run executes the full fleet migration. The returned error is fatal
// (discovery or power convergence); per-VM failures land in the summary.
func (r *Runner) Run(ctx context.Context) (RunSummary, error) {
	summary := RunSummary{}

	names, err := r.VBox.ListVMs(ctx)
	if err != nil {
		return summary, errors.Wrap(err, "failed to discover VMs")
	}
	vms := utils.FilterByPattern(names, r.Pattern)
	if len(vms) == 0 {
		return summary, errors.Wrapf(ErrNoVMsFound, "pattern %q", r.Pattern)
	}
	logrus.Infof("Found %d VM(s) matching %q", len(vms), r.Pattern)

	report, err := r.Converger.ShutdownAll(ctx, vms)
	if err != nil {
		return summary, err
	}
	summary.PoweredDown = report.PoweredDown
	for _, vm := range vms {
		if reason, ok := report.Skipped[vm]; ok {
			summary.record(Result{VM: vm, Outcome: OutcomeSkipped, Reason: reason})
		}
	}

	for _, vm := range report.Eligible {
		summary.record(r.Migrator.MigrateVM(ctx, vm))
	}

	if r.DryRun {
		logrus.Info("[dry-run] Skipping restart and verification")
		return summary, nil
	}

	if r.NoRestart {
		if len(summary.PoweredDown) > 0 {
			logrus.Infof("Leaving %d VM(s) powered off as requested", len(summary.PoweredDown))
		}
		return summary, nil
	}

	r.restart(ctx, summary.PoweredDown)
	r.verify(ctx, summary)
	return summary, nil
}

func (r *Runner) restart(ctx context.Context, vms []string) {
	for i, vm := range vms {
		if i > 0 {
			time.Sleep(r.RestartStagger)
		}
		logrus.Infof("Starting %s", vm)
		if err := r.VBox.StartVM(ctx, vm); err != nil {
			logrus.Warnf("Failed to start %s: %v", vm, err)
		}
	}
}

// verify probes one representative converted VM after a settle delay. Any
// failure is a warning only.
func (r *Runner) verify(ctx context.Context, summary RunSummary) {
	if r.Guest == nil || summary.Converted == 0 || len(summary.PoweredDown) == 0 {
		return
	}
	var probe string
	for _, res := range summary.Results {
		if res.Outcome == OutcomeConverted {
			probe = res.VM
			break
		}
	}
	if probe == "" {
		return
	}
	logrus.Infof("Waiting %s before verifying guest state on %s", r.VerifySettle, probe)
	time.Sleep(r.VerifySettle)
	if err := r.Guest.Verify(ctx, probe); err != nil {
		logrus.Warnf("Guest verification on %s failed: %v", probe, err)
		return
	}
	logrus.Infof("Guest verification on %s succeeded", probe)
}
