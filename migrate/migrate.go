// Copyright © 2026 The vagrant-kubeadm-kubernetes authors

package migrate

import (
	"context"
	"fmt"

	"github.com/viriatis/vagrant-kubeadm-kubernetes/pkg/constants"
	"github.com/viriatis/vagrant-kubeadm-kubernetes/vbox"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Outcome string

const (
	OutcomeConverted Outcome = "converted"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
)

// Result records one VM's migration outcome for the run summary.
type Result struct {
	VM      string
	Outcome Outcome
	Reason  string
}

// Plan is the per-VM placement snapshot derived from a fresh topology
// query. It is transient and read-only; every invocation recomputes it, so a
// run that crashed halfway is classified correctly on the next attempt and
// only the remaining work is performed.
type Plan struct {
	OSDisk            *vbox.DiskAttachment
	DataDisk          *vbox.DiskAttachment
	TargetName        string
	TargetExists      bool
	OSAlreadyMigrated bool
	HasUnmigratedData bool
}

// Migrate reattaches a VM's disks from the emulated SATA controller to a
// VirtIO-SCSI controller. Any hypervisor failure aborts that VM's migration
// where it stands; there is no rollback, re-running the tool resumes.
type Migrate struct {
	VBox   vbox.VBoxOperations
	DryRun bool
}

func buildPlan(topo vbox.Topology) Plan {
	plan := Plan{TargetName: constants.TargetControllerName}

	if target, ok := topo.VirtioController(); ok {
		plan.TargetExists = true
		plan.TargetName = target.Name
		_, plan.OSAlreadyMigrated = topo.DiskAt(target.Name, constants.OSDiskPort)
		for _, ctrl := range topo.Controllers {
			if ctrl.Name == target.Name {
				continue
			}
			if _, ok := ctrl.Ports[constants.DataDiskPort]; ok {
				plan.HasUnmigratedData = true
				break
			}
		}
	}

	if osDisk, ok := topo.DiskOnAnyController(constants.OSDiskPort); ok {
		plan.OSDisk = &osDisk
	}
	if dataDisk, ok := topo.DiskOnAnyController(constants.DataDiskPort); ok {
		plan.DataDisk = &dataDisk
	}
	return plan
}

// MigrateVM runs the per-VM state transition. The VM must already be
// powered off.
func (m *Migrate) MigrateVM(ctx context.Context, vm string) Result {
	attrs, err := m.VBox.ShowVMInfo(ctx, vm)
	if err != nil {
		return m.failed(vm, errors.Wrap(err, "failed to read VM configuration"))
	}
	topo := vbox.ParseTopology(attrs)
	plan := buildPlan(topo)

	if plan.TargetExists && plan.OSAlreadyMigrated && !plan.HasUnmigratedData {
		logrus.Infof("%s: already migrated, nothing to do", vm)
		return Result{VM: vm, Outcome: OutcomeSkipped, Reason: "already migrated"}
	}

	if plan.OSDisk == nil {
		logrus.Warnf("%s: no OS disk found on any controller at port %d", vm, constants.OSDiskPort)
		return Result{VM: vm, Outcome: OutcomeSkipped, Reason: "no OS disk"}
	}

	if m.DryRun {
		logrus.Infof("[dry-run] %s: would migrate %s from %q to %q",
			vm, plan.OSDisk.Medium, plan.OSDisk.Controller, plan.TargetName)
		if plan.DataDisk != nil && plan.DataDisk.Controller != plan.TargetName {
			logrus.Infof("[dry-run] %s: would migrate data disk %s as well", vm, plan.DataDisk.Medium)
		}
		return Result{VM: vm, Outcome: OutcomeConverted, Reason: "dry-run"}
	}

	if !plan.TargetExists {
		logrus.Infof("%s: creating %s controller %q", vm, vbox.KindVirtioSCSI, plan.TargetName)
		err := m.VBox.CreateStorageController(ctx, vm, plan.TargetName,
			constants.TargetControllerBus, constants.TargetControllerPortCount, true)
		if err != nil {
			return m.failed(vm, errors.Wrap(err, "failed to create target controller"))
		}
	}

	if plan.OSDisk.Controller != plan.TargetName {
		if err := m.moveDisk(ctx, vm, *plan.OSDisk, plan.TargetName, constants.OSDiskPort); err != nil {
			return m.failed(vm, errors.Wrap(err, "failed to migrate OS disk"))
		}
		// The OS-disk move changed the topology; re-fetch before deciding
		// anything about the data disk.
		if attrs, err = m.VBox.ShowVMInfo(ctx, vm); err != nil {
			return m.failed(vm, errors.Wrap(err, "failed to re-read VM configuration"))
		}
		topo = vbox.ParseTopology(attrs)
	}

	if dataDisk, ok := topo.DiskOnAnyController(constants.DataDiskPort); ok && dataDisk.Controller != plan.TargetName {
		if err := m.moveDisk(ctx, vm, dataDisk, plan.TargetName, constants.DataDiskPort); err != nil {
			return m.failed(vm, errors.Wrap(err, "failed to migrate data disk"))
		}
		if attrs, err = m.VBox.ShowVMInfo(ctx, vm); err != nil {
			return m.failed(vm, errors.Wrap(err, "failed to re-read VM configuration"))
		}
		topo = vbox.ParseTopology(attrs)
	}

	// Remove the conventional source controller once fully drained, so the
	// firmware does not offer a stale, empty controller as a boot device
	// ahead of the new one. Only the OS disk's original controller
	// qualifies.
	if plan.OSDisk.Controller == constants.SourceControllerName && topo.Drained(constants.SourceControllerName) {
		logrus.Infof("%s: removing drained controller %q", vm, constants.SourceControllerName)
		if err := m.VBox.RemoveStorageController(ctx, vm, constants.SourceControllerName); err != nil {
			return m.failed(vm, errors.Wrap(err, "failed to remove source controller"))
		}
	}

	logrus.Infof("%s: migration complete", vm)
	return Result{VM: vm, Outcome: OutcomeConverted}
}

func (m *Migrate) moveDisk(ctx context.Context, vm string, disk vbox.DiskAttachment, target string, port int) error {
	logrus.Infof("%s: moving %s from %q port %d to %q port %d",
		vm, disk.Medium, disk.Controller, disk.Port, target, port)
	if err := m.VBox.DetachDisk(ctx, vm, disk.Controller, disk.Port); err != nil {
		return err
	}
	return m.VBox.AttachDisk(ctx, vm, target, port, disk.Medium)
}

func (m *Migrate) failed(vm string, err error) Result {
	logrus.Errorf("%s: %v", vm, err)
	return Result{VM: vm, Outcome: OutcomeFailed, Reason: fmt.Sprintf("%v", err)}
}
