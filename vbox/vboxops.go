// Copyright © 2026 The vagrant-kubeadm-kubernetes authors

package vbox

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

//go:generate mockgen -source=vboxops.go -destination=vboxops_mock.go -package=vbox

// ErrToolNotFound means the VBoxManage executable is not installed or not
// on PATH. It is fatal; nothing can be done without the management tool.
var ErrToolNotFound = errors.New("VBoxManage not found in PATH")

// VBoxOperations is the command surface of the VirtualBox management tool.
// Everything the migration needs from the hypervisor goes through here.
type VBoxOperations interface {
	ListVMs(ctx context.Context) ([]string, error)
	ShowVMInfo(ctx context.Context, vm string) (map[string]string, error)
	ACPIPowerButton(ctx context.Context, vm string) error
	PowerOff(ctx context.Context, vm string) error
	StartVM(ctx context.Context, vm string) error
	CreateStorageController(ctx context.Context, vm, name, bus string, portCount int, bootable bool) error
	RemoveStorageController(ctx context.Context, vm, name string) error
	AttachDisk(ctx context.Context, vm, controller string, port int, medium string) error
	DetachDisk(ctx context.Context, vm, controller string, port int) error
}

// VBoxManage shells out to the VBoxManage binary. All calls are synchronous
// and carry no timeout of their own; callers bound waiting at the polling
// level, not per invocation.
type VBoxManage struct {
	binary string
}

func NewVBoxManage() (*VBoxManage, error) {
	path, err := exec.LookPath("VBoxManage")
	if err != nil {
		return nil, errors.Wrap(ErrToolNotFound, err.Error())
	}
	return &VBoxManage{binary: path}, nil
}

func (v *VBoxManage) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, v.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "VBoxManage %s: %s",
			strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

func (v *VBoxManage) ListVMs(ctx context.Context) ([]string, error) {
	out, err := v.run(ctx, "list", "vms")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list VMs")
	}
	return parseVMList(out), nil
}

// parseVMList extracts VM names from `list vms` output. Each line reads
// `"name" {uuid}`; malformed lines are dropped.
func parseVMList(output string) []string {
	var names []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, `"`) {
			continue
		}
		end := strings.LastIndex(line, `"`)
		if end <= 0 {
			continue
		}
		names = append(names, line[1:end])
	}
	return names
}

func (v *VBoxManage) ShowVMInfo(ctx context.Context, vm string) (map[string]string, error) {
	out, err := v.run(ctx, "showvminfo", vm, "--machinereadable")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get info for VM %s", vm)
	}
	return ParseAttributes(out), nil
}

func (v *VBoxManage) ACPIPowerButton(ctx context.Context, vm string) error {
	_, err := v.run(ctx, "controlvm", vm, "acpipowerbutton")
	return errors.Wrapf(err, "failed to send ACPI power signal to VM %s", vm)
}

func (v *VBoxManage) PowerOff(ctx context.Context, vm string) error {
	_, err := v.run(ctx, "controlvm", vm, "poweroff")
	return errors.Wrapf(err, "failed to force off VM %s", vm)
}

func (v *VBoxManage) StartVM(ctx context.Context, vm string) error {
	_, err := v.run(ctx, "startvm", vm, "--type", "headless")
	return errors.Wrapf(err, "failed to start VM %s", vm)
}

func (v *VBoxManage) CreateStorageController(ctx context.Context, vm, name, bus string, portCount int, bootable bool) error {
	bootableArg := "off"
	if bootable {
		bootableArg = "on"
	}
	_, err := v.run(ctx, "storagectl", vm,
		"--name", name,
		"--add", bus,
		"--portcount", strconv.Itoa(portCount),
		"--bootable", bootableArg)
	return errors.Wrapf(err, "failed to create %s controller %q on VM %s", bus, name, vm)
}

func (v *VBoxManage) RemoveStorageController(ctx context.Context, vm, name string) error {
	_, err := v.run(ctx, "storagectl", vm, "--name", name, "--remove")
	return errors.Wrapf(err, "failed to remove controller %q from VM %s", name, vm)
}

func (v *VBoxManage) AttachDisk(ctx context.Context, vm, controller string, port int, medium string) error {
	_, err := v.run(ctx, "storageattach", vm,
		"--storagectl", controller,
		"--port", strconv.Itoa(port),
		"--device", "0",
		"--type", "hdd",
		"--medium", medium)
	return errors.Wrapf(err, "failed to attach %s at %q port %d on VM %s", medium, controller, port, vm)
}

// DetachDisk detaches whatever medium sits at (controller, port, device 0).
// VBoxManage expresses detach as attaching the "none" medium.
func (v *VBoxManage) DetachDisk(ctx context.Context, vm, controller string, port int) error {
	_, err := v.run(ctx, "storageattach", vm,
		"--storagectl", controller,
		"--port", strconv.Itoa(port),
		"--device", "0",
		"--medium", "none")
	return errors.Wrapf(err, "failed to detach disk at %q port %d on VM %s", controller, port, vm)
}
