// Copyright © 2026 The vagrant-kubeadm-kubernetes authors

package vbox

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Power states reported in the VMState attribute.
const (
	StateRunning  = "running"
	StatePowerOff = "poweroff"
	StateSaved    = "saved"
)

// noneMedium is the sentinel VBoxManage reports for an empty port.
const noneMedium = "none"

// maxPortsPerController caps the attachment scan when a controller's port
// count attribute is missing. SATA controllers top out at 30 ports.
const maxPortsPerController = 30

type ControllerKind string

const (
	KindSATA       ControllerKind = "SATA"
	KindVirtioSCSI ControllerKind = "VirtIO-SCSI"
	KindUnknown    ControllerKind = "unknown"
)

// DiskAttachment identifies a medium at a (controller, port) slot.
type DiskAttachment struct {
	Controller string
	Port       int
	Medium     string
}

// ControllerInfo holds one storage controller's occupied ports. Ports with
// no disk (or the "none" sentinel) are simply absent from the map.
type ControllerInfo struct {
	Index int
	Name  string
	Kind  ControllerKind
	Ports map[int]string
}

// Topology is a point-in-time snapshot of a VM's storage layout, built in
// a single pass over the machinereadable attribute map. It is never cached
// across hypervisor mutations; callers re-parse a fresh attribute fetch
// after every state change.
type Topology struct {
	State       string
	Controllers []ControllerInfo
}

// ParseAttributes turns `showvminfo --machinereadable` output into a flat
// key/value map. Both keys and values may be double-quoted.
func ParseAttributes(output string) map[string]string {
	attrs := make(map[string]string)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idx := strings.Index(line, "=")
		if idx < 0 {
			continue
		}
		key := strings.Trim(line[:idx], `"`)
		value := strings.Trim(line[idx+1:], `"`)
		attrs[key] = value
	}
	return attrs
}

// ParseTopology derives the typed storage topology from an attribute map.
func ParseTopology(attrs map[string]string) Topology {
	topo := Topology{State: attrs["VMState"]}

	var indexes []int
	for key := range attrs {
		if !strings.HasPrefix(key, "storagecontrollername") {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimPrefix(key, "storagecontrollername"))
		if err != nil {
			continue
		}
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	for _, idx := range indexes {
		name := attrs[fmt.Sprintf("storagecontrollername%d", idx)]
		ctrl := ControllerInfo{
			Index: idx,
			Name:  name,
			Kind:  controllerKind(attrs[fmt.Sprintf("storagecontrollertype%d", idx)]),
			Ports: make(map[int]string),
		}

		portCount := maxPortsPerController
		if raw, ok := attrs[fmt.Sprintf("storagecontrollerportcount%d", idx)]; ok {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				portCount = n
			}
		}
		for port := 0; port < portCount; port++ {
			medium, ok := attrs[fmt.Sprintf("%s-%d-0", name, port)]
			if !ok || medium == noneMedium || medium == "" {
				continue
			}
			ctrl.Ports[port] = medium
		}

		topo.Controllers = append(topo.Controllers, ctrl)
	}
	return topo
}

func controllerKind(raw string) ControllerKind {
	switch raw {
	case "IntelAhci":
		return KindSATA
	case "VirtioSCSI":
		return KindVirtioSCSI
	default:
		return KindUnknown
	}
}

// Controller returns the controller with the given name.
func (t Topology) Controller(name string) (ControllerInfo, bool) {
	for _, ctrl := range t.Controllers {
		if ctrl.Name == name {
			return ctrl, true
		}
	}
	return ControllerInfo{}, false
}

// VirtioController returns the VirtIO-SCSI controller if one exists,
// matching either the reported controller type or a case-insensitive
// "virtio" substring in the name. When a VM carries more than one match
// the lowest controller index wins, which is VBoxManage listing order and
// therefore stable across runs.
func (t Topology) VirtioController() (ControllerInfo, bool) {
	for _, ctrl := range t.Controllers {
		if ctrl.Kind == KindVirtioSCSI || strings.Contains(strings.ToLower(ctrl.Name), "virtio") {
			return ctrl, true
		}
	}
	return ControllerInfo{}, false
}

// DiskAt returns the medium at (controller, port), if any. An absent
// controller or empty port both report no disk.
func (t Topology) DiskAt(controller string, port int) (string, bool) {
	ctrl, ok := t.Controller(controller)
	if !ok {
		return "", false
	}
	medium, ok := ctrl.Ports[port]
	return medium, ok
}

// DiskOnAnyController scans controllers in listing order and returns the
// first attachment found at the given port.
func (t Topology) DiskOnAnyController(port int) (DiskAttachment, bool) {
	for _, ctrl := range t.Controllers {
		if medium, ok := ctrl.Ports[port]; ok {
			return DiskAttachment{Controller: ctrl.Name, Port: port, Medium: medium}, true
		}
	}
	return DiskAttachment{}, false
}

// Drained reports whether the named controller exists and holds no disks
// on any port.
func (t Topology) Drained(name string) bool {
	ctrl, ok := t.Controller(name)
	if !ok {
		return false
	}
	return len(ctrl.Ports) == 0
}
