// Copyright © 2026 The vagrant-kubeadm-kubernetes authors

package vbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVMList(t *testing.T) {
	output := `"vagrant-kubeadm-kubernetes_controlplane_1699_1234" {8a1f2c3d-4e5f-6071-8293-a4b5c6d7e8f9}
"vagrant-kubeadm-kubernetes_node01_1699_5678" {11112222-3333-4444-5555-666677778888}
"unrelated-vm" {aaaabbbb-cccc-dddd-eeee-ffff00001111}
`
	names := parseVMList(output)
	assert.Equal(t, []string{
		"vagrant-kubeadm-kubernetes_controlplane_1699_1234",
		"vagrant-kubeadm-kubernetes_node01_1699_5678",
		"unrelated-vm",
	}, names)
}

func TestParseVMListEmptyAndMalformed(t *testing.T) {
	assert.Empty(t, parseVMList(""))
	assert.Empty(t, parseVMList("\n\n"))
	// inaccessible VMs print a diagnostic instead of a quoted name
	assert.Empty(t, parseVMList("<inaccessible> {uuid}"))
}

func TestParseVMListNameWithSpaces(t *testing.T) {
	names := parseVMList(`"my lab vm" {uuid}`)
	assert.Equal(t, []string{"my lab vm"}, names)
}
