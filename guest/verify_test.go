// Copyright © 2026 The vagrant-kubeadm-kubernetes authors

package guest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeHostname(t *testing.T) {
	assert.Equal(t, "node01", NodeHostname("vagrant-kubeadm-kubernetes_node01_1699_1234"))
	assert.Equal(t, "controlplane", NodeHostname("vagrant-kubeadm-kubernetes_controlplane_1699_1234"))
	// names outside the convention pass through
	assert.Equal(t, "plain-vm", NodeHostname("plain-vm"))
	assert.Equal(t, "trailing_", NodeHostname("trailing_"))
}

func TestCheckOutput(t *testing.T) {
	assert.NoError(t, checkOutput("active\n", "active"))
	assert.NoError(t, checkOutput("kubelet is active (running)", "active"))

	err := checkOutput("inactive\n", "activating")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "activating")
}

func TestVerifierDefaults(t *testing.T) {
	v := NewVerifier("vagrant", "/home/user/.ssh/id_rsa")
	assert.Equal(t, "systemctl is-active kubelet", v.Command)
	assert.Equal(t, "active", v.Expect)
	assert.Equal(t, 22, v.Port)
}
