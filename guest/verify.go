// Copyright © 2026 The vagrant-kubeadm-kubernetes authors

package guest

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/viriatis/vagrant-kubeadm-kubernetes/pkg/constants"
	"github.com/viriatis/vagrant-kubeadm-kubernetes/pkg/utils"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
)

// Verifier runs a probe command on a node over SSH and checks the output
// for an expected substring. It is best-effort: callers log failures as
// warnings and never fail the run on them.
type Verifier struct {
	// Addr overrides the target address. When empty the node hostname
	// derived from the VM name is used; the lab writes those hostnames
	// into /etc/hosts on the host machine.
	Addr     string
	User     string
	KeyPath  string
	Password string
	Port     int
	Command  string
	Expect   string
	Timeout  time.Duration
	Retry    *utils.RetryConfig
}

func NewVerifier(user, keyPath string) *Verifier {
	return &Verifier{
		User:    user,
		KeyPath: keyPath,
		Port:    constants.DefaultSSHPort,
		Command: constants.DefaultVerifyCommand,
		Expect:  constants.DefaultVerifyExpect,
		Timeout: 30 * time.Second,
	}
}

// NodeHostname extracts the machine name from a Vagrant-generated VM name
// of the form `<project>_<machine>_<timestamp>_<random>`. Names that do
// not follow the convention are returned unchanged.
func NodeHostname(vm string) string {
	parts := strings.Split(vm, "_")
	if len(parts) >= 2 && parts[1] != "" {
		return parts[1]
	}
	return vm
}

// Verify connects to the node backing the named VM and runs the probe
// command. Success is substring detection on the combined output.
func (v *Verifier) Verify(ctx context.Context, vm string) error {
	addr := v.Addr
	if addr == "" {
		addr = NodeHostname(vm)
	}

	client, err := v.connect(addr)
	if err != nil {
		return errors.Wrapf(err, "failed to reach %s", addr)
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return errors.Wrap(err, "failed to open SSH session")
	}
	defer session.Close()

	out, err := session.CombinedOutput(v.Command)
	if err != nil {
		return errors.Wrapf(err, "probe command %q failed: %s", v.Command, strings.TrimSpace(string(out)))
	}
	return checkOutput(string(out), v.Expect)
}

func (v *Verifier) connect(addr string) (*ssh.Client, error) {
	var authMethods []ssh.AuthMethod

	if v.KeyPath != "" {
		key, err := os.ReadFile(v.KeyPath)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read SSH key")
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse SSH key")
		}
		authMethods = append(authMethods, ssh.PublicKeys(signer))
	}
	if v.Password != "" {
		authMethods = append(authMethods, ssh.Password(v.Password))
	}
	if len(authMethods) == 0 {
		return nil, errors.New("no authentication method provided (need password or SSH key)")
	}

	config := &ssh.ClientConfig{
		User:            v.User,
		Auth:            authMethods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // lab VMs are reprovisioned constantly
		Timeout:         v.Timeout,
	}

	target := fmt.Sprintf("%s:%d", addr, v.Port)
	var client *ssh.Client
	err := utils.RetryWithBackoff(v.Retry, func() error {
		var dialErr error
		client, dialErr = ssh.Dial("tcp", target, config)
		return dialErr
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func checkOutput(output, expect string) error {
	if strings.Contains(output, expect) {
		return nil
	}
	return errors.Errorf("expected %q in probe output, got %q", expect, strings.TrimSpace(output))
}
