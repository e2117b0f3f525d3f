// Copyright © 2026 The vagrant-kubeadm-kubernetes authors

package migrate

import "github.com/pkg/errors"

// ErrNoVMsFound means discovery matched zero VMs. It is fatal and not
// retryable: either the lab was never provisioned or the name pattern is
// wrong, and neither fixes itself.
var ErrNoVMsFound = errors.New("no VMs found matching name pattern")
