// Copyright © 2026 The vagrant-kubeadm-kubernetes authors

package main

import (
	"os"

	"github.com/viriatis/vagrant-kubeadm-kubernetes/cli"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := cli.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
