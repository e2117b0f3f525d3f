package constants

import "time"

const (
	// Controller naming conventions used by the lab Vagrantfile. VirtualBox
	// creates the boot controller as "SATA Controller"; the migration target
	// keeps a VirtualBox-flavored name so it reads naturally in the GUI.
	SourceControllerName = "SATA Controller"
	TargetControllerName = "VirtIO Controller"

	// Bus identifier VBoxManage expects for a VirtIO-SCSI controller.
	TargetControllerBus       = "virtio"
	TargetControllerPortCount = 2

	// Port 0 holds the OS disk, port 1 the optional data disk. Device is
	// always 0 on both controller types the tool touches.
	OSDiskPort   = 0
	DataDiskPort = 1

	// Substring the lab's Vagrant-generated VM names carry.
	DefaultVMPattern = "vagrant-kubeadm-kubernetes"

	PowerPollInterval = 5 * time.Second
	PowerOffTimeout   = 45 * time.Second
	ForcedOffSettle   = 5 * time.Second

	RestartStagger = 2 * time.Second
	VerifySettle   = 30 * time.Second

	DefaultSSHUser       = "vagrant"
	DefaultSSHPort       = 22
	DefaultVerifyCommand = "systemctl is-active kubelet"
	DefaultVerifyExpect  = "active"
)
