// Copyright © 2026 The vagrant-kubeadm-kubernetes authors

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/viriatis/vagrant-kubeadm-kubernetes/guest"
	"github.com/viriatis/vagrant-kubeadm-kubernetes/migrate"
	"github.com/viriatis/vagrant-kubeadm-kubernetes/pkg/constants"
	"github.com/viriatis/vagrant-kubeadm-kubernetes/vbox"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	dryRun    bool
	force     bool
	noRestart bool
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "virtio-migrate",
	Short: "Migrate lab VM disks from SATA to VirtIO-SCSI",
	Long: `virtio-migrate reattaches the boot and data disks of the kubeadm lab VMs
from the emulated SATA controller to a VirtIO-SCSI controller for better
storage throughput. VMs are shut down gracefully first and restarted after
migration. The procedure is idempotent: re-running it skips VMs that are
already migrated and finishes any partially migrated ones.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration(cmd)
	},
}

// Execute runs the root command. A nil return means exit code 0, including
// the user declining the confirmation prompt.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.virtio-migrate.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print intended actions without touching any VM")
	rootCmd.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")
	rootCmd.Flags().BoolVar(&noRestart, "no-restart", false, "leave powered-down VMs off after migration")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".virtio-migrate")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetDefault("vm_pattern", constants.DefaultVMPattern)
	viper.SetDefault("ssh.user", constants.DefaultSSHUser)
	viper.SetDefault("ssh.key_path", "")
	viper.SetDefault("verify.addr", "")

	viper.SetEnvPrefix("VIRTIO_MIGRATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logrus.Debugf("Using config file %s", viper.ConfigFileUsed())
	}
}

func setupLogging() error {
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		logLevel = env
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
	return nil
}

func runMigration(cmd *cobra.Command) error {
	if err := setupLogging(); err != nil {
		return err
	}

	ops, err := vbox.NewVBoxManage()
	if err != nil {
		return err
	}

	if !force && !dryRun {
		if !confirm(os.Stdin, os.Stdout) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	var verifier migrate.GuestVerifier
	if keyPath := viper.GetString("ssh.key_path"); keyPath != "" {
		v := guest.NewVerifier(viper.GetString("ssh.user"), keyPath)
		v.Addr = viper.GetString("verify.addr")
		verifier = v
	} else {
		logrus.Debug("No SSH key configured, guest verification disabled")
	}

	runner := migrate.NewRunner(ops, verifier, viper.GetString("vm_pattern"), dryRun, noRestart)
	summary, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	printSummary(os.Stdout, summary)
	return nil
}

func confirm(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "This will shut down all lab VMs and reattach their disks. Continue? [y/N]: ")
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func printSummary(w io.Writer, summary migrate.RunSummary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Migration summary:")
	for _, res := range summary.Results {
		if res.Reason != "" {
			fmt.Fprintf(w, "  %-40s %s (%s)\n", res.VM, res.Outcome, res.Reason)
		} else {
			fmt.Fprintf(w, "  %-40s %s\n", res.VM, res.Outcome)
		}
	}
	fmt.Fprintf(w, "Converted: %d  Skipped: %d  Failed: %d\n",
		summary.Converted, summary.Skipped, summary.Failed)
}
