// Package cli implements the deepdock command-line interface. Every command
// talks to a running API server through pkg/client, so the CLI stays a thin
// presentation layer.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/client"
)

var (
	serverURL      string
	requestTimeout time.Duration
)

// NewRootCommand builds the deepdock command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "deepdock",
		Short: "DeepDock affinity prediction CLI",
		Long: `deepdock is the command-line client for the DeepDock affinity service.
It predicts ligand-receptor binding affinity, manages asynchronous docking
jobs, browses the receptor registry, and generates export artifacts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "API server base URL")
	root.PersistentFlags().DurationVar(&requestTimeout, "timeout", 30*time.Second, "per-request timeout")

	root.AddCommand(
		newPredictCommand(),
		newDescribeCommand(),
		newReceptorsCommand(),
		newJobsCommand(),
		newLigandsCommand(),
		newExportCommand(),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func apiClient() (*client.Client, error) {
	return client.New(serverURL, client.WithTimeout(requestTimeout))
}

// printJSON renders any payload as indented JSON on stdout.
func printJSON(cmd *cobra.Command, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
