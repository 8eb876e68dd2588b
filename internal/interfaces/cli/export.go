package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/client"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
)

func newExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate downloadable export artifacts",
	}

	var receptor string
	csvCmd := &cobra.Command{
		Use:   "csv",
		Short: "Export prediction history as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}
			artifact, err := c.ExportHistoryCSV(cmd.Context(), receptor)
			if err != nil {
				return err
			}
			return printArtifact(cmd, artifact)
		},
	}
	csvCmd.Flags().StringVar(&receptor, "receptor", "", "filter by receptor key")

	reportCmd := &cobra.Command{
		Use:   "report <job-id>",
		Short: "Export a report for a completed docking job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}
			artifact, err := c.ExportJobReport(cmd.Context(), common.ID(args[0]))
			if err != nil {
				return err
			}
			return printArtifact(cmd, artifact)
		},
	}

	pdbCmd := &cobra.Command{
		Use:   "pdb <pdb-id>",
		Short: "Export a PDB structure through the source fallback chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}
			artifact, err := c.ExportStructurePDB(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printArtifact(cmd, artifact)
		},
	}

	cmd.AddCommand(csvCmd, reportCmd, pdbCmd)
	return cmd
}

func printArtifact(cmd *cobra.Command, a *client.ExportArtifact) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Artifact: %s (%d bytes)\n", a.Key, a.SizeBytes)
	fmt.Fprintf(out, "URL:      %s\n", a.URL)
	return nil
}
