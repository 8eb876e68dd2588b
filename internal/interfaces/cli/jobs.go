package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	dtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/docking"
)

func newJobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Manage asynchronous docking jobs",
	}
	cmd.AddCommand(newJobsSubmitCommand(), newJobsGetCommand(), newJobsListCommand())
	return cmd
}

func newJobsSubmitCommand() *cobra.Command {
	var (
		smiles    string
		receptor  string
		fastaFile string
	)

	cmd := &cobra.Command{
		Use:     "submit",
		Short:   "Queue a docking job for background processing",
		Example: `  deepdock jobs submit --smiles "CCO" --receptor tnf-alpha`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := dtypes.PredictRequest{LigandSMILES: smiles, ReceptorKey: receptor}
			if fastaFile != "" {
				data, err := os.ReadFile(fastaFile)
				if err != nil {
					return fmt.Errorf("read FASTA file: %w", err)
				}
				req.ReceptorFASTA = string(data)
			}

			c, err := apiClient()
			if err != nil {
				return err
			}
			resp, err := c.SubmitJob(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Job %s submitted (%s)\n", resp.JobID, resp.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&smiles, "smiles", "", "ligand SMILES string (required)")
	cmd.Flags().StringVar(&receptor, "receptor", "", "receptor key or \"custom\" (required)")
	cmd.Flags().StringVar(&fastaFile, "fasta", "", "path to a FASTA file for custom receptors")
	_ = cmd.MarkFlagRequired("smiles")
	_ = cmd.MarkFlagRequired("receptor")
	return cmd
}

func newJobsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <job-id>",
		Short: "Show one docking job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}
			job, err := c.GetJob(cmd.Context(), common.ID(args[0]))
			if err != nil {
				return err
			}
			return printJSON(cmd, job)
		},
	}
}

func newJobsListCommand() *cobra.Command {
	var (
		status   string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List docking jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}
			resp, err := c.ListJobs(cmd.Context(), dtypes.JobStatus(status),
				common.Pagination{Page: page, PageSize: pageSize})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, job := range resp.Items {
				fmt.Fprintf(out, "%-38s %-10s %-12s %s\n",
					job.ID, job.Status, job.ReceptorKey, job.LigandSMILES)
			}
			fmt.Fprintf(out, "page %d/%d, %d jobs total\n", resp.Page, resp.TotalPages, resp.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (pending|running|completed|failed)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "page size")
	return cmd
}
