package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	dtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/docking"
)

func newPredictCommand() *cobra.Command {
	var (
		smiles     string
		receptor   string
		fastaFile  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict binding affinity for a ligand-receptor pair",
		Example: `  deepdock predict --smiles "CCO" --receptor il-6
  deepdock predict --smiles "c1ccccc1" --receptor custom --fasta target.fasta`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := dtypes.PredictRequest{
				LigandSMILES: smiles,
				ReceptorKey:  receptor,
			}
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
			resp, err := c.Predict(cmd.Context(), req)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd, resp)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Ligand:       %s\n", resp.LigandSMILES)
			fmt.Fprintf(out, "Receptor:     %s\n", resp.ReceptorKey)
			fmt.Fprintf(out, "pKd:          %.4f\n", resp.Result.PKd)
			fmt.Fprintf(out, "Kd:           %.2f nM\n", resp.Result.KdNanomolar)
			fmt.Fprintf(out, "Confidence:   %d%%\n", resp.Result.Confidence)
			if resp.Cached {
				fmt.Fprintln(out, "Served from cache")
			}
			fmt.Fprintln(out, "\nInteractions:")
			for _, it := range resp.Result.Interactions {
				fmt.Fprintf(out, "  %-14s %-8s %.2f A  strength %.3f\n",
					it.Type, it.Residue, it.Distance, it.Strength)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&smiles, "smiles", "", "ligand SMILES string (required)")
	cmd.Flags().StringVar(&receptor, "receptor", "", "receptor key or \"custom\" (required)")
	cmd.Flags().StringVar(&fastaFile, "fasta", "", "path to a FASTA file for custom receptors")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the raw JSON response")
	_ = cmd.MarkFlagRequired("smiles")
	_ = cmd.MarkFlagRequired("receptor")
	return cmd
}
