package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	ltypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/ligand"
)

func newDescribeCommand() *cobra.Command {
	var (
		smiles     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "describe",
		Short:   "Estimate physicochemical descriptors for a SMILES string",
		Example: `  deepdock describe --smiles "CC(=O)Oc1ccccc1C(=O)O"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}
			resp, err := c.DescribeLigand(cmd.Context(), ltypes.DescribeRequest{SMILES: smiles})
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd, resp)
			}

			d := resp.Descriptors
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "SMILES:            %s\n", resp.SMILES)
			fmt.Fprintf(out, "Molecular weight:  %.3f g/mol\n", d.MolecularWeight)
			fmt.Fprintf(out, "LogP:              %.3f\n", d.LogP)
			fmt.Fprintf(out, "TPSA:              %.1f A^2\n", d.TPSA)
			fmt.Fprintf(out, "H-bond donors:     %d\n", d.HBondDonors)
			fmt.Fprintf(out, "H-bond acceptors:  %d\n", d.HBondAcceptors)
			fmt.Fprintf(out, "Rotatable bonds:   %d\n", d.RotatableBonds)
			fmt.Fprintf(out, "Aromatic rings:    %d\n", d.AromaticRings)
			return nil
		},
	}

	cmd.Flags().StringVar(&smiles, "smiles", "", "ligand SMILES string (required)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the raw JSON response")
	_ = cmd.MarkFlagRequired("smiles")
	return cmd
}
