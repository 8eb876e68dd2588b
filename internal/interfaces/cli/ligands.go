package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	ltypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/ligand"
)

func newLigandsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ligands",
		Short: "Manage the ligand registry",
	}
	cmd.AddCommand(
		newLigandsRegisterCommand(),
		newLigandsListCommand(),
		newLigandsSimilarCommand(),
		newLigandsDepictCommand(),
	)
	return cmd
}

func newLigandsRegisterCommand() *cobra.Command {
	var (
		smiles string
		name   string
	)

	cmd := &cobra.Command{
		Use:     "register",
		Short:   "Register a ligand and index it for similarity search",
		Example: `  deepdock ligands register --smiles "CCO" --name ethanol`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}
			dto, err := c.RegisterLigand(cmd.Context(), ltypes.RegisterRequest{
				SMILES: smiles,
				Name:   name,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s as %s (id %s)\n",
				dto.SMILES, dto.StructureKey, dto.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&smiles, "smiles", "", "ligand SMILES string (required)")
	cmd.Flags().StringVar(&name, "name", "", "optional display name")
	_ = cmd.MarkFlagRequired("smiles")
	return cmd
}

func newLigandsListCommand() *cobra.Command {
	var (
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered ligands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}
			resp, err := c.ListLigands(cmd.Context(), common.Pagination{Page: page, PageSize: pageSize})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, l := range resp.Items {
				fmt.Fprintf(out, "%-14s %-20s %s\n", l.StructureKey, l.Name, l.SMILES)
			}
			fmt.Fprintf(out, "page %d/%d, %d ligands total\n", resp.Page, resp.TotalPages, resp.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "page size")
	return cmd
}

func newLigandsDepictCommand() *cobra.Command {
	var (
		smiles string
		out    string
	)

	cmd := &cobra.Command{
		Use:     "depict",
		Short:   "Download a 2D PNG depiction of a structure",
		Example: `  deepdock ligands depict --smiles "CCO" --out ethanol.png`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}
			png, err := c.DepictLigand(cmd.Context(), ltypes.DescribeRequest{SMILES: smiles})
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, png, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", len(png), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&smiles, "smiles", "", "ligand SMILES string (required)")
	cmd.Flags().StringVar(&out, "out", "depiction.png", "output file path")
	_ = cmd.MarkFlagRequired("smiles")
	return cmd
}

func newLigandsSimilarCommand() *cobra.Command {
	var (
		smiles string
		topK   int
	)

	cmd := &cobra.Command{
		Use:     "similar",
		Short:   "Find registered ligands similar to a query structure",
		Example: `  deepdock ligands similar --smiles "CCO" --top-k 5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}
			resp, err := c.SimilarLigands(cmd.Context(), ltypes.SimilarRequest{
				SMILES: smiles,
				TopK:   topK,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(resp.Hits) == 0 {
				fmt.Fprintln(out, "no similar ligands found")
				return nil
			}
			for _, hit := range resp.Hits {
				fmt.Fprintf(out, "%.4f  %-14s %s\n", hit.Score, hit.Ligand.StructureKey, hit.Ligand.SMILES)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&smiles, "smiles", "", "query SMILES string (required)")
	cmd.Flags().IntVar(&topK, "top-k", 10, "number of results")
	_ = cmd.MarkFlagRequired("smiles")
	return cmd
}
