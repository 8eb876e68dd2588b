package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newReceptorsCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "receptors [key]",
		Short: "List predefined receptor targets, or show one by key",
		Args:  cobra.MaximumNArgs(1),
		Example: `  deepdock receptors
  deepdock receptors egfr`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				r, err := c.GetReceptor(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(cmd, r)
				}
				fmt.Fprintf(out, "%s (%s)\n", r.Name, r.Key)
				fmt.Fprintf(out, "PDB:         %s\n", r.PDBID)
				fmt.Fprintf(out, "Description: %s\n", r.Description)
				fmt.Fprintf(out, "Binding site: %s\n", strings.Join(r.BindingSiteResidues, ", "))
				return nil
			}

			resp, err := c.ListReceptors(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd, resp)
			}
			for _, r := range resp.Receptors {
				fmt.Fprintf(out, "%-10s %-6s %s\n", r.Key, r.PDBID, r.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the raw JSON response")
	return cmd
}
