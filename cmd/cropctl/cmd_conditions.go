package main

import (
	"github.com/spf13/cobra"
)

func newConditionsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "conditions <crop>",
		Short:   "Show the optimal growing ranges of a crop",
		Example: "  cropctl conditions Padi",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend(opts)
			if err != nil {
				return err
			}
			defer b.Close()

			cond, err := b.OptimalConditions(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if opts.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), cond)
			}
			return writeConditions(cmd.OutOrStdout(), args[0], cond)
		},
	}
}
