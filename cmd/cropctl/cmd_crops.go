package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCropsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "crops",
		Short: "List the crops in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend(opts)
			if err != nil {
				return err
			}
			defer b.Close()

			crops, err := b.Crops(cmd.Context())
			if err != nil {
				return err
			}

			if opts.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), map[string][]string{"crops": crops})
			}
			for _, c := range crops {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}
