package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/clipnamer/internal/naming"
)

func newResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "resolve <folder-url-or-id>",
		Short:       "Print the folder id of a folder reference",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := naming.ResolveFolder(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
