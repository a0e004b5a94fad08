package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "classify [transcript...]",
		Short: "Classify a transcript given as arguments or on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			transcript := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				transcript = string(data)
			}

			classifier, err := ctx.classifier()
			if err != nil {
				return err
			}
			c := classifier.Classify(transcript)

			if jsonOut {
				return writeJSON(cmd, c)
			}
			renderClassification(cmd.OutOrStdout(), c)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the classification as JSON")
	return cmd
}
