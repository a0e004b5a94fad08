package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/clipnamer/internal/report"
)

func newEditCommand() *cobra.Command {
	var planPath string

	cmd := &cobra.Command{
		Use:         "edit <source-id> <new-name>",
		Short:       "Override one proposed name in a plan file",
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := report.LoadPlan(planPath)
			if err != nil {
				return err
			}
			if err := plan.Edit(args[0], args[1]); err != nil {
				return err
			}
			if err := report.SavePlan(planPath, plan); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVarP(&planPath, "plan", "p", "", "Plan file written by propose --out")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}
