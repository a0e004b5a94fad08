package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/clipnamer/internal/report"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var (
		planPath string
		docxPath string
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Apply the names of a plan file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := report.LoadPlan(planPath)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if plan.Backend != "" && plan.Backend != cfg.Storage.Backend {
				return fmt.Errorf("plan was made for the %s backend, config uses %s", plan.Backend, cfg.Storage.Backend)
			}

			proc, err := ctx.processor()
			if err != nil {
				return err
			}
			provider, err := ctx.provider(cmd.Context())
			if err != nil {
				return err
			}

			result := proc.Rename(cmd.Context(), provider, plan.Requests())

			if docxPath != "" {
				if err := report.OutcomesDocx("Rename results for "+plan.FolderKey, result, docxPath); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
			}
			if jsonOut {
				if err := writeJSON(cmd, result); err != nil {
					return err
				}
			} else {
				renderOutcomes(cmd.OutOrStdout(), result)
			}

			if n := len(result.FailedIDs); n > 0 {
				return fmt.Errorf("%d of %d renames failed", n, len(result.Outcomes))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&planPath, "plan", "p", "", "Plan file written by propose --out")
	cmd.Flags().StringVar(&docxPath, "docx", "", "Write a .docx report of the outcomes to this path")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the result as JSON")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}
