package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/clipnamer/internal/naming"
	"github.com/nguyentantai21042004/clipnamer/internal/processor"
	"github.com/nguyentantai21042004/clipnamer/internal/report"
)

func newProposeCommand(ctx *commandContext) *cobra.Command {
	var (
		sf       settingsFlags
		jsonOut  bool
		docxPath string
		planPath string
	)

	cmd := &cobra.Command{
		Use:   "propose <folder-url-or-id>",
		Short: "Propose names for every video in a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folderID, err := naming.ResolveFolder(args[0])
			if err != nil {
				return err
			}
			settings, err := ctx.settings(sf.resolve(cmd))
			if err != nil {
				return err
			}
			proc, err := ctx.processor()
			if err != nil {
				return err
			}
			provider, err := ctx.provider(cmd.Context())
			if err != nil {
				return err
			}

			proposals, err := proc.Propose(cmd.Context(), provider, folderID, processor.ProposeOptions{Settings: settings})
			if err != nil {
				return err
			}

			if planPath != "" {
				cfg, _ := ctx.ensureConfig()
				plan := report.Plan{
					Backend:     cfg.Storage.Backend,
					FolderKey:   folderID,
					Settings:    settings,
					GeneratedAt: time.Now().UTC(),
					Proposals:   proposals,
				}
				if err := report.SavePlan(planPath, plan); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Plan written to %s\n", planPath)
			}
			if docxPath != "" {
				if err := report.ProposalsDocx("Proposed names for "+folderID, proposals, docxPath); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", docxPath)
			}

			if jsonOut {
				return writeJSON(cmd, proposals)
			}
			renderProposals(cmd.OutOrStdout(), proposals)
			return nil
		},
	}

	addSettingsFlags(cmd, &sf)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print proposals as JSON")
	cmd.Flags().StringVar(&docxPath, "docx", "", "Write a .docx report to this path")
	cmd.Flags().StringVarP(&planPath, "out", "o", "", "Write an editable plan file to this path")
	return cmd
}
