package main

import "github.com/spf13/cobra"

// settingsFlags overrides the configured naming defaults for one run.
type settingsFlags struct {
	creator    string
	creatorSet bool
	start      int
	startSet   bool
	multiplier string
}

func addSettingsFlags(cmd *cobra.Command, f *settingsFlags) {
	cmd.Flags().StringVar(&f.creator, "creator", "", "Creator code (empty omits the segment)")
	cmd.Flags().IntVar(&f.start, "start", 0, "Starting sequence number")
	cmd.Flags().StringVar(&f.multiplier, "default-multiplier", "", "Multiplier used when no transcript is available")
}

// resolve records which flags were set explicitly.
func (f *settingsFlags) resolve(cmd *cobra.Command) *settingsFlags {
	f.creatorSet = cmd.Flags().Changed("creator")
	f.startSet = cmd.Flags().Changed("start")
	return f
}
