package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nanofolks",
		Short:         "nanofolks: coordinate agent rooms and inspect work logs",
		Long:          "nanofolks manages named collaboration rooms for a roster of specialist agents and records a structured work log for every processed request.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRoomCmd(app),
		newLogCmd(app),
	)

	return rootCmd
}
