package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the stockanalysis CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "stockanalysis version %s\n", version)
		fmt.Fprintln(out, "Technical analysis signals for daily stock prices")
		fmt.Fprintln(out, "https://github.com/rustyeddy/stockanalysis")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
