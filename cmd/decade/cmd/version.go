package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the decade CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("decade version %s\n", version)
		fmt.Println("A ten-year personal finance life simulator")
		fmt.Println("https://github.com/rustyeddy/decade")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
