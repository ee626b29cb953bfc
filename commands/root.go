package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pattern-controller",
	Short: "pattern-controller turns the currently playing artwork into colour patterns",
	Run: func(c *cobra.Command, args []string) {
		_ = c.Help()
	},
}

// Execute runs the root command
func Execute() {
	rootCmd.AddCommand(pollCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(authCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
