package cli

import (
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get URL|PATH",
	Short: "Make a GET request to the specified target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, "GET", args[0])
	},
	SilenceUsage: true,
}

func init() {
	addRequestFlags(getCmd)
}
