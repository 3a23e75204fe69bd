package cli

import (
	"github.com/spf13/cobra"
)

var postCmd = &cobra.Command{
	Use:   "post URL|PATH",
	Short: "Make a POST request to the specified target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, "POST", args[0])
	},
	SilenceUsage: true,
}

func init() {
	addRequestFlags(postCmd)
}
