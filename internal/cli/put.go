package cli

import (
	"github.com/spf13/cobra"
)

var putCmd = &cobra.Command{
	Use:   "put URL|PATH",
	Short: "Make a PUT request to the specified target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, "PUT", args[0])
	},
	SilenceUsage: true,
}

func init() {
	addRequestFlags(putCmd)
}
