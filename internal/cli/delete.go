package cli

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete URL|PATH",
	Short: "Make a DELETE request to the specified target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, "DELETE", args[0])
	},
	SilenceUsage: true,
}

func init() {
	addRequestFlags(deleteCmd)
}
