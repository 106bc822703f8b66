package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gmsa version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gmsa version %s\n", version)
		},
	}
}
