// File: cmd/bucketctl/browse_cmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bucketctl/internal/ui/browser"
)

func newBrowseCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse buckets and objects interactively",
		Long:  `Opens a read-only terminal browser over the active provider's buckets. Press enter to open a bucket, esc to go back, q to quit.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.application()
			if err != nil {
				return err
			}
			svc, err := app.StorageService(cmd.Context())
			if err != nil {
				return err
			}

			return browser.Run(cmd.Context(), svc, fmt.Sprintf("%s buckets", svc.Provider()), c.in, c.out)
		},
	}
}
