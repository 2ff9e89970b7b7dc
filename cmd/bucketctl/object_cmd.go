// File: cmd/bucketctl/object_cmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bucketctl/internal/flags"
	"bucketctl/pkg/formatter"
)

type objectFlags struct {
	bucket  string
	key     string
	to      string
	destKey string
	force   bool
}

func newObjectCmd(c *cli) *cobra.Command {
	cmdFlags := objectFlags{}

	objectCmd := &cobra.Command{
		Use:   "object",
		Short: "Manage objects within a bucket",
		Long:  `The object command lets you list, upload, copy, download, and delete objects. Every subcommand needs --bucket.`,
	}
	objectCmd.PersistentFlags().StringVarP(&cmdFlags.bucket, flags.Bucket, flags.BucketShort, "", "The bucket to operate on (required)")
	objectCmd.MarkPersistentFlagRequired(flags.Bucket)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the objects in a bucket",
		Long:  `Lists the first page (up to 1000) of objects in the bucket.`,
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

			objects, err := svc.ListObjects(cmd.Context(), cmdFlags.bucket)
			if err != nil {
				return fmt.Errorf("error listing objects in '%s': %w", cmdFlags.bucket, err)
			}

			if len(objects) == 0 {
				fmt.Fprintln(c.out, app.StorageFormatter.FormatEmptyBucket(cmdFlags.bucket))
				return nil
			}
			fmt.Fprintln(c.out, app.StorageFormatter.FormatObjectList(cmdFlags.bucket, objects))
			return nil
		},
	}

	uploadCmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload the configured upload source to a bucket",
		Long: `Uploads the file named by files.upload_source (default error.log) to the bucket.
The object key defaults to the file's base name; use --key to override it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.application()
			if err != nil {
				return err
			}
			svc, err := app.StorageService(cmd.Context())
			if err != nil {
				return err
			}

			key, err := svc.Upload(cmd.Context(), cmdFlags.bucket, cmdFlags.key)
			if err != nil {
				return fmt.Errorf("error uploading to '%s': %w", cmdFlags.bucket, err)
			}

			fmt.Fprintln(c.out, formatter.Success(fmt.Sprintf("The %s object has been uploaded to the %s bucket!", key, cmdFlags.bucket)))
			return nil
		},
	}
	uploadCmd.Flags().StringVarP(&cmdFlags.key, flags.Key, flags.KeyShort, "", "Object key to store the upload under")

	deleteCmd := &cobra.Command{
		Use:   "delete [object-key]",
		Short: "Delete an object from a bucket",
		Long:  `Deletes an object that appears in the bucket's listing. You are asked to type the key unless --force is given.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			app, err := c.application()
			if err != nil {
				return err
			}
			svc, err := app.StorageService(cmd.Context())
			if err != nil {
				return err
			}

			if !cmdFlags.force {
				confirmed, err := app.Prompter.Confirm(fmt.Sprintf("You are about to delete object '%s' from bucket '%s'.", key, cmdFlags.bucket), key)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(c.out, "Deletion cancelled.")
					return nil
				}
			}

			if err := svc.DeleteObject(cmd.Context(), cmdFlags.bucket, key); err != nil {
				return fmt.Errorf("error deleting object '%s': %w", key, err)
			}

			fmt.Fprintln(c.out, formatter.Success(fmt.Sprintf("The %s object was deleted from the %s bucket!", key, cmdFlags.bucket)))
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&cmdFlags.force, flags.Force, flags.ForceShort, false, "Skip the confirmation prompt")

	copyCmd := &cobra.Command{
		Use:   "copy [object-key]",
		Short: "Copy an object into another bucket",
		Long:  `Copies an object from --bucket into the --to bucket, keeping its key unless --dest-key is given. Both buckets must differ.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			app, err := c.application()
			if err != nil {
				return err
			}
			svc, err := app.StorageService(cmd.Context())
			if err != nil {
				return err
			}

			if err := svc.CopyObject(cmd.Context(), cmdFlags.bucket, key, cmdFlags.to, cmdFlags.destKey); err != nil {
				return fmt.Errorf("error copying object '%s': %w", key, err)
			}

			fmt.Fprintln(c.out, formatter.Success(fmt.Sprintf("%s was copied from %s to %s!", key, cmdFlags.bucket, cmdFlags.to)))
			return nil
		},
	}
	copyCmd.Flags().StringVar(&cmdFlags.to, flags.To, "", "Destination bucket (required)")
	copyCmd.MarkFlagRequired(flags.To)
	copyCmd.Flags().StringVar(&cmdFlags.destKey, flags.DestKey, "", "Destination key (default: the source key)")

	downloadCmd := &cobra.Command{
		Use:   "download [object-key]",
		Short: "Download an object to the configured download target",
		Long:  `Downloads an object to the file named by files.download_target (default obj_download), replacing it atomically.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			app, err := c.application()
			if err != nil {
				return err
			}
			svc, err := app.StorageService(cmd.Context())
			if err != nil {
				return err
			}

			target, err := svc.Download(cmd.Context(), cmdFlags.bucket, key)
			if err != nil {
				return fmt.Errorf("error downloading object '%s': %w", key, err)
			}

			fmt.Fprintln(c.out, formatter.Success(fmt.Sprintf("The %s object has been downloaded to the local environment as %s!", key, target)))
			return nil
		},
	}

	objectCmd.AddCommand(listCmd, uploadCmd, deleteCmd, copyCmd, downloadCmd)
	return objectCmd
}
