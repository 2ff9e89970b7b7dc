// File: cmd/bucketctl/bucket_cmd.go
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bucketctl/internal/flags"
	"bucketctl/internal/provider/factory"
	"bucketctl/internal/provider/registry"
	"bucketctl/pkg/formatter"
	"bucketctl/pkg/storage"
)

type bucketFlags struct {
	providersList []string
	location      string
	name          string
	force         bool
}

func newBucketCmd(c *cli) *cobra.Command {
	cmdFlags := bucketFlags{}

	bucketCmd := &cobra.Command{
		Use:   "bucket",
		Short: "Manage storage buckets",
		Long:  `The bucket command lets you list, create, and delete buckets on the active provider.`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List storage buckets",
		Long: `Lists the buckets of the active provider.
Use the --providers flag to query several providers at once (e.g., --providers gcp,aws), or --providers all for every configured provider.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.application()
			if err != nil {
				return err
			}

			var buckets []storage.Bucket
			if len(cmdFlags.providersList) > 0 {
				providersToQuery, err := resolveProvidersForList(cmdFlags.providersList, app.ProviderFactory)
				if err != nil {
					return err
				}
				if len(providersToQuery) == 0 {
					fmt.Fprintf(c.out, "No providers configured. Use 'bucketctl config set'. Supported providers: %s\n", strings.Join(registry.GetSupportedProviders(), ", "))
					return nil
				}

				var listErr error
				buckets, listErr = app.Inventory.ListAllBuckets(cmd.Context(), providersToQuery)
				if listErr != nil {
					// Partial results are still shown
					fmt.Fprintln(c.errOut, formatter.Warning("Some providers failed: "+listErr.Error()))
				}
			} else {
				svc, err := app.StorageService(cmd.Context())
				if err != nil {
					return err
				}
				if buckets, err = svc.ListBuckets(cmd.Context()); err != nil {
					return err
				}
			}

			if len(buckets) == 0 {
				fmt.Fprintln(c.out, "No buckets found.")
				return nil
			}
			fmt.Fprintln(c.out, app.StorageFormatter.FormatBucketList(buckets))
			return nil
		},
	}
	listCmd.Flags().StringSliceVar(&cmdFlags.providersList, flags.Providers, []string{}, "Providers to query (comma-separated), or 'all' for every configured provider")

	createCmd := &cobra.Command{
		Use:   "create [first-name last-name]",
		Short: "Create a new storage bucket",
		Long: `Creates a bucket named after the given first and last name plus a random six digit suffix
(e.g., 'bucketctl bucket create jane doe' creates janedoe-482913).
Use --name to create a bucket under an explicit name instead. Both forms are checked against the existing buckets first.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if cmdFlags.name != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.application()
			if err != nil {
				return err
			}
			svc, err := app.StorageService(cmd.Context())
			if err != nil {
				return err
			}

			bucketName := cmdFlags.name
			if bucketName != "" {
				if err := svc.ValidateName(cmd.Context(), bucketName); err != nil {
					return err
				}
				err = svc.CreateBucket(cmd.Context(), bucketName, cmdFlags.location)
			} else {
				bucketName, err = svc.CreateNamedBucket(cmd.Context(), args[0], args[1], cmdFlags.location)
			}
			if err != nil {
				return fmt.Errorf("error creating bucket on %s: %w", svc.Provider(), err)
			}

			fmt.Fprintln(c.out, formatter.Success(fmt.Sprintf("Bucket %s has been created!", bucketName)))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&cmdFlags.location, flags.Location, flags.LocationShort, "", "The location/region to create the bucket in (default: the provider's default)")
	createCmd.Flags().StringVarP(&cmdFlags.name, flags.Name, flags.NameShort, "", "Create the bucket under this exact name")

	deleteCmd := &cobra.Command{
		Use:   "delete [bucket-name]",
		Short: "Delete an empty storage bucket",
		Long:  `Deletes a bucket on the active provider. The bucket must be empty. You are asked to type the bucket name unless --force is given.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucketName := args[0]

			app, err := c.application()
			if err != nil {
				return err
			}
			svc, err := app.StorageService(cmd.Context())
			if err != nil {
				return err
			}

			if !cmdFlags.force {
				confirmed, err := app.Prompter.Confirm(fmt.Sprintf("You are about to delete bucket '%s' on %s.", bucketName, svc.Provider()), bucketName)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(c.out, "Deletion cancelled.")
					return nil
				}
			}

			if err := svc.DeleteBucket(cmd.Context(), bucketName); err != nil {
				return fmt.Errorf("error deleting bucket '%s' on %s: %w", bucketName, svc.Provider(), err)
			}

			fmt.Fprintln(c.out, formatter.Success(fmt.Sprintf("The %s bucket has been deleted!", bucketName)))
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&cmdFlags.force, flags.Force, flags.ForceShort, false, "Skip the confirmation prompt")

	bucketCmd.AddCommand(listCmd, createCmd, deleteCmd)
	return bucketCmd
}

func resolveProvidersForList(requestedProviders []string, providerFactory *factory.Factory) ([]string, error) {
	var validatedProviders []string
	var invalidProviders []string
	seen := make(map[string]bool)

	for _, p := range requestedProviders {
		p = strings.ToLower(strings.TrimSpace(p))

		if p == "all" {
			return providerFactory.GetConfiguredProviders(), nil
		}
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true

		if registry.IsSupported(p) {
			if providerFactory.IsConfigured(p) {
				validatedProviders = append(validatedProviders, p)
			} else {
				return nil, fmt.Errorf("provider '%s' was requested but is not configured. Use 'bucketctl config set %s.<key> <value>'", p, p)
			}
		} else {
			invalidProviders = append(invalidProviders, p)
		}
	}

	if len(invalidProviders) > 0 {
		return nil, fmt.Errorf("unsupported providers requested: %v. Supported providers are: %v", invalidProviders, registry.GetSupportedProviders())
	}
	if len(validatedProviders) == 0 {
		return nil, errors.New("no providers requested")
	}

	return validatedProviders, nil
}
