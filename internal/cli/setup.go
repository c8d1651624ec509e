package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/beamframe/beamframe/pkg/setup"
)

// setupCommand creates the setup command group for the shared setup store.
func (c *CLI) setupCommand() *cobra.Command {
	var (
		redisAddr     string
		redisPassword string
		redisDB       int
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Manage named machine setups in a shared Redis store",
		Long: `Manage named machine setups in a shared Redis store.

A setup is the full set of joint parameters of a machine. Setups are
stored under a name so several processes can pose machines from the
same shared source.`,
	}

	cmd.PersistentFlags().StringVar(&redisAddr, "redis", "localhost:6379", "Redis address")
	cmd.PersistentFlags().StringVar(&redisPassword, "redis-password", "", "Redis password")
	cmd.PersistentFlags().IntVar(&redisDB, "redis-db", 0, "Redis database number")

	store := func() setup.Store {
		return setup.NewRedisStore(redisAddr, redisPassword, redisDB)
	}

	cmd.AddCommand(c.setupSaveCommand(store))
	cmd.AddCommand(c.setupShowCommand(store))
	cmd.AddCommand(c.setupListCommand(store))
	cmd.AddCommand(c.setupDeleteCommand(store))

	return cmd
}

func (c *CLI) setupSaveCommand(store func() setup.Store) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "save [name]",
		Short: "Store a setup file under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadParameters(file)
			if err != nil {
				return err
			}
			if err := store().Save(cmd.Context(), args[0], p); err != nil {
				return err
			}
			c.Logger.Info("saved setup", "name", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "TOML setup file (default: home position)")

	return cmd
}

func (c *CLI) setupShowCommand(store func() setup.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Print a stored setup as TOML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store().Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(p)
		},
	}
	return cmd
}

func (c *CLI) setupListCommand(store func() setup.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored setup names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := store().List(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	return cmd
}

func (c *CLI) setupDeleteCommand(store func() setup.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored setup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			c.Logger.Info("deleted setup", "name", args[0])
			return nil
		},
	}
	return cmd
}
