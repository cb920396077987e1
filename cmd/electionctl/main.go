package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vncsmyrnk/election/internal/app"
	"github.com/vncsmyrnk/election/internal/config"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
	"github.com/vncsmyrnk/election/internal/core/services"
)

func main() {
	_ = godotenv.Load()

	if err := newCLI(services.NewSystemClock()).execute(context.Background()); err != nil {
		os.Exit(1)
	}
}

// cli carries the state shared by every subcommand of one invocation.
type cli struct {
	clock      ports.Clock
	configPath string
	account    string
	cfg        *config.Config
	app        *app.App
	root       *cobra.Command
}

func newCLI(clock ports.Clock) *cli {
	c := &cli{clock: clock}

	c.root = &cobra.Command{
		Use:          "electionctl",
		Short:        "Manage elections, candidacies and votes",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd)
		},
	}
	c.root.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to a YAML config file")
	c.root.PersistentFlags().StringVar(&c.account, "as", "", "Account id the command runs as")

	c.root.AddCommand(
		c.electionsCmd(),
		c.candidatesCmd(),
		c.votesCmd(),
		c.tokenCmd(),
	)
	return c
}

// execute runs the command line and closes the store, also when the command failed.
func (c *cli) execute(ctx context.Context) error {
	err := c.root.ExecuteContext(ctx)
	if c.app == nil {
		return err
	}

	if closeErr := c.app.Store.Close(); closeErr != nil {
		fmt.Fprintln(c.root.ErrOrStderr(), "Error: failed to close store:", closeErr)
		if err == nil {
			err = closeErr
		}
	}
	return err
}

func (c *cli) open(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	// Issuing tokens needs no storage.
	if cmd.Annotations["storage"] == "none" {
		return nil
	}

	if cfg.Storage.Driver == config.DriverMemory {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: storage driver is memory; nothing is kept after electionctl exits")
	}

	store, err := config.OpenStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	c.app = app.New(store, cfg, c.clock)
	return nil
}

func (c *cli) caller() (domain.AccountID, error) {
	if c.account == "" {
		return "", fmt.Errorf("--as is required")
	}
	return domain.AccountID(c.account), nil
}

func parseElectionID(s string) (domain.ElectionID, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid election id %q", s)
	}
	return domain.ElectionID(id), nil
}
