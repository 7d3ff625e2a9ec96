// Package serve runs the HTTP API
package serve

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"fjacquet/misi/cmd/common"

	"github.com/spf13/cobra"
)

// Cmd represents the serve command
var Cmd = NewCommand()

// NewCommand builds the serve command.
func NewCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger over HTTP",
		Long: `Serve the ledger as a JSON API under /api until interrupted. The listen
address defaults to server.addr from the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			cfg := env.Container.GetConfig()
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}

			ctx, stop := signal.NotifyContext(env.Ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			timeout := time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second
			return env.Container.GetServer().ListenAndServe(ctx, addr, timeout)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")
	return cmd
}
