package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hobbyist/internal/api"
	"github.com/mesh-intelligence/hobbyist/internal/httpapi"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the API over HTTP",
		Long: "Serve every query and mutation at POST /api/{operation} until interrupted.\n" +
			"The schema is published at GET /api/schema.",
		Args: cobra.NoArgs,
		RunE: a.runServe,
	}
	cmd.Flags().String("addr", "", "listen address (default: http.addr from config.yaml)")
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, args []string) error {
	if err := a.v.BindPFlag(cfgKeyHTTPAddr, cmd.Flags().Lookup("addr")); err != nil {
		return sysErr(err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.withService(ctx, func(ctx context.Context, svc *api.Service) error {
		handler := httpapi.NewHandler(svc, a.log.Logger)
		cfg := httpapi.Config{Addr: a.v.GetString(cfgKeyHTTPAddr)}
		return sysErr(httpapi.Run(ctx, a.log.Logger, cfg, handler))
	})
}
