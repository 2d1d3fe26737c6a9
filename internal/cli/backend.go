package cli

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/hobbyist/internal/api"
	"github.com/mesh-intelligence/hobbyist/pkg/hobbyist"
)

// withService attaches the configured backend, runs fn against a Service
// over it, and detaches afterwards.
func (a *app) withService(ctx context.Context, fn func(context.Context, *api.Service) error) (err error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return err
	}

	b, err := hobbyist.Open(cfg)
	if err != nil {
		return fmt.Errorf("attach %s backend: %w", cfg.Backend, err)
	}
	log := a.log.With().Str("backend", cfg.Backend).Logger()
	log.Debug().Str("data_dir", cfg.DataDir).Msg("backend attached")

	defer func() {
		if derr := b.Detach(); derr != nil && err == nil {
			err = sysErr(fmt.Errorf("detach backend: %w", derr))
		}
		log.Debug().Msg("backend detached")
	}()

	svc, err := api.FromBackend(b)
	if err != nil {
		return sysErr(err)
	}
	return fn(ctx, svc)
}
