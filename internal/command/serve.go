package command

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/stolasapp/lectern/internal/api"
	"github.com/stolasapp/lectern/internal/seed"
	"github.com/stolasapp/lectern/internal/server"
	"github.com/stolasapp/lectern/internal/storage"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serve the users and courses REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			// In dev mode, start with sample data
			if cfg.DevMode {
				if err = seedIfEmpty(cmd, logger, store, cfg.BcryptCost); err != nil {
					return err
				}
			}

			srv, err := api.New(cfg, logger, store)
			if err != nil {
				return err
			}

			grp, ctx := errgroup.WithContext(cmd.Context())
			if _, err = server.Start(ctx, grp, logger, cfg.Address(), srv); err != nil {
				return err
			}
			return grp.Wait()
		},
	}
}

func seedIfEmpty(cmd *cobra.Command, logger *slog.Logger, store storage.Store, cost int) error {
	courses, err := store.ListCourses(cmd.Context())
	if err != nil || len(courses) > 0 {
		return err
	}
	seedValue := seed.Seed()
	res, err := seed.Populate(cmd.Context(), store, seedValue, cost)
	if err != nil {
		return err
	}
	logger.InfoContext(cmd.Context(),
		"seeded empty database",
		slog.Uint64("seed", seedValue),
		slog.Int("users", len(res.Users)),
		slog.Int("courses", len(res.Courses)),
		slog.String("password", seed.Password),
	)
	return nil
}
