package command

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stolasapp/lectern/internal/seed"
)

func seedCommand() *cobra.Command {
	var seedValue uint64
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with sample data",
		Long: "Creates generated users and courses for development. Every generated user\n" +
			"has the password \"" + seed.Password + "\". The same seed produces the same data.",
		Args: cobra.NoArgs,
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

			if !cmd.Flags().Changed("seed") {
				seedValue = seed.Seed()
			}
			res, err := seed.Populate(cmd.Context(), store, seedValue, cfg.BcryptCost)
			if err != nil {
				return err
			}
			for _, user := range res.Users {
				logger.InfoContext(cmd.Context(), "created user",
					slog.String("name", user.FullName()),
					slog.String("email", user.EmailAddress),
				)
			}
			logger.InfoContext(cmd.Context(),
				"seeded database",
				slog.Uint64("seed", seedValue),
				slog.Int("courses", len(res.Courses)),
			)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seedValue, "seed", 0, "generator seed (default: $LECTERN_SEED or random)")
	return cmd
}
