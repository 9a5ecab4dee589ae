package command

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stolasapp/lectern/internal/sec"
	"github.com/stolasapp/lectern/internal/storage/db"
)

func userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User commands",
	}
	cmd.AddCommand(
		userCreateCommand(),
		userDeleteCommand(),
	)
	return cmd
}

func userCreateCommand() *cobra.Command {
	var firstName, lastName string
	cmd := &cobra.Command{
		Use:   "create EMAIL",
		Short: "Create user",
		Long: "Creates a user that logs in with the provided email address and password.\n" +
			"Passwords may be provided via stdin or through the interactive prompt.",

		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			cfg, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			email := args[0]
			passwd, err := prompt("password: ", true)
			if err != nil {
				return err
			} else if len(passwd) == 0 {
				return errors.New("password must not be empty")
			}
			hash, err := sec.HashPassword(passwd, cfg.BcryptCost)
			if err != nil {
				return err
			}
			user, err := store.CreateUser(cmd.Context(), db.User{
				FirstName:    firstName,
				LastName:     lastName,
				EmailAddress: email,
				PasswordHash: hash,
			})
			if err != nil {
				return fmt.Errorf("failed to create user %s: %w", email, err)
			}

			logger.InfoContext(cmd.Context(), "created user",
				slog.String("name", user.FullName()),
				slog.String("email", email),
				slog.Uint64("id", user.ID),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&firstName, "first", "", "first name of the user")
	cmd.Flags().StringVar(&lastName, "last", "", "last name of the user")
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("last")
	return cmd
}

func userDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete EMAIL",
		Short: "Delete user",
		Long: "Permanently deletes the user and all the courses they own. " +
			"This operation is permanent and irreversible.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			_, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			email := args[0]
			logger = logger.With(slog.String("email", email))
			user, err := store.GetUserByEmail(cmd.Context(), email)
			if err != nil {
				return err
			}
			resp, err := prompt("Are you sure you want to delete this user? [y|N] ", false)
			if !bytes.Equal(resp, []byte{'y'}) || err != nil {
				logger.InfoContext(cmd.Context(), "aborted user deletion")
				return err
			}
			if err = store.DeleteUser(cmd.Context(), user.ID); err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "user deleted")
			return nil
		},
	}
}
