package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	members "github.com/clubware/go-members"
)

// create-admin bootstraps the first admin out-of-band: the create-user
// endpoint itself requires an already-authenticated admin.
func newCreateAdminCmd() *cobra.Command {
	var (
		email    string
		username string
		password string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin or staff account directly in the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, ok := members.ParseRole(role)
			if !ok || !parsed.IsAssignable() {
				return fmt.Errorf("role must be one of: admin, staff")
			}

			cfg := loadConfig()
			db, err := openDB(cfg.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			repo := members.NewRepositoryManager(db)
			tokens := members.NewTokenService(
				[]byte(cfg.SigningKey),
				cfg.AccessTokenTTL,
				cfg.RefreshTokenTTL,
				cfg.Issuer,
				members.NewLogger("tokens"),
			)
			accounts := members.NewAccountService(repo, tokens)

			user, err := accounts.AdminCreate(context.Background(), members.AdminCreateInput{
				Email:    email,
				Username: username,
				Password: password,
				Role:     parsed,
			})
			if err != nil {
				return err
			}

			fmt.Printf("%s account created: %s (%s)\n", user.Role, user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&username, "username", "", "account username (required)")
	cmd.Flags().StringVar(&password, "password", "", "account password (required)")
	cmd.Flags().StringVar(&role, "role", "admin", "account role: admin or staff")

	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")

	return cmd
}
