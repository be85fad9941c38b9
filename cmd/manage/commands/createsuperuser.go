package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/elisiyan/internal/config"
	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/service"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const superuserPasswordEnv = "ELISIYAN_SUPERUSER_PASSWORD"

var (
	superuserName     string
	superuserEmail    string
	superuserPassword string
)

var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Create an active superuser account",
	Long: `Create an active superuser. The password may be passed with --password or
through the ELISIYAN_SUPERUSER_PASSWORD environment variable, and must satisfy the
configured password policy.

Examples:
  manage createsuperuser --username root --email root@example.com --password 'S3curePass'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := superuserPassword
		if password == "" {
			password = os.Getenv(superuserPasswordEnv)
		}
		user, err := createSuperuser(models.DB, cfg.Security.PasswordPolicy, superuserName, superuserEmail, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "superuser %s (id=%d) created\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	createSuperuserCmd.Flags().StringVar(&superuserName, "username", "", "Username (required)")
	createSuperuserCmd.Flags().StringVar(&superuserEmail, "email", "", "Email (required)")
	createSuperuserCmd.Flags().StringVar(&superuserPassword, "password", "", "Password, falls back to "+superuserPasswordEnv)
	_ = createSuperuserCmd.MarkFlagRequired("username")
	_ = createSuperuserCmd.MarkFlagRequired("email")
}

func createSuperuser(db *gorm.DB, policy config.PasswordPolicyConfig, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username is required")
	}
	normalizedEmail, err := service.NormalizeEmail(email)
	if err != nil {
		return nil, fmt.Errorf("email %q is invalid", email)
	}
	if password == "" {
		return nil, errors.New("password is required")
	}
	if err := service.ValidatePassword(policy, password); err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, normalizedEmail).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("username or email already registered")
	}
	return models.CreateSuperuser(db, username, normalizedEmail, password)
}
