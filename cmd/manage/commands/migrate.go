package commands

import (
	"fmt"

	"github.com/elisiyan/internal/authz"
	"github.com/elisiyan/internal/models"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update tables and the authorization policy table",
	Long: `Apply the schema to the configured database, make sure the default category
exists and write the built-in role policies into casbin_rule.

Examples:
  manage migrate
  manage migrate --driver postgres --dsn "host=127.0.0.1 user=shop dbname=shop"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := models.AutoMigrate(); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		if err := models.EnsureDefaultCategory(models.DB, cfg.Catalog.DefaultCategoryID, cfg.Catalog.DefaultCategoryName); err != nil {
			return fmt.Errorf("ensure default category: %w", err)
		}
		authzService, err := authz.NewService(models.DB)
		if err != nil {
			return fmt.Errorf("init authz: %w", err)
		}
		if err := authzService.BootstrapPolicyTable(); err != nil {
			return fmt.Errorf("bootstrap policy table: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}
