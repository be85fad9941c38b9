package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/elisiyan/internal/app"
	"github.com/elisiyan/internal/config"
	"github.com/elisiyan/internal/logger"

	"github.com/spf13/cobra"
)

var (
	// 全局参数，非空时覆盖配置文件
	dbDriver string
	dbDSN    string
	logLevel string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "manage",
	Short: "Elisiyan catalog management commands",
	Long: `Management commands for the Elisiyan catalog backend.

Configuration is read from config.yml (., ../, ./etc) and environment variables,
the same way the API server reads it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
		if strings.TrimSpace(logLevel) != "" {
			if err := logger.SetLevel(logLevel); err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
		}
		if strings.TrimSpace(dbDriver) != "" {
			cfg.Database.Driver = dbDriver
		}
		if strings.TrimSpace(dbDSN) != "" {
			cfg.Database.DSN = dbDSN
		}
		if err := app.OpenDatabase(cfg); err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbDriver, "driver", "", "Database driver override (sqlite or postgres)")
	rootCmd.PersistentFlags().StringVar(&dbDSN, "dsn", "", "Database DSN override")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(createSuperuserCmd)
}
