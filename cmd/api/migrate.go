package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "迁移表结构(books, users, borrow_records)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		// 连接成功后NewDB会执行AutoMigrate
		_, cleanup, err := provideDB(cfg, logger)
		if err != nil {
			return err
		}
		cleanup()

		logger.Info("表结构迁移完成", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}
