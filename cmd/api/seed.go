package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/infrastructure/persistence/sqlstore"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "空库时写入示例图书和用户",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		db, cleanup, err := provideDB(cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		inserted, err := sqlstore.Seed(cmd.Context(), db)
		if err != nil {
			return err
		}
		if inserted {
			logger.Info("示例数据已写入")
		} else {
			logger.Info("已有图书数据，跳过", zap.Bool("inserted", inserted))
		}
		return nil
	},
}
