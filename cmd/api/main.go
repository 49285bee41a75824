// library-api 图书馆管理系统后端
//
//	library-api serve            # 启动HTTP服务
//	library-api migrate          # 只迁移表结构
//	library-api seed             # 空库时写入示例数据
//	library-api events           # 订阅并打印借阅事件
//
// @title           Library Management API
// @version         1.0
// @description     图书馆管理系统:图书、用户、借阅,以及基于大模型的摘要、搜索与推荐
// @host            localhost:5000
// @BasePath        /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "library-api",
	Short:         "图书馆管理系统后端",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"配置文件路径(默认查找 ./config/config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(eventsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(1)
	}
}

// bootstrap 加载配置并创建日志,所有子命令共用
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
