package sqlstore

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架，驱动由database.driver决定（sqlite | mysql）
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	// 1. 选择驱动
	dialector, err := openDialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	if cfg.Database.Driver == "sqlite" {
		// SQLite同一时刻只允许一个写事务
		// 单连接让事务在连接池排队，而不是返回SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info("数据库连接成功", zap.String("driver", cfg.Database.Driver))

	// 6. 自动迁移表结构
	// 注意：生产环境应使用版本化的迁移脚本
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.Open(cfg.DSN()), nil
	case "mysql":
		return mysql.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

// AutoMigrate 自动迁移表结构
// 学习要点：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BookModel{},
		&UserModel{},
		&BorrowRecordModel{},
	)
}

// Pinger 数据库连通性检查（健康检查使用）
type Pinger struct {
	db *gorm.DB
}

// NewPinger 创建Pinger
func NewPinger(db *gorm.DB) *Pinger {
	return &Pinger{db: db}
}

// Ping 执行SELECT 1
func (p *Pinger) Ping(ctx context.Context) error {
	return p.db.WithContext(ctx).Exec("SELECT 1").Error
}

// BookModel GORM图书模型
// 设计说明:
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/book/entity.go是领域实体，不依赖GORM
// 3. Available不设置数据库默认值，创建时由实体显式给出
// （GORM会忽略带default tag的零值字段）
type BookModel struct {
	ID              uint      `gorm:"primaryKey"`
	Title           string    `gorm:"size:200;not null;comment:书名"`
	Author          string    `gorm:"size:150;not null;comment:作者"`
	ISBN            string    `gorm:"uniqueIndex;size:20;not null;comment:ISBN号"`
	Genre           string    `gorm:"size:100;comment:类别"`
	PublicationYear *int      `gorm:"comment:出版年份"`
	Description     string    `gorm:"type:text;comment:图书描述"`
	Available       bool      `gorm:"index;not null;comment:是否可借"`
	CreatedAt       time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// UserModel GORM用户模型
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null;comment:姓名"`
	Email     string    `gorm:"uniqueIndex;size:120;not null;comment:邮箱"`
	Phone     string    `gorm:"size:20;comment:电话"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BorrowRecordModel GORM借阅记录模型
// 教学要点:
// 1. 只保存book_id/user_id，不声明外键关联（删除图书不级联）
// 2. return_date可空，只在归还时写入
type BorrowRecordModel struct {
	ID         uint       `gorm:"primaryKey"`
	BookID     uint       `gorm:"index;not null;comment:图书ID"`
	UserID     uint       `gorm:"index;not null;comment:借阅者ID"`
	BorrowDate time.Time  `gorm:"not null;comment:借出时间"`
	ReturnDate *time.Time `gorm:"comment:归还时间"`
	Returned   bool       `gorm:"index;not null;comment:是否已归还"`
}

// TableName 指定表名
func (BorrowRecordModel) TableName() string {
	return "borrow_records"
}
