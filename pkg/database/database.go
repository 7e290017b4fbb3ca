package database

import (
	"time"

	"VidHub.com/cmd/model"
	"VidHub.com/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	gormopentracing "gorm.io/plugin/opentracing"
)

var DB *gorm.DB

// Init 建立 MySQL 连接并自动迁移所有表
func Init() {
	var err error
	DB, err = Open(config.MysqlDSN())
	if err != nil {
		panic(err)
	}
	if err = Migrate(DB); err != nil {
		panic(err)
	}
}

func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn),
		&gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
			TranslateError:         true,
			// 引用关系由业务维护，允许出现孤儿回复
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   logger.Default.LogMode(logger.Warn),
		},
	)
	if err != nil {
		return nil, err
	}
	if err = db.Use(gormopentracing.New()); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

func Migrate(db *gorm.DB) error {
	logrus.Info("Starting tables migration...")
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Tag{},
		&model.Video{},
		&model.VideoTag{},
		&model.Comment{},
		&model.Like{},
		&model.Subscription{},
		&model.Notification{},
		&model.NotificationRecipient{},
		&model.Playlist{},
		&model.PlaylistVideo{},
		&model.Favourite{},
		&model.WatchedVideo{},
	); err != nil {
		logrus.Errorf("Failed to migrate tables: %v", err)
		return err
	}
	logrus.Info("Tables migration completed successfully")
	return nil
}

// IsNotFound gorm 未找到记录
func IsNotFound(err error) bool {
	return err != nil && errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate 唯一索引冲突，依赖 TranslateError 将 1062 转换为 gorm.ErrDuplicatedKey
func IsDuplicate(err error) bool {
	return err != nil && errors.Is(err, gorm.ErrDuplicatedKey)
}
