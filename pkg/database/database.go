package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/Mochytk/INF225-Informagicos/internal/config"
	"github.com/Mochytk/INF225-Informagicos/internal/model"
	"github.com/Mochytk/INF225-Informagicos/pkg/logger"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "mysql":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
				cfg.User,
				cfg.Password,
				cfg.Host,
				cfg.Port,
				cfg.DBName,
				cfg.Charset,
				cfg.ParseTime,
			)
		}
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
				cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode)
		}
		return postgres.Open(dsn), nil
	case "sqlite":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "ensayos.db"
		}
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// Open connects without migrating.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	return gorm.Open(d, &gorm.Config{
		Logger: newGormLogger(cfg),
	})
}

// gormWriter forwards gorm's formatted lines to the current zap logger.
type gormWriter struct {
	level zapcore.Level
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	if ce := logger.Log.Check(w.level, fmt.Sprintf(format, args...)); ce != nil {
		ce.Write(zap.String("component", "gorm"))
	}
}

// newGormLogger logs slow queries and errors through zap, every statement when log_queries is
// set. Lookups that find nothing are expected and not logged.
func newGormLogger(cfg *config.DatabaseConfig) gormlogger.Interface {
	level, zapLevel := gormlogger.Warn, zapcore.WarnLevel
	if cfg.LogQueries {
		level, zapLevel = gormlogger.Info, zapcore.InfoLevel
	}
	return gormlogger.New(gormWriter{level: zapLevel}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Exam{},
		&model.Question{},
		&model.Option{},
		&model.Result{},
		&model.Answer{},
	)
}

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database connection established", zap.String("driver", cfg.Driver))

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		logger.Log.Info("Database migration completed")
	}

	if cfg.SeedDefaults {
		if err := Seed(db, cfg); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Seed inserts the default tag catalogue and a staff account when the tables are empty.
func Seed(db *gorm.DB, cfg *config.DatabaseConfig) error {
	var tagCount int64
	if err := db.Model(&model.Tag{}).Count(&tagCount).Error; err != nil {
		return err
	}
	if tagCount == 0 {
		defaultTags := []model.Tag{
			{Name: "Álgebra", Description: "Expresiones algebraicas, ecuaciones e inecuaciones"},
			{Name: "Geometría", Description: "Figuras planas, cuerpos y transformaciones"},
			{Name: "Probabilidad", Description: "Probabilidad y estadística"},
			{Name: "Comprensión lectora", Description: "Localizar, interpretar y evaluar información"},
		}
		for i := range defaultTags {
			if err := db.Create(&defaultTags[i]).Error; err != nil {
				return err
			}
		}
	}

	if cfg.AdminUser == "" || cfg.AdminPass == "" {
		return nil
	}
	var admin model.User
	err := db.Where("username = ?", cfg.AdminUser).First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&model.User{
		Username: cfg.AdminUser,
		Name:     cfg.AdminUser,
		Email:    cfg.AdminUser + "@localhost",
		Password: string(hashed),
		Role:     model.Admin,
		IsStaff:  true,
	}).Error
}
