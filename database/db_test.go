package database

import (
	"testing"

	"bookhub/internal/config"

	"github.com/stretchr/testify/assert"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormConfig(t *testing.T) {
	t.Run("TranslatesDriverErrors", func(t *testing.T) {
		// without error translation a concurrent duplicate registration
		// surfaces as a raw pgconn error instead of gorm.ErrDuplicatedKey
		gc := gormConfig(&config.Config{GoEnv: "production"})
		assert.True(t, gc.TranslateError)

		gc = gormConfig(&config.Config{GoEnv: "development"})
		assert.True(t, gc.TranslateError)
	})

	t.Run("QueryLoggingOnlyInDevelopment", func(t *testing.T) {
		dev := gormConfig(&config.Config{GoEnv: "development"})
		assert.Equal(t, gormlogger.Default.LogMode(gormlogger.Info), dev.Logger)

		prod := gormConfig(&config.Config{GoEnv: "production"})
		assert.Equal(t, gormlogger.Default.LogMode(gormlogger.Silent), prod.Logger)
	})
}
