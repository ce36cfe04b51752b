package db

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/config"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
)

func NewDB(cfg *config.Config, logger *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Unit{},
		&models.User{},
		&models.Barber{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
		&models.CancellationHistory{},
		&models.AuditLog{},
	); err != nil {
		logger.Fatal("failed to migrate", zap.Error(err))
	}

	db.Exec(`
        UPDATE units
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	applyExclusionConstraint(db, logger)

	return db
}

// applyExclusionConstraint instala o backstop contra double-booking:
// duas linhas não canceladas do mesmo barbeiro não podem ter faixas
// [start_time, end_time) sobrepostas. A checagem em aplicação continua
// existindo, mas quem decide a corrida é o banco.
func applyExclusionConstraint(db *gorm.DB, logger *zap.Logger) {
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)

	// As colunas são timestamptz, então a faixa é tstzrange.
	err := db.Exec(`
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            barber_id WITH =,
            tstzrange(start_time, end_time) WITH &&
        )
        WHERE (status NOT IN ('cancelled', 'no_show'))
    `).Error

	if err == nil {
		return
	}

	// 42710: constraint já existe em bancos migrados anteriormente.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42710" {
		logger.Debug("exclusion constraint already present")
		return
	}

	logger.Error("failed to install exclusion constraint", zap.Error(err))
}
