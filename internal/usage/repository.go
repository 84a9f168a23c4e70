package usage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/park285/exam-gen-server-go/internal/config"
)

// Repository 는 usage DB 접근을 담당한다. 연결은 첫 사용 시점에 수립된다.
type Repository struct {
	cfg    config.DatabaseConfig
	logger *slog.Logger
	mu     sync.Mutex
	db     *gorm.DB
	sqlDB  *sql.DB
}

// NewRepository 는 usage 저장소를 생성한다.
func NewRepository(cfg config.DatabaseConfig, logger *slog.Logger) *Repository {
	return &Repository{
		cfg:    cfg,
		logger: logger,
	}
}

// RecordUsage 는 지정한 날짜(또는 오늘)의 토큰 사용량을 누적 저장한다.
func (r *Repository) RecordUsage(
	ctx context.Context,
	inputTokens int64,
	outputTokens int64,
	requestCount int64,
	usageDate time.Time,
) error {
	if requestCount <= 0 && inputTokens <= 0 && outputTokens <= 0 {
		return nil
	}

	db, err := r.getDB()
	if err != nil {
		return err
	}

	targetDate := usageDate
	if targetDate.IsZero() {
		targetDate = todayDate()
	}

	row := TokenUsage{
		UsageDate:    targetDate,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		RequestCount: requestCount,
		Version:      0,
	}

	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "usage_date"}},
		DoUpdates: clause.Assignments(map[string]any{
			"input_tokens":  gorm.Expr("token_usage.input_tokens + EXCLUDED.input_tokens"),
			"output_tokens": gorm.Expr("token_usage.output_tokens + EXCLUDED.output_tokens"),
			"request_count": gorm.Expr("token_usage.request_count + EXCLUDED.request_count"),
			"version":       gorm.Expr("token_usage.version + 1"),
		}),
	}).Create(&row).Error
}

// GetDailyUsage 는 특정 날짜(또는 오늘)의 사용량을 조회한다. 기록이 없으면 nil 을 반환한다.
func (r *Repository) GetDailyUsage(ctx context.Context, usageDate time.Time) (*DailyUsage, error) {
	db, err := r.getDB()
	if err != nil {
		return nil, err
	}

	targetDate := usageDate
	if targetDate.IsZero() {
		targetDate = todayDate()
	}

	var row TokenUsage
	result := db.WithContext(ctx).Where("usage_date = ?", targetDate).First(&row)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return &DailyUsage{
		UsageDate:    row.UsageDate,
		InputTokens:  row.InputTokens,
		OutputTokens: row.OutputTokens,
		RequestCount: row.RequestCount,
	}, nil
}

// GetRecentUsage 는 최근 N일 사용량을 조회한다.
func (r *Repository) GetRecentUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	db, err := r.getDB()
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 7
	}

	var rows []TokenUsage
	if err := db.WithContext(ctx).Order("usage_date desc").Limit(days).Find(&rows).Error; err != nil {
		return nil, err
	}

	usages := make([]DailyUsage, 0, len(rows))
	for _, row := range rows {
		usages = append(usages, DailyUsage{
			UsageDate:    row.UsageDate,
			InputTokens:  row.InputTokens,
			OutputTokens: row.OutputTokens,
			RequestCount: row.RequestCount,
		})
	}
	return usages, nil
}

// GetTotalUsage 는 최근 N일 합계를 조회한다.
func (r *Repository) GetTotalUsage(ctx context.Context, days int) (DailyUsage, error) {
	db, err := r.getDB()
	if err != nil {
		return DailyUsage{}, err
	}
	if days <= 0 {
		days = 30
	}

	type aggregate struct {
		InputTokens  int64
		OutputTokens int64
		RequestCount int64
	}

	var result aggregate
	if err := db.WithContext(ctx).Raw(`
			SELECT
				COALESCE(SUM(input_tokens), 0) as input_tokens,
				COALESCE(SUM(output_tokens), 0) as output_tokens,
				COALESCE(SUM(request_count), 0) as request_count
			FROM token_usage
			WHERE usage_date >= CURRENT_DATE - (?::int)`, days).Scan(&result).Error; err != nil {
		return DailyUsage{}, err
	}

	return DailyUsage{
		UsageDate:    todayDate(),
		InputTokens:  result.InputTokens,
		OutputTokens: result.OutputTokens,
		RequestCount: result.RequestCount,
	}, nil
}

// Close 는 DB 연결을 닫는다.
func (r *Repository) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sqlDB == nil {
		return
	}
	_ = r.sqlDB.Close()
	r.sqlDB = nil
	r.db = nil
}

func (r *Repository) getDB() (*gorm.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		return r.db, nil
	}

	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	db, err := gorm.Open(postgres.Open(r.cfg.DSN()), gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	r.db = db
	r.sqlDB = sqlDB
	return r.db, nil
}

func todayDate() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
