package usage

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/park285/exam-gen-server-go/internal/config"
)

// Store: 사용량 저장소 인터페이스입니다.
// 테스트에서 mock 구현을 주입할 수 있도록 합니다.
type Store interface {
	// RecordUsage 토큰 사용량 기록
	RecordUsage(
		ctx context.Context,
		inputTokens int64,
		outputTokens int64,
		requestCount int64,
		usageDate time.Time,
	) error

	// GetDailyUsage 일별 사용량 조회
	GetDailyUsage(ctx context.Context, usageDate time.Time) (*DailyUsage, error)

	// GetRecentUsage 최근 N일 사용량 조회
	GetRecentUsage(ctx context.Context, days int) ([]DailyUsage, error)

	// GetTotalUsage 최근 N일 합계 조회
	GetTotalUsage(ctx context.Context, days int) (DailyUsage, error)

	// Close 리소스 정리
	Close()
}

// Repository가 Store 인터페이스를 구현하는지 컴파일 타임 확인
var _ Store = (*Repository)(nil)

// Recorder 는 요청별 토큰 사용량을 메모리에 누적한 뒤 주기적으로 DB에 적재한다.
// 비활성화 상태에서는 모든 호출이 no-op 이다.
type Recorder struct {
	store  Store
	logger *slog.Logger

	mu           sync.Mutex
	inputTokens  int64
	outputTokens int64
	requestCount int64

	flushInterval time.Duration
	stopCh        chan struct{}
	doneCh        chan struct{}
}

// NewRecorder 는 설정에 따라 Recorder 를 생성한다. 사용량 수집이 꺼져 있으면 nil 을 반환한다.
func NewRecorder(cfg config.DatabaseConfig, store Store, logger *slog.Logger) *Recorder {
	if !cfg.UsageEnabled || store == nil {
		return nil
	}

	flushInterval := time.Duration(cfg.UsageFlushIntervalSeconds) * time.Second
	if flushInterval <= 0 {
		flushInterval = 30 * time.Second
	}

	recorder := &Recorder{
		store:         store,
		logger:        logger,
		flushInterval: flushInterval,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
	go recorder.loop()

	if logger != nil {
		logger.Info("usage_recorder_started", "flush_interval", flushInterval)
	}
	return recorder
}

// Record 는 1회 요청의 토큰 사용량을 누적한다.
func (r *Recorder) Record(_ context.Context, inputTokens int64, outputTokens int64) {
	if r == nil {
		return
	}
	if inputTokens <= 0 && outputTokens <= 0 {
		return
	}

	r.mu.Lock()
	r.inputTokens += inputTokens
	r.outputTokens += outputTokens
	r.requestCount++
	r.mu.Unlock()
}

// Close 는 남은 누적분을 플러시하고 루프를 중지한다.
func (r *Recorder) Close() {
	if r == nil {
		return
	}
	close(r.stopCh)
	<-r.doneCh
}

func (r *Recorder) loop() {
	defer close(r.doneCh)

	ticker := time.NewTicker(r.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.flush()
		case <-r.stopCh:
			r.flush()
			return
		}
	}
}

func (r *Recorder) flush() {
	r.mu.Lock()
	input, output, count := r.inputTokens, r.outputTokens, r.requestCount
	r.inputTokens, r.outputTokens, r.requestCount = 0, 0, 0
	r.mu.Unlock()

	if count == 0 && input == 0 && output == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := r.store.RecordUsage(ctx, input, output, count, time.Time{}); err != nil {
		if r.logger != nil {
			r.logger.Warn("usage_db_save_failed", "err", err)
		}
		// 실패분은 다음 플러시에 합산되도록 되돌린다.
		r.mu.Lock()
		r.inputTokens += input
		r.outputTokens += output
		r.requestCount += count
		r.mu.Unlock()
	}
}
