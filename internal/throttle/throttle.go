package throttle

import (
	"context"
	"time"
)

// Limiter 는 연속 호출 사이의 속도 제한 전략이다.
// 테스트에서 대기 없는 구현을 주입할 수 있도록 한다.
type Limiter interface {
	// Wait 다음 호출 전까지 대기
	Wait(ctx context.Context) error
}

// FixedDelay 는 고정 지연 제한기다.
type FixedDelay struct {
	delay time.Duration
}

// NewFixedDelay 는 고정 지연 제한기를 생성한다.
func NewFixedDelay(delay time.Duration) *FixedDelay {
	return &FixedDelay{delay: delay}
}

// Wait 은 지연 시간만큼 대기한다. 컨텍스트 취소 시 즉시 반환한다.
func (f *FixedDelay) Wait(ctx context.Context) error {
	if f.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(f.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// None 는 대기하지 않는 제한기다.
type None struct{}

// Wait 은 즉시 반환한다.
func (None) Wait(ctx context.Context) error {
	return ctx.Err()
}

var (
	_ Limiter = (*FixedDelay)(nil)
	_ Limiter = None{}
)
