package di

import (
	"fmt"
	"log/slog"

	"github.com/park285/exam-gen-server-go/internal/config"
	"github.com/park285/exam-gen-server-go/internal/logging"
)

// ProvideLogger 는 로거를 구성해 반환한다.
func ProvideLogger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}
