package openrouter

import "context"

// LLM 은 LLM 클라이언트 인터페이스다.
// 테스트에서 mock 구현을 주입할 수 있도록 한다.
type LLM interface {
	// Chat 채팅 요청 수행
	Chat(ctx context.Context, req Request) (string, error)

	// Model 설정된 모델 이름
	Model() string
}

// Client가 LLM 인터페이스를 구현하는지 컴파일 타임 확인
var _ LLM = (*Client)(nil)
