package guard

// Guard 는 지문 검증 인터페이스다.
// 테스트에서 mock 구현을 주입할 수 있도록 한다.
type Guard interface {
	// Evaluate 지문 평가
	Evaluate(input string) Evaluation

	// EnsureSafe 위험 지문을 에러로 반환
	EnsureSafe(input string) error

	// IsMalicious 지문이 위험한지 여부
	IsMalicious(input string) bool
}

// PassageGuard가 Guard 인터페이스를 구현하는지 컴파일 타임 확인
var _ Guard = (*PassageGuard)(nil)
