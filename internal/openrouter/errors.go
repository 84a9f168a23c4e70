package openrouter

import "errors"

// ErrMissingAPIKey 는 API 키 미설정 오류다.
var ErrMissingAPIKey = errors.New("openrouter: api key not configured")

// ErrEmptyResponse 는 빈 응답 오류다.
var ErrEmptyResponse = errors.New("openrouter: empty completion response")
