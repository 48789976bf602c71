package util

import (
	"errors"
	"fmt"
)

var (
	ErrTryoutNotFound   = errors.New("tryout not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidFilter    = errors.New("invalid filter")
	ErrPermissionDenied = errors.New("permission denied")
)

// UpstreamError 数据客户端收到非 2xx 响应或传输失败（Status 为 0）
type UpstreamError struct {
	Resource string
	Op       string
	Status   int
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s failed: %v", e.Resource, e.Op, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed with status %d: %v", e.Resource, e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s failed with status %d", e.Resource, e.Op, e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// PersistenceError 保存/删除失败，实体保持原本的本地状态
type PersistenceError struct {
	Op         string
	QuestionID string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s question %s: %v", e.Op, e.QuestionID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ConfigurationError 本地前置条件不满足，例如没有题目时开始测验
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// ValidationError 提交前必填字段缺失或取值非法
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
