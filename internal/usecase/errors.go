package usecase

import (
	"errors"
	"fmt"

	repo "ordersystem/internal/repository"
)

// 失敗の種類。handlerでHTTPステータスに変換する
type ErrorKind int

const (
	// 入力不正（ストアに触る前に弾く）
	KindValidation ErrorKind = iota + 1
	// 参照先がない
	KindNotFound
	// 業務ルール違反（在庫不足、非公開商品、キャンセル済みなど）
	KindBusinessRule
	// ストア側の失敗
	KindInfrastructure
	// 認証失敗
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindBusinessRule:
		return "business_rule"
	case KindInfrastructure:
		return "infrastructure"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// usecaseが返すエラー。Messageはそのままクライアントに返してよい文言
type Error struct {
	Kind    ErrorKind
	Message string
	// 同じ入力でやり直せば通る可能性がある（デッドロック、ロック待ちタイムアウト）
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidationError(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewBusinessError(format string, args ...any) error {
	return &Error{Kind: KindBusinessRule, Message: fmt.Sprintf(format, args...)}
}

func NewUnauthorizedError(message string) error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// ストアの生エラーを包む。メッセージは固定で中身は外に出さない
func NewInfraError(err error) error {
	return &Error{
		Kind:      KindInfrastructure,
		Message:   "db error",
		Retryable: errors.Is(err, repo.ErrConflict) || errors.Is(err, repo.ErrTimeout),
		Err:       err,
	}
}

func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// WithinTxから返ってきたエラーの後始末。
// fn内で作った*Errorはそのまま、commit失敗などの生エラーはinfraに包む
func wrapTxErr(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsError(err); ok {
		return err
	}
	return NewInfraError(err)
}
