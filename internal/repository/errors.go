package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// 一意制約違反
	ErrDuplicate = errors.New("duplicate key")

	// デッドロック・直列化失敗・ロック取得失敗（最初からやり直せば通る可能性がある）
	ErrConflict = errors.New("transaction conflict")

	// ロック待ちやステートメントのタイムアウト
	ErrTimeout = errors.New("store timeout")
)
