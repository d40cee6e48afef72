package repository

import (
	"context"
	"errors"
	"fmt"

	repo "ordersystem/internal/repository"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgreSQL SQLSTATE
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgQueryCanceled        = "57014"
	pgUniqueViolation      = "23505"
)

// MySQL error number
const (
	myLockWaitTimeout = 1205
	myDeadlock        = 1213
	myDuplicateEntry  = 1062
)

// ドライバ固有のエラーをrepositoryの番兵エラーに寄せる。
// 元のエラーもUnwrapで辿れるように残す
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrConflict) ||
		errors.Is(err, repo.ErrTimeout) || errors.Is(err, repo.ErrDuplicate) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", repo.ErrDuplicate, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", repo.ErrTimeout, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return fmt.Errorf("%w: %w", repo.ErrConflict, err)
		case pgQueryCanceled:
			return fmt.Errorf("%w: %w", repo.ErrTimeout, err)
		case pgUniqueViolation:
			return fmt.Errorf("%w: %w", repo.ErrDuplicate, err)
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case myDeadlock:
			return fmt.Errorf("%w: %w", repo.ErrConflict, err)
		case myLockWaitTimeout:
			return fmt.Errorf("%w: %w", repo.ErrTimeout, err)
		case myDuplicateEntry:
			return fmt.Errorf("%w: %w", repo.ErrDuplicate, err)
		}
	}

	return err
}

// 行ロック付きの読み取り（SELECT ... FOR UPDATE）。
// sqliteは行ロックを持たず、書き込みはDB単位のロックで直列化される
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
