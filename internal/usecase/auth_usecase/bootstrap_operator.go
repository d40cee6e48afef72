package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"ordersystem/internal/domain/model"
	"ordersystem/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 起動時に作る（または作り直す）オペレーター
type BootstrapOperatorInput struct {
	Email    string
	Password string
	Role     model.Role
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

var (
	// 入力が不正
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrWeakPassword       = errors.New("weak password")
	ErrInvalidRole        = errors.New("invalid role")
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 管理用オペレーターの作成。既にいればパスワード・ロールを上書きして有効化する
type BootstrapOperatorUsecase struct {
	operators repository.OperatorRepository
	hasher    PasswordHasher
	clock     Clock
}

// DI
func NewBootstrapOperatorUsecase(
	operators repository.OperatorRepository,
	hasher PasswordHasher,
	clock Clock,
) *BootstrapOperatorUsecase {
	return &BootstrapOperatorUsecase{
		operators: operators,
		hasher:    hasher,
		clock:     clock,
	}
}

func (u *BootstrapOperatorUsecase) Execute(ctx context.Context, in BootstrapOperatorInput) (model.Operator, error) {
	email := strings.TrimSpace(in.Email)

	// emailの形式チェック
	if !isValidEmailFormat(email) {
		return model.Operator{}, ErrInvalidEmailFormat
	}

	// password の長さチェック（最小12文字）
	if len(in.Password) < 12 {
		return model.Operator{}, ErrPasswordTooShort
	}

	// よくある弱いパスワードの拒否
	if isWeakPassword(in.Password) {
		return model.Operator{}, ErrWeakPassword
	}

	if in.Role != model.RoleAdmin && in.Role != model.RoleStaff {
		return model.Operator{}, ErrInvalidRole
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.Operator{}, err
	}

	existing, err := u.operators.FindByEmail(ctx, email)
	if err == nil {
		existing.PasswordHash = hashed
		existing.Role = in.Role
		existing.IsActive = true
		if err := u.operators.Update(ctx, existing); err != nil {
			return model.Operator{}, err
		}
		existing.PasswordHash = ""
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return model.Operator{}, err
	}

	now := u.clock.Now()
	op, err := u.operators.Create(ctx, model.Operator{
		Email:        email,
		PasswordHash: hashed, // ハッシュを保存（平文は保存しない）
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return model.Operator{}, err
	}

	// 返すときは password を空にして漏洩防止
	op.PasswordHash = ""
	return op, nil
}

// メールチェック
func isValidEmailFormat(email string) bool {
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

// パスワードのよくある弱いパスワード
func isWeakPassword(password string) bool {
	normalized := strings.ToLower(strings.TrimSpace(password))

	weak := map[string]struct{}{
		"password":     {},
		"password123":  {},
		"123456789012": {},
		"1234567890":   {},
		"12345678":     {},
		"qwerty":       {},
		"qwertyuiop":   {},
		"letmein":      {},
		"admin":        {},
		"admin123":     {},
	}

	_, ok := weak[normalized]
	return ok
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

// bcryptでハッシュ化
func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

// 平文(plain)をbcryptで比較
func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
