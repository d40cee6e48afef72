package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"ordersystem/internal/domain/model"
	"ordersystem/internal/repository"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string
	Password string
}

// token 形
type JwtAccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// handlerがJSONにして返す
type LoginOutput struct {
	Operator model.Operator `json:"operator"`
	Token    JwtAccessToken `json:"token"`
}

// メールまたはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// 停止済みオペレーター
var ErrOperatorInactive = errors.New("operator is inactive")

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(operatorID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type LoginUsecase struct {
	operators repository.OperatorRepository
	verifier  PasswordVerifier
	issuer    AccessTokenIssuer
	clock     Clock
}

func NewLoginUsecase(
	operators repository.OperatorRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		operators: operators,
		verifier:  verifier,
		issuer:    issuer,
		clock:     clock,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return out, ErrInvalidCredentials
	}

	//emailでオペレーター取得
	op, err := u.operators.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	//パスワード照合（停止判定より先に行い、停止の有無を漏らさない）
	if ok := u.verifier.Verify(in.Password, op.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	//停止オペレーターはログイン不可
	if !op.IsActive {
		return out, ErrOperatorInactive
	}

	//AccessToken発行
	now := u.clock.Now()
	accessToken, accessExp, err := u.issuer.Issue(op.ID, op.Role, now)
	if err != nil {
		return out, err
	}

	//最終ログイン時刻更新
	if err := u.operators.TouchLastLogin(ctx, op.ID, now); err != nil {
		return out, err
	}
	op.LastLoginAt = &now

	out.Operator = op
	out.Token = JwtAccessToken{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(accessExp.Sub(now).Seconds()),
	}
	return out, nil
}
