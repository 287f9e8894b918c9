package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gamestore/internal/domain/model"
	repo "gamestore/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type AuthUsecase struct {
	users repo.UserRepository
	log   Logger
}

func NewAuthUsecase(users repo.UserRepository, log Logger) *AuthUsecase {
	return &AuthUsecase{users: users, log: log}
}

type RegisterInput struct {
	Email    string
	Password string
	UserType string
}

type LoginInput struct {
	Email    string
	Password string
}

// Register は会員登録。emailは小文字・trim済みに正規化して保存する。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := normalizeEmail(in.Email)

	if email == "" || in.Password == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	// 不正なuser_typeはbuyerに落とす
	role := model.RoleBuyer
	if model.ValidRole(in.UserType) {
		role = model.Role(in.UserType)
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(pwHash),
		Role:         role,
	}

	if err := u.users.Create(ctx, user); err != nil {
		// 詳細はログだけに出して、ユーザーには一般的なメッセージを返す
		u.log.Errorf("register error: %v", err)
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, NewHTTPError(http.StatusConflict, "error creating user")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "error creating user")
	}

	return user, nil
}

// Login はemail+passwordの認証。
// 未登録emailもパスワード違いも同じメッセージ（ユーザーの存在を漏らさない）。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (*model.User, error) {
	email := normalizeEmail(in.Email)

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	//bcrypt比較（定数時間）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
