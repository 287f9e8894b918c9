package repository

import (
	"context"
	"errors"

	"gamestore/internal/domain/model"
)

// email重複（unique違反）を統一
var ErrDuplicateEmail = errors.New("email already exists")

// ユーザーの保存・取得を約束
type UserRepository interface {
	// 新規ユーザー作成。email重複はErrDuplicateEmailを返す。
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。見つからなければnil, nil。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	// メールからユーザーを1件取得する。見つからなければnil, nil。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
