package repository

import (
	"context"
	"errors"

	"gamestore/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// ゲームの永続化（保存・取得）だけを約束。
type GameRepository interface {
	ListAll(ctx context.Context) ([]model.Game, error)
	FindByID(ctx context.Context, id int64) (model.Game, error)

	// セラーのダッシュボード用（新しい順）
	ListBySellerID(ctx context.Context, sellerID int64) ([]model.Game, error)
	// (game id, seller id) の両方が一致する1件。所有チェック込み。
	FindByIDAndSellerID(ctx context.Context, id int64, sellerID int64) (model.Game, error)

	Create(ctx context.Context, g model.Game) (int64, error)
	// idとseller_idが一致する行だけを更新する。
	Update(ctx context.Context, g model.Game) error
	// idとseller_idが一致する行だけを消す。0件でもエラーにしない。
	DeleteByIDAndSellerID(ctx context.Context, id int64, sellerID int64) error
}
