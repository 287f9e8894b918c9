package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gamestore/internal/domain/model"
	repo "gamestore/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 非クリティカルな失敗をログに流すための約束（echoのloggerをそのまま渡せる形）
type Logger interface {
	Errorf(format string, args ...interface{})
}

// CatalogUsecase は公開カタログ（一覧・詳細）。
type CatalogUsecase struct {
	games repo.GameRepository
}

func NewCatalogUsecase(games repo.GameRepository) *CatalogUsecase {
	return &CatalogUsecase{games: games}
}

func (u *CatalogUsecase) ListGames(ctx context.Context) ([]model.Game, error) {
	items, err := u.games.ListAll(ctx)
	if err != nil {
		return []model.Game{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *CatalogUsecase) GetGameDetail(ctx context.Context, gameID int64) (model.Game, error) {
	if gameID <= 0 {
		return model.Game{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	g, err := u.games.FindByID(ctx, gameID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Game{}, NewHTTPError(http.StatusNotFound, "game not found")
	}
	if err != nil {
		return model.Game{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return g, nil
}
