package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"gamestore/internal/domain/model"
	repo "gamestore/internal/repository"
	"gamestore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type CatalogGameRepoMock struct{ mock.Mock }

func (m *CatalogGameRepoMock) ListAll(ctx context.Context) ([]model.Game, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Game)
	return items, args.Error(1)
}

func (m *CatalogGameRepoMock) FindByID(ctx context.Context, id int64) (model.Game, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(model.Game)
	return g, args.Error(1)
}

func (m *CatalogGameRepoMock) ListBySellerID(ctx context.Context, sellerID int64) ([]model.Game, error) {
	panic("not used in CatalogUsecase tests")
}

func (m *CatalogGameRepoMock) FindByIDAndSellerID(ctx context.Context, id int64, sellerID int64) (model.Game, error) {
	panic("not used in CatalogUsecase tests")
}

func (m *CatalogGameRepoMock) Create(ctx context.Context, g model.Game) (int64, error) {
	panic("not used in CatalogUsecase tests")
}

func (m *CatalogGameRepoMock) Update(ctx context.Context, g model.Game) error {
	panic("not used in CatalogUsecase tests")
}

func (m *CatalogGameRepoMock) DeleteByIDAndSellerID(ctx context.Context, id int64, sellerID int64) error {
	panic("not used in CatalogUsecase tests")
}

func TestCatalogUsecase_ListGames(t *testing.T) {
	ctx := context.Background()

	games := new(CatalogGameRepoMock)
	uc := usecase.NewCatalogUsecase(games)

	games.On("ListAll", mock.Anything).Return([]model.Game{{ID: 1, Title: "Space Quest"}}, nil)

	out, err := uc.ListGames(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out))
}

func TestCatalogUsecase_ListGames_DBError(t *testing.T) {
	ctx := context.Background()

	games := new(CatalogGameRepoMock)
	uc := usecase.NewCatalogUsecase(games)

	games.On("ListAll", mock.Anything).Return(nil, errors.New("boom"))

	_, err := uc.ListGames(ctx)
	assertHTTPError(t, err, http.StatusInternalServerError, "db error")
}

func TestCatalogUsecase_GetGameDetail(t *testing.T) {
	ctx := context.Background()

	games := new(CatalogGameRepoMock)
	uc := usecase.NewCatalogUsecase(games)

	games.On("FindByID", mock.Anything, int64(1)).Return(model.Game{ID: 1, Title: "Space Quest"}, nil)

	g, err := uc.GetGameDetail(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, "Space Quest", g.Title)
}

func TestCatalogUsecase_GetGameDetail_NotFound(t *testing.T) {
	ctx := context.Background()

	games := new(CatalogGameRepoMock)
	uc := usecase.NewCatalogUsecase(games)

	games.On("FindByID", mock.Anything, int64(99)).Return(model.Game{}, repo.ErrNotFound)

	_, err := uc.GetGameDetail(ctx, 99)
	assertHTTPError(t, err, http.StatusNotFound, "game not found")
}

func TestCatalogUsecase_GetGameDetail_InvalidID(t *testing.T) {
	uc := usecase.NewCatalogUsecase(new(CatalogGameRepoMock))

	_, err := uc.GetGameDetail(context.Background(), 0)
	assertHTTPError(t, err, http.StatusBadRequest, "invalid id")

	_, err = uc.GetGameDetail(context.Background(), -5)
	assertHTTPError(t, err, http.StatusBadRequest, "invalid id")
}
