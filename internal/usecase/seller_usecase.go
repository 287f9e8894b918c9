package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"regexp"
	"strings"

	"gamestore/internal/domain/model"
	repo "gamestore/internal/repository"
	"gamestore/internal/storage"

	"github.com/shopspring/decimal"
)

// 許可する画像拡張子（小文字比較）
var allowedImageExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// AllowedImageFile は拡張子のallow-list判定。
func AllowedImageFile(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	ext := strings.ToLower(filename[i+1:])
	_, ok := allowedImageExtensions[ext]
	return ok
}

// SanitizeFilename はパス成分を剥がして危険な文字を_に置き換える。
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	return strings.Trim(name, "._")
}

// アップロードされた画像ファイル
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

type GameInput struct {
	Title       string
	Description string
	Price       string // フォーム入力の生文字列
	Image       *ImageUpload
}

// SaveGameResult は保存結果。ImageErrorが入っていても保存自体は成功している。
type SaveGameResult struct {
	Game       model.Game `json:"game"`
	ImageError string     `json:"image_error,omitempty"`
}

// SellerUsecase はセラーの出品管理（CRUD＋画像アップロード）。
type SellerUsecase struct {
	games  repo.GameRepository
	images storage.ImageStore
	log    Logger
}

func NewSellerUsecase(games repo.GameRepository, images storage.ImageStore, log Logger) *SellerUsecase {
	return &SellerUsecase{games: games, images: images, log: log}
}

// ダッシュボード用（新しい順）
func (u *SellerUsecase) ListMyGames(ctx context.Context, sellerID int64) ([]model.Game, error) {
	items, err := u.games.ListBySellerID(ctx, sellerID)
	if err != nil {
		return []model.Game{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// AddGame は新規出品。
// 画像アップロードの失敗はゲーム保存を失敗させない（画像なしで保存して結果に載せる）。
func (u *SellerUsecase) AddGame(ctx context.Context, sellerID int64, in GameInput) (SaveGameResult, error) {
	title, description, price, err := validateGameInput(in)
	if err != nil {
		return SaveGameResult{}, err
	}

	imageURL := ""
	imageError := ""

	if in.Image != nil && in.Image.Filename != "" {
		url, upErr := u.uploadImage(ctx, sellerID, in.Image)
		if upErr != nil {
			// 拡張子NGはバリデーションエラー。保存も中断する。
			if _, ok := AsHTTPError(upErr); ok {
				return SaveGameResult{}, upErr
			}
			u.log.Errorf("image upload failed: %v", upErr)
			imageError = "image upload failed; game saved without image"
		} else {
			imageURL = url
		}
	}

	g := model.Game{
		Title:       title,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		SellerID:    sellerID,
	}

	id, err := u.games.Create(ctx, g)
	if err != nil {
		return SaveGameResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	g.ID = id

	return SaveGameResult{Game: g, ImageError: imageError}, nil
}

// EditGame は自分のゲームだけ更新できる。他人のidは404（存在は漏らさない）。
func (u *SellerUsecase) EditGame(ctx context.Context, sellerID int64, gameID int64, in GameInput) (SaveGameResult, error) {
	if gameID <= 0 {
		return SaveGameResult{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	//所有チェック込みで1件取得
	g, err := u.games.FindByIDAndSellerID(ctx, gameID, sellerID)
	if errors.Is(err, repo.ErrNotFound) {
		return SaveGameResult{}, NewHTTPError(http.StatusNotFound, "game not found")
	}
	if err != nil {
		return SaveGameResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	title, description, price, err := validateGameInput(in)
	if err != nil {
		return SaveGameResult{}, err
	}

	imageURL := g.ImageURL // アップロードが成功したときだけ差し替える
	imageError := ""

	if in.Image != nil && in.Image.Filename != "" {
		url, upErr := u.uploadImage(ctx, sellerID, in.Image)
		if upErr != nil {
			if _, ok := AsHTTPError(upErr); ok {
				return SaveGameResult{}, upErr
			}
			u.log.Errorf("image upload failed: %v", upErr)
			imageError = "image upload failed; image unchanged"
		} else {
			imageURL = url
		}
	}

	g.Title = title
	g.Description = description
	g.Price = price
	g.ImageURL = imageURL

	if err := u.games.Update(ctx, g); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return SaveGameResult{}, NewHTTPError(http.StatusNotFound, "game not found")
		}
		return SaveGameResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return SaveGameResult{Game: g, ImageError: imageError}, nil
}

// DeleteGame も所有チェック込み。他人のゲームは触れず404。
func (u *SellerUsecase) DeleteGame(ctx context.Context, sellerID int64, gameID int64) error {
	if gameID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	_, err := u.games.FindByIDAndSellerID(ctx, gameID, sellerID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "game not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.games.DeleteByIDAndSellerID(ctx, gameID, sellerID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func validateGameInput(in GameInput) (title string, description string, price decimal.Decimal, err error) {
	title = strings.TrimSpace(in.Title)
	description = strings.TrimSpace(in.Description)
	priceStr := strings.TrimSpace(in.Price)

	if title == "" || priceStr == "" {
		return "", "", decimal.Zero, NewHTTPError(http.StatusBadRequest, "title and price are required")
	}

	price, parseErr := decimal.NewFromString(priceStr)
	if parseErr != nil {
		return "", "", decimal.Zero, NewHTTPError(http.StatusBadRequest, "price must be a valid number")
	}
	// ゼロ以下は弾く
	if price.Sign() <= 0 {
		return "", "", decimal.Zero, NewHTTPError(http.StatusBadRequest, "price must be positive")
	}

	return title, description, price, nil
}

// 拡張子チェック→サニタイズ→seller idプレフィックス→アップロード。
// バリデーションNGはHTTPError、ストレージ側の失敗は素のエラーで返す。
func (u *SellerUsecase) uploadImage(ctx context.Context, sellerID int64, img *ImageUpload) (string, error) {
	if !AllowedImageFile(img.Filename) {
		return "", NewHTTPError(http.StatusBadRequest, "invalid image type. allowed: png, jpg, jpeg, gif")
	}

	filename := SanitizeFilename(img.Filename)
	if filename == "" {
		return "", NewHTTPError(http.StatusBadRequest, "invalid image filename")
	}

	// セラー間の衝突を避けるためseller idを頭に付ける
	filename = fmt.Sprintf("%d_%s", sellerID, filename)

	return u.images.UploadGameImage(ctx, filename, img.ContentType, img.Content)
}
