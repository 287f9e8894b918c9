package storage

import (
	"context"
	"io"
)

// ImageStore はゲーム画像の置き場所（オブジェクトストレージ）を約束。
// 成功したら公開URLを返す。
type ImageStore interface {
	UploadGameImage(ctx context.Context, filename string, contentType string, body io.Reader) (string, error)
}
