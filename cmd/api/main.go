package main

import (
	"context"
	"time"

	"gamestore/internal/config"
	"gamestore/internal/domain/model"
	"gamestore/internal/handler"
	"gamestore/internal/infra/db"
	infraEvent "gamestore/internal/infra/event"
	infraRepo "gamestore/internal/infra/repository"
	infraStorage "gamestore/internal/infra/storage"
	"gamestore/internal/server"
	"gamestore/internal/session"
	"gamestore/internal/usecase"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

const sessionTTL = 24 * time.Hour

func main() {
	// .envはあれば読む（本番は環境変数だけ）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New("gamestore")

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Game{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	gameRepo := infraRepo.NewGameGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//セッショントークン
	sm := session.NewManager(cfg.SessionSecret, sessionTTL)

	//AWSコラボレータ。宛先未設定は各実装が確定失敗として返すだけ。
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		panic(err)
	}

	if cfg.SQSQueueURL == "" {
		logger.Warn("SQS_QUEUE_URL is not set: order events will not be published")
	}
	if cfg.SNSTopicARN == "" {
		logger.Warn("SNS_TOPIC_ARN is not set: order notifications will not be sent")
	}
	if cfg.S3Bucket == "" {
		logger.Warn("S3_BUCKET_NAME is not set: image uploads will fail")
	}

	publisher := infraEvent.NewSQSPublisher(awsCfg, cfg.SQSQueueURL)
	notifier := infraEvent.NewSNSNotifier(awsCfg, cfg.SNSTopicARN)
	imageStore := infraStorage.NewS3ImageStore(awsCfg, cfg.S3Bucket, cfg.AWSRegion)

	clock := &realClock{}

	//Usecase生成
	catalogUC := usecase.NewCatalogUsecase(gameRepo)
	authUC := usecase.NewAuthUsecase(userRepo, logger)
	sellerUC := usecase.NewSellerUsecase(gameRepo, imageStore, logger)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, publisher, notifier, clock, logger)

	//Handler生成＋サーバー組み立て
	e := server.New(
		sm,
		handler.NewCatalogHandler(catalogUC),
		handler.NewCartHandler(catalogUC, sm),
		handler.NewCheckoutHandler(checkoutUC, sm),
		handler.NewSellerHandler(sellerUC),
		handler.NewAuthHandler(authUC, sm),
	)

	addr := ":" + cfg.Port

	if err := server.Start(e, addr); err != nil {
		panic(err)
	}
}
