package main

import (
	"context"
	"log"
	"os"

	"github.com/Ajmalajjuca/Bite-check/config"
	"github.com/Ajmalajjuca/Bite-check/controllers"
	"github.com/Ajmalajjuca/Bite-check/logger"
	"github.com/Ajmalajjuca/Bite-check/middlewares"
	"github.com/Ajmalajjuca/Bite-check/routes"
	"github.com/Ajmalajjuca/Bite-check/services"
	"github.com/Ajmalajjuca/Bite-check/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	lg := logger.New(logger.ParseLevel(cfg.LogLevel), os.Stderr)

	// accounts and goals live in Postgres whatever STORE_BACKEND says
	if err := config.InitDB(cfg); err != nil {
		log.Fatalf("database: %v", err)
	}

	ctx := context.Background()
	var awsCfg aws.Config
	needAWS := cfg.StoreBackend == config.StoreDynamoDB || cfg.S3Bucket != "" ||
		cfg.SESEmail != "" || cfg.RekognitionEnabled
	if needAWS {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			log.Fatalf("aws config: %v", err)
		}
	}

	var store services.CalorieStore
	switch cfg.StoreBackend {
	case config.StoreDynamoDB:
		store = services.NewDynamoCalorieStore(dynamodb.NewFromConfig(awsCfg), cfg.DynamoCaloriesTable, cfg.DynamoUserDateIndex)
	case config.StoreMemory:
		store = services.NewMemoryCalorieStore()
	default:
		store = services.NewGormCalorieStore(config.DB)
	}
	lg.Info("calorie store: %s", cfg.StoreBackend)

	var mailer services.Mailer = &utils.LogMailer{Log: lg}
	if cfg.SESEmail != "" {
		mailer = utils.NewSESMailer(awsCfg, cfg.SESEmail)
	}

	var uploader services.ImageUploader
	if cfg.S3Bucket != "" {
		uploader = utils.NewS3Uploader(awsCfg, cfg.S3Region, cfg.S3Bucket, cfg.CloudFrontURL)
	}

	var labels services.LabelDetector
	if cfg.RekognitionEnabled {
		labels = services.NewRekognitionService(awsCfg)
	}
	if cfg.GeminiAPIKey == "" {
		lg.Warn("GEMINI_API_KEY not set, detection requests will fail")
	}

	secret := []byte(cfg.JWTSecret)
	hub := services.NewRealtimeHub()
	authSvc := services.NewAuthService(config.DB, mailer, secret, cfg.JWTTTL, lg)
	goalSvc := services.NewDailyGoalService(config.DB, cfg.DefaultCalorieGoal)
	calSvc := services.NewCalorieService(store, goalSvc, cfg.Location, lg, services.WithNotifier(hub))
	gemini := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiTimeout)

	h := &routes.Handlers{
		Auth:     controllers.NewAuthController(authSvc),
		User:     controllers.NewUserController(services.NewUserService(config.DB, uploader)),
		Detect:   controllers.NewDetectController(services.NewDetectionService(gemini, labels, lg)),
		Calories: controllers.NewCalorieController(calSvc, cfg.Location),
		Goals:    controllers.NewGoalController(goalSvc),
		Realtime: controllers.NewRealtimeController(hub),
	}

	r := routes.SetupRouter(h, middlewares.AuthMiddleware(secret, authSvc))
	lg.Info("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
