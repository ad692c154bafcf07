package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"luminafi/internal/adapter/api"
	"luminafi/internal/adapter/api/handler"
	apimiddleware "luminafi/internal/adapter/api/middleware"
	"luminafi/internal/adapter/api/router"
	"luminafi/internal/adapter/repository"
	"luminafi/internal/infrastructure/chain"
	"luminafi/internal/infrastructure/firebase"
	"luminafi/internal/infrastructure/ratelimit"
	"luminafi/internal/infrastructure/storage"
	"luminafi/internal/infrastructure/websocket"
	"luminafi/internal/usecase"
	"luminafi/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, serviceAccountPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	rpcClient, err := chain.NewClient(cfg.ChainRPCURL)
	if err != nil {
		log.Fatalf("Failed to create chain client: %v", err)
	}
	reader, err := chain.NewReader(rpcClient, cfg.LuminaFiContract)
	if err != nil {
		log.Fatalf("Failed to create contract reader: %v", err)
	}
	writer, err := chain.NewWriter(rpcClient, cfg.LuminaFiContract, cfg.TokenContract, cfg.ChainFromAddress, cfg.ChainGasLimit)
	if err != nil {
		log.Fatalf("Failed to create contract writer: %v", err)
	}

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	lenderRepo := repository.NewFirestoreLenderRepository(firestoreClient)
	credentialRepo := repository.NewFirestoreCredentialRepository(firestoreClient)
	loanRepo := repository.NewFirestoreLoanRecordRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	authUseCase := usecase.NewAuthUseCase(firebaseAuthClient, cfg.SessionSigningKey, cfg.SessionTTL, chain.IsAddress)
	userUseCase := usecase.NewUserUseCase(userRepo, lenderRepo, credentialRepo, loanRepo)
	loanUseCase := usecase.NewLoanUseCase(reader, writer, userRepo, loanRepo, wsManager.Notify)
	investorUseCase := usecase.NewInvestorUseCase(reader, writer, wsManager.Notify)

	handler.Setup(authUseCase, userUseCase, loanUseCase, investorUseCase)
	handler.SetupFileHandler(storageClient, cfg.UploadMaxBytes)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authUseCase)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(ratelimit.NewRateLimiter())
	gateMiddleware := apimiddleware.NewGateMiddleware(func() *usecase.SessionGate {
		return usecase.NewSessionGate(cfg.GateMountDelay, cfg.GateRedirectDelay, nil)
	}, loanUseCase, investorUseCase)

	wsHandler := handler.NewWebSocketHandler(wsManager)

	router.Setup(e, authMiddleware, gateMiddleware, adminMiddleware, rateLimitMiddleware)
	router.SetupFileRouter(e, authMiddleware, rateLimitMiddleware)
	router.SetupWebSocketRouter(e, wsHandler, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
