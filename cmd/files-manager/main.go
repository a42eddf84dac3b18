// main.go — точка входа Files Manager.
// Собирает зависимости: config, logger, MongoDB, Redis, хранилище блобов,
// репозитории, сервисы, HTTP-сервер.
package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/bigkaa/gofilesmanager/internal/api/handlers"
	"github.com/bigkaa/gofilesmanager/internal/cache"
	"github.com/bigkaa/gofilesmanager/internal/config"
	"github.com/bigkaa/gofilesmanager/internal/database"
	"github.com/bigkaa/gofilesmanager/internal/repository"
	"github.com/bigkaa/gofilesmanager/internal/server"
	"github.com/bigkaa/gofilesmanager/internal/service"
	"github.com/bigkaa/gofilesmanager/internal/storage/blobstore"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// 2. Настройка логгера
	logger := config.SetupLogger(cfg)
	logger.Info("Files Manager запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 3. MongoDB
	mongoClient, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к MongoDB", slog.String("error", err.Error()))
		log.Fatalf("MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Ошибка отключения от MongoDB", slog.String("error", err.Error()))
		}
	}()
	db := mongoClient.Database(cfg.MongoDB)

	// 4. Redis (кэш сессий)
	rdb, err := cache.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к Redis", slog.String("error", err.Error()))
		log.Fatalf("Redis: %v", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Error("Ошибка закрытия клиента Redis", slog.String("error", err.Error()))
		}
	}()

	// 5. Хранилище блобов
	blobs, err := blobstore.New(cfg.FolderPath)
	if err != nil {
		logger.Error("Ошибка инициализации хранилища блобов", slog.String("error", err.Error()))
		log.Fatalf("Blobstore: %v", err)
	}
	logger.Info("Хранилище блобов готово", slog.String("dir", blobs.Dir()))

	// 6. Репозитории + индексы
	fileRepo := repository.NewFileRepository(db)
	userRepo := repository.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.Error("Ошибка создания индексов", slog.String("error", err.Error()))
		log.Fatalf("Индексы: %v", err)
	}

	// 7. Сервисы
	metaCache := service.NewMetadataCache(cfg.CacheSize, cfg.CacheTTL)
	filesService := service.NewFilesService(fileRepo, blobs, metaCache, logger)
	usersService := service.NewUsersService(userRepo, logger)
	sessions := cache.NewSessions(rdb)

	// 8. Handlers
	healthHandler := handlers.NewHealthHandler(
		database.NewReadinessChecker(mongoClient),
		cache.NewReadinessChecker(rdb),
	)
	apiHandler := handlers.NewAPIHandler(filesService, usersService, healthHandler, logger)

	// 9. HTTP-сервер (блокирующий вызов с graceful shutdown)
	srv := server.New(cfg, logger, apiHandler, sessions)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		log.Fatalf("Сервер завершился с ошибкой: %v", err)
	}

	logger.Info("Files Manager остановлен")
}
