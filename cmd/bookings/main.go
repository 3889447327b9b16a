package main

import (
	"context"

	"roombook/internal/bookings/handler"
	"roombook/internal/bookings/notification"
	"roombook/internal/bookings/repository"
	"roombook/internal/bookings/service"
	"roombook/internal/bookings/validator"
	"roombook/pkg/app"
	"roombook/pkg/clock"
	"roombook/pkg/config"
	"roombook/pkg/kafka"
	kafkaconfig "roombook/pkg/kafka/config"
	kafkamiddleware "roombook/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	if cfg.UsesMongo() {
		cfg.SetMongo()
	}

	cfg.Log.Info("Starting Bookings service")
	serverApp := app.NewApplication(cfg)

	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingSystem := initServices(cfg, serverApp, bookingValidator)

	serverApp.SetApp(handler.NewBookingHandler(bookingSystem, bookingValidator, cfg.Log))
	serverApp.OnShutdown("mongo", func(ctx context.Context) error {
		cfg.GracefulShutdown()
		return nil
	})
	serverApp.OnShutdown("notifications", func(ctx context.Context) error {
		bookingSystem.Wait()
		return nil
	})
	serverApp.Run()
}

func initServices(cfg *config.Config, serverApp *app.Application, bookingValidator *validator.BookingValidator) *service.BookingSystem {
	clk := clock.Real{}

	roomRepo := initRoomRepository(cfg, bookingValidator)
	locker := initRoomLocker(cfg)
	notifier := initNotifier(cfg, serverApp, clk)

	bookingSystem := service.NewBookingSystem(roomRepo, notifier, clk, cfg.Log,
		service.WithLocker(locker),
		service.WithNotificationTimeout(cfg.NotificationTimeout),
	)

	cfg.Log.Info("Booking system initialized",
		"room_store", cfg.RoomStore,
		"room_lock", cfg.RoomLock,
		"notifier", cfg.Notifier,
	)
	return bookingSystem
}

func initRoomRepository(cfg *config.Config, bookingValidator *validator.BookingValidator) repository.RoomRepository {
	if cfg.RoomStore == config.BackendMongo {
		return repository.NewMongoRoomRepository(cfg)
	}

	rooms, err := bookingValidator.ParseRoomSeed(cfg.RoomSeed)
	if err != nil {
		cfg.Log.Fatal("Invalid room seed", "error", err)
	}
	cfg.Log.Info("Using in-memory room store", "rooms", len(rooms))
	return repository.NewMemoryRoomRepository(rooms...)
}

func initRoomLocker(cfg *config.Config) repository.RoomLocker {
	if cfg.RoomLock == config.BackendMongo {
		return repository.NewMongoRoomLocker(cfg)
	}
	return repository.NewKeyedMutexLocker()
}

func initNotifier(cfg *config.Config, serverApp *app.Application, clk clock.Clock) notification.Gateway {
	if cfg.Notifier != config.BackendKafka {
		return notification.NewLogGateway(cfg.Log)
	}

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.BookingEventsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))

	// Registered first so it runs after the notification drain.
	serverApp.OnShutdown("kafka-producer", func(ctx context.Context) error {
		return producer.Close()
	})
	return notification.NewKafkaGateway(producer, clk)
}
