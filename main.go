package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Eursukkul/hotel-reservation/config"
	"github.com/Eursukkul/hotel-reservation/internal/consumer"
	"github.com/Eursukkul/hotel-reservation/internal/handler"
	"github.com/Eursukkul/hotel-reservation/internal/models"
	"github.com/Eursukkul/hotel-reservation/internal/repository"
	"github.com/Eursukkul/hotel-reservation/internal/service"
	"github.com/Eursukkul/hotel-reservation/pkg/database"
	"github.com/Eursukkul/hotel-reservation/pkg/logger"
	"github.com/Eursukkul/hotel-reservation/pkg/rabbitmq"
	"go.uber.org/zap"
)

const serviceName = "hotel-reservation"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, closeStores, err := openStores(cfg)
	if err != nil {
		log.Error("failed to open record stores", zap.String("driver", cfg.StoreDriver), zap.Error(err))
		return 1
	}
	defer closeStores()

	reservationOpts := []service.ReservationOption{service.WithStrictReservations(cfg.StrictReservations)}
	handlerOpts := []handler.Option{handler.WithDefaultRooms(cfg.HotelRooms)}
	if cfg.RabbitURL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, log)
		if err != nil {
			log.Warn("reservation events disabled", zap.Error(err))
		} else {
			defer publisher.Close()
			reservationOpts = append(reservationOpts, service.WithPublisher(publisher))
		}
		handlerOpts = append(handlerOpts, handler.WithEventTail(eventTail(cfg.RabbitURL, log)))
	}

	customerSvc := service.NewCustomerService(stores[models.KindCustomer], log)
	hotelSvc := service.NewHotelService(stores[models.KindHotel], log,
		models.WithRooms(cfg.HotelRooms...),
		models.WithLogger(log),
	)
	reservationSvc := service.NewReservationService(stores[models.KindReservation], log, reservationOpts...)

	h := handler.NewCLIHandler(customerSvc, hotelSvc, reservationSvc, os.Stdout, log, handlerOpts...)
	err = h.Run(ctx, args)
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return handler.ExitCode(err)
}

// openStores builds one record store per entity kind on the configured
// driver.
func openStores(cfg *config.Config) (map[models.RecordKind]repository.RecordStore, func(), error) {
	kinds := []models.RecordKind{models.KindCustomer, models.KindHotel, models.KindReservation}
	stores := make(map[models.RecordKind]repository.RecordStore, len(kinds))

	switch cfg.StoreDriver {
	case config.DriverMemory:
		for _, kind := range kinds {
			stores[kind] = repository.NewMemoryStore()
		}
		return stores, func() {}, nil

	case config.DriverPostgres:
		db, err := database.NewPostgresDB(cfg.DSN())
		if err != nil {
			return nil, nil, err
		}
		for _, kind := range kinds {
			stores[kind] = repository.NewGormStore(db, kind)
		}
		return stores, func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}, nil

	case config.DriverRedis:
		rdb, err := database.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		for _, kind := range kinds {
			stores[kind] = repository.NewRedisStore(rdb, serviceName, kind)
		}
		return stores, func() { rdb.Close() }, nil

	default:
		stores[models.KindCustomer] = repository.NewFileStore(cfg.DataDir, repository.CustomerFiles)
		stores[models.KindHotel] = repository.NewFileStore(cfg.DataDir, repository.HotelFiles)
		stores[models.KindReservation] = repository.NewFileStore(cfg.DataDir, repository.ReservationFiles)
		return stores, func() {}, nil
	}
}

func eventTail(url string, log *zap.Logger) handler.EventTail {
	return func(ctx context.Context, w io.Writer) error {
		sub := rabbitmq.ReservationEvents()
		mq, err := rabbitmq.NewConsumer(url, sub, log)
		if err != nil {
			return err
		}
		defer mq.Close()

		msgs, err := mq.Consume()
		if err != nil {
			return err
		}
		log.Info("waiting for reservation events", zap.String("queue", sub.Queue))
		return consumer.NewEventConsumer(w, log).Run(ctx, msgs)
	}
}
