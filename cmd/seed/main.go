package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/redislock"
	availabilityRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/availability"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	scheduleService "github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/events"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

var (
	roles = []string{"stylist", "barber", "colorist", "nail technician", "makeup artist"}

	serviceNames = []string{
		"Haircut", "Beard trim", "Coloring", "Highlights", "Blow dry",
		"Manicure", "Pedicure", "Makeup", "Keratin treatment", "Styling",
	}

	durations = []int{15, 30, 45, 60, 90, 120}

	// Шаблон на день недели, воскресенье - выходной
	weekTemplates = map[time.Weekday]string{
		time.Monday:    "weekday",
		time.Tuesday:   "weekday",
		time.Wednesday: "full",
		time.Thursday:  "weekday",
		time.Friday:    "full",
		time.Saturday:  "weekend",
	}
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	staffCount := flag.Int("staff", 5, "number of staff members")
	customerCount := flag.Int("customers", 50, "number of customers")
	days := flag.Int("days", 14, "days of availability starting today")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	wrappedDB := dbmetrics.Wrap(db, nil, "seed")
	catalog := catalogRepo.NewRepository(wrappedDB)
	schedule := scheduleService.NewService(
		availabilityRepo.NewRepository(wrappedDB),
		catalog,
		txmanager.NewTransactionManager(wrappedDB),
		redislock.NoopLocker{},
		events.NoopPublisher{},
		log,
		0,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log.Info("Seed starting: staff=%d, customers=%d, days=%d", *staffCount, *customerCount, *days)

	if err := seedServices(ctx, catalog); err != nil {
		log.Fatal("Failed to seed services: %v", err)
	}

	staffIDs, err := seedStaff(ctx, catalog, *staffCount)
	if err != nil {
		log.Fatal("Failed to seed staff: %v", err)
	}

	if err := seedCustomers(ctx, catalog, *customerCount); err != nil {
		log.Fatal("Failed to seed customers: %v", err)
	}

	if err := seedAvailability(ctx, schedule, staffIDs, *days); err != nil {
		log.Fatal("Failed to seed availability: %v", err)
	}

	log.Info("Seed complete")
}

func seedServices(ctx context.Context, repo *catalogRepo.Repository) error {
	for _, name := range serviceNames {
		_, err := repo.CreateService(ctx, &domain.Service{
			Name:            name,
			Price:           float64(gofakeit.Number(10, 150)),
			DurationMinutes: durations[gofakeit.Number(0, len(durations)-1)],
			IsActive:        true,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func seedStaff(ctx context.Context, repo *catalogRepo.Repository, count int) ([]int64, error) {
	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		staff, err := repo.CreateStaff(ctx, &domain.Staff{
			Name:     gofakeit.Name(),
			Role:     roles[gofakeit.Number(0, len(roles)-1)],
			IsActive: true,
		})
		if err != nil {
			return nil, err
		}
		ids = append(ids, staff.ID)
	}
	return ids, nil
}

func seedCustomers(ctx context.Context, repo *catalogRepo.Repository, count int) error {
	for i := 0; i < count; i++ {
		customer := &domain.Customer{
			Name:  gofakeit.Name(),
			Phone: ptr.Ptr(gofakeit.Phone()),
		}
		if gofakeit.Bool() {
			customer.Email = ptr.Ptr(gofakeit.Email())
		}
		if _, err := repo.CreateCustomer(ctx, customer); err != nil {
			return err
		}
	}
	return nil
}

func seedAvailability(ctx context.Context, schedule *scheduleService.Service, staffIDs []int64, days int) error {
	today := domain.DateOnly(time.Now())
	for _, staffID := range staffIDs {
		for i := 0; i < days; i++ {
			date := today.AddDate(0, 0, i)
			templateID, ok := weekTemplates[date.Weekday()]
			if !ok {
				continue
			}
			if _, err := schedule.ApplyTemplate(ctx, staffID, date, templateID); err != nil {
				return fmt.Errorf("staff %d, date %s: %w", staffID, date.Format(domain.DateFormat), err)
			}
		}
	}
	return nil
}
