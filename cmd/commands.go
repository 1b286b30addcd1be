package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/m04kA/PartyVenue-BookingService/internal/config"
	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PartyVenue-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PartyVenue-BookingService/internal/service/auth"
	getDayScheduleUC "github.com/m04kA/PartyVenue-BookingService/internal/usecase/get_day_schedule"
	"github.com/m04kA/PartyVenue-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PartyVenue-BookingService/pkg/logger"
	"github.com/m04kA/PartyVenue-BookingService/pkg/psqlbuilder"
)

// MigrateCmd применяет миграции и завершается
type MigrateCmd struct{}

func (c *MigrateCmd) Run(g *Globals) error {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	db, err := openDatabase(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	return db.Close()
}

// SlotsCmd выводит слоты на дату с текущей занятостью
type SlotsCmd struct {
	Date string `arg:"" help:"Дата в формате YYYY-MM-DD."`
}

func (c *SlotsCmd) Run(g *Globals) error {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return err
	}

	// Лог пишется в stderr, таблица в stdout
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	ctx := context.Background()
	rawDB, err := openDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer rawDB.Close()

	repo := bookingRepo.NewRepository(dbmetrics.Wrap(rawDB, nil), psqlbuilder.New(cfg.Database.Dialect()))
	uc := getDayScheduleUC.NewUseCase(repo, domain.DefaultSlotCalendar(),
		domain.AllocationPolicy{HardCap: cfg.Booking.HardCap}, log)

	day, err := uc.Execute(ctx, &getDayScheduleUC.Request{Date: c.Date})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s (%s)\n", day.Date.Format(domain.DateFormat), day.Weekday)
	for _, slot := range day.Slots {
		fmt.Fprintf(w, "%s\t%s\t%s-%s\t%d/%d\tnext area %d\n",
			slot.Code, slot.Label, slot.StartTime, slot.EndTime,
			slot.Occupancy, slot.Capacity, slot.NextArea)
	}
	return w.Flush()
}

// HashPINCmd печатает bcrypt хэш PIN
type HashPINCmd struct {
	PIN string `arg:"" name:"pin" help:"PIN сотрудников."`
}

func (c *HashPINCmd) Run(_ *Globals) error {
	hash, err := auth.HashPIN(c.PIN)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}
