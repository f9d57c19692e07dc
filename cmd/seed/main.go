// Command seed registers a handful of demo users and gives each of them a
// few calendar slots, some of them swappable. It goes through the same
// services as the API so every row respects the usual validation.
//
// Flags:
//
//	--password  password shared by all demo users
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/slotswap-backend/internal/app"
	"github.com/heartmarshall/slotswap-backend/internal/config"
	"github.com/heartmarshall/slotswap-backend/internal/domain"
	authsvc "github.com/heartmarshall/slotswap-backend/internal/service/auth"
	eventsvc "github.com/heartmarshall/slotswap-backend/internal/service/event"
	"github.com/heartmarshall/slotswap-backend/pkg/ctxutil"
)

type demoUser struct {
	name  string
	email string
}

var demoUsers = []demoUser{
	{name: "Ada Lovelace", email: "ada@example.com"},
	{name: "Alan Turing", email: "alan@example.com"},
	{name: "Grace Hopper", email: "grace@example.com"},
}

var demoSlots = []struct {
	title     string
	dayOffset int
	hour      int
	status    domain.EventStatus
}{
	{title: "Team sync", dayOffset: 1, hour: 9, status: domain.EventStatusSwappable},
	{title: "Focus time", dayOffset: 1, hour: 14, status: domain.EventStatusBusy},
	{title: "1:1", dayOffset: 2, hour: 11, status: domain.EventStatusSwappable},
}

func main() {
	passwordFlag := flag.String("password", "password123", "password for every demo user")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	if cfg.Storage.Driver == config.StorageDriverMemory {
		logger.Warn("seeding the memory driver only lasts for this process")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	st, err := app.OpenStorage(ctx, cfg)
	if err != nil {
		logger.Error("open storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer st.Close()

	srv := app.NewServer(cfg, logger, st)
	defer srv.Stop()

	if err := seed(ctx, logger, srv.Auth, srv.Events, *passwordFlag); err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seed completed", slog.Int("users", len(demoUsers)))
}

func seed(ctx context.Context, logger *slog.Logger, auth *authsvc.Service, events *eventsvc.Service, password string) error {
	base := time.Now().UTC().Truncate(24 * time.Hour)

	for _, u := range demoUsers {
		res, err := auth.Register(ctx, authsvc.RegisterInput{Name: u.name, Email: u.email, Password: password})
		if errors.Is(err, domain.ErrAlreadyExists) {
			logger.Info("demo user exists, skipping", slog.String("email", u.email))
			continue
		}
		if err != nil {
			return err
		}

		userCtx := ctxutil.WithUserID(ctx, res.User.ID)
		for _, slot := range demoSlots {
			start := base.AddDate(0, 0, slot.dayOffset).Add(time.Duration(slot.hour) * time.Hour)
			status := slot.status
			if _, err := events.CreateEvent(userCtx, eventsvc.CreateEventInput{
				Title:     slot.title,
				StartTime: start,
				EndTime:   start.Add(time.Hour),
				Status:    &status,
			}); err != nil {
				return err
			}
		}
		logger.Info("demo user seeded", slog.String("email", u.email))
	}
	return nil
}
