package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/p4runner/internal/adapters/backend/p4cli"
	chainstore "github.com/bnema/p4runner/internal/adapters/credstore/chain"
	historystore "github.com/bnema/p4runner/internal/adapters/history/sqlite"
	tomlrepo "github.com/bnema/p4runner/internal/adapters/repo/toml"
	"github.com/bnema/p4runner/internal/adapters/session"
	"github.com/bnema/p4runner/internal/application"
	"github.com/bnema/p4runner/internal/domain"
	"github.com/bnema/p4runner/internal/ports"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type app struct {
	profiles ports.ProfileRepository
	creds    ports.SecretStore
	history  ports.CommandLog
	log      zerolog.Logger
	now      func() time.Time
}

func wireApp() (*app, error) {
	log := newLogger()

	profiles, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire profile repository: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	stateDir := filepath.Join(homeDir, ".p4runner")

	creds, err := chainstore.NewPassFirst(filepath.Join(stateDir, "secrets"))
	if err != nil {
		return nil, fmt.Errorf("wire credential store chain: %w", err)
	}

	// History is best-effort: an unwritable state dir disables recording
	// but never blocks running commands.
	var history ports.CommandLog
	if err := os.MkdirAll(stateDir, 0o700); err != nil {
		log.Warn().Err(err).Msg("create state directory, history disabled")
	} else {
		store, err := historystore.Open(filepath.Join(stateDir, "history.db"))
		if err != nil {
			log.Warn().Err(err).Msg("open history database, history disabled")
		} else {
			history = store
		}
	}

	return &app{
		profiles: profiles,
		creds:    creds,
		history:  history,
		log:      log,
		now:      time.Now,
	}, nil
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if raw := os.Getenv("P4R_LOG"); raw != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(raw)); err == nil {
			level = parsed
		}
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// resolveProfile picks the named profile, or the one marked default when
// no name is given.
func (a *app) resolveProfile(ctx context.Context, name string) (domain.Profile, error) {
	if strings.TrimSpace(name) != "" {
		profile, err := a.profiles.GetByName(ctx, domain.ProfileName(name))
		if err != nil {
			return domain.Profile{}, fmt.Errorf("load profile %q: %w", name, err)
		}
		return profile, nil
	}

	all, err := a.profiles.List(ctx)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("list profiles: %w", err)
	}
	for _, profile := range all {
		if profile.Default {
			return profile, nil
		}
	}
	if len(all) == 1 {
		return all[0], nil
	}

	return domain.Profile{}, fmt.Errorf("no default connection profile; create one with 'p4r profile set --default'")
}

// executorFor builds the pooled executor for one profile. Pools live for
// the duration of the process, which for a CLI is one invocation.
func (a *app) executorFor(ctx context.Context, profileName string) (*application.Executor, error) {
	profile, err := a.resolveProfile(ctx, profileName)
	if err != nil {
		return nil, err
	}

	password := ""
	if profile.SecretRef != "" {
		password, err = a.creds.Get(ctx, profile.SecretRef)
		if err != nil {
			return nil, fmt.Errorf("load credential for profile %q: %w", profile.Name, err)
		}
	}

	dialer := p4cli.Dialer{
		Address:  profile.Address,
		Client:   profile.Client,
		User:     profile.User,
		Password: password,
	}

	plain := session.NewPool(dialer, domain.VariantPlain, a.log)
	tagged := session.NewPool(dialer, domain.VariantTagged, a.log)

	return application.NewExecutor(plain, tagged, nil, a.history, ports.SystemClock{}, a.log), nil
}

func (a *app) queriesFor(ctx context.Context, profileName string) (*application.QueryService, error) {
	exec, err := a.executorFor(ctx, profileName)
	if err != nil {
		return nil, err
	}
	return application.NewQueryService(exec), nil
}
