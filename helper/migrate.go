package helper

//nolint:revive
import (
	"equiplend/config"
	"equiplend/migrations"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"
)

var ErrUnknownAction = errors.New("unknown migration action")

func databaseURL(cfg *config.Config) string {
	write := cfg.DB.Postgres.Write

	name := write.Name
	if cfg.DB.Postgres.Prefix != "" {
		name = cfg.DB.Postgres.Prefix + name
	}

	query := url.Values{}
	query.Set("sslmode", write.SSLMode)

	if cfg.DB.Postgres.MigrationTable != "" {
		query.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)
	}

	return (&url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(write.Username, write.Password),
		Host:     net.JoinHostPort(write.Host, write.Port),
		Path:     name,
		RawQuery: query.Encode(),
	}).String()
}

func open(cfg *config.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.FS, migrations.PostgresDir)
	if err != nil {
		return nil, fmt.Errorf("error reading embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, databaseURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}

	return err
}

// Runner applies one migration action against the write database.
func Runner(cfg *config.Config, action string) error {
	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer func() {
		sourceErr, dbErr := mig.Close()
		if err := errors.Join(sourceErr, dbErr); err != nil {
			log.Warn().Err(err).Msg("Failed to close migrate instance")
		}
	}()

	switch action {
	case ActionUp:
		err = ignoreNoChange(mig.Up())
	case ActionDown:
		err = ignoreNoChange(mig.Steps(-1))
	case ActionStepUp:
		err = ignoreNoChange(mig.Steps(1))
	case ActionDrop:
		err = mig.Drop()
	case ActionVersion:
		return logVersion(mig)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	if err != nil {
		return fmt.Errorf("error running migration action %s: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migration completed successfully")

	return logVersion(mig)
}

// Force marks version as applied and clears the dirty flag.
func Force(cfg *config.Config, version string) error {
	v, err := strconv.Atoi(version)
	if err != nil {
		return fmt.Errorf("invalid migration version %q: %w", version, err)
	}

	mig, err := open(cfg)
	if err != nil {
		return err
	}
	defer mig.Close()

	if err := mig.Force(v); err != nil {
		return fmt.Errorf("error forcing migration version: %w", err)
	}

	log.Info().Int("version", v).Msg("Database migration version forced")

	return nil
}

func logVersion(mig *migrate.Migrate) error {
	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info().Msg("No migration applied yet")

		return nil
	}

	if err != nil {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database schema version")

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, ActionUp)
}
