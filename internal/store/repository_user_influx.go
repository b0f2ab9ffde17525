package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atpsolar/credential-service/internal/config"
	"github.com/atpsolar/credential-service/internal/logger"
	"github.com/atpsolar/credential-service/models"
)

// userMeasurement is the time-series measurement holding user record points.
// The email is a tag; password hash, phone and role are string fields.
const userMeasurement = "users"

// influxUserRepository is the time-series implementation of [UserRepository].
//
// The store is append-only: the latest point per email represents the
// current record. Uniqueness is enforced at this layer with a
// lookup-before-write, since the time-series store has no constraint of its
// own. A user's ID is the nanosecond timestamp of its point, which is the
// only stable identifier an append-only bucket provides.
type influxUserRepository struct {
	client      *influxClient
	loginWindow time.Duration
	listWindow  time.Duration
	logger      *logger.Logger
}

// NewInfluxUserRepository constructs a [UserRepository] backed by an
// InfluxDB v2 bucket reached over its HTTP API.
func NewInfluxUserRepository(cfg config.Storage, logger *logger.Logger) UserRepository {
	logger.Debug().Str("url", cfg.Influx.URL).Str("bucket", cfg.Influx.Bucket).Msg("creating influx user repository")
	return &influxUserRepository{
		client:      newInfluxClient(cfg, logger),
		loginWindow: cfg.Influx.LoginWindow,
		listWindow:  cfg.Influx.ListWindow,
		logger:      logger,
	}
}

// CreateUser appends a new user record point after verifying that no record
// exists for the email anywhere in the bucket's history. The duplicate check
// deliberately ignores the listing window: a point older than the window is
// still a registered user and must keep its email reserved.
//
// The check-then-write pair is not atomic; two concurrent registrations for
// one email can both pass the lookup. The losing record is shadowed by the
// winning one at login time (latest point wins), so the observable invariant
// still holds.
func (r *influxUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	_, err := r.findLatestByEmail(ctx, user.Email, fullRange)
	switch {
	case err == nil:
		log.Warn().Str("email", user.Email).Msg("duplicate registration rejected")
		return models.User{}, ErrEmailAlreadyExists
	case !errors.Is(err, ErrNoUserWasFound):
		return models.User{}, err
	}

	now := time.Now().UTC()
	line := fmt.Sprintf(`%s,email=%s password_hash="%s",phone="%s",role="%s" %d`,
		userMeasurement,
		escapeLineProtocolTag(user.Email),
		escapeLineProtocolField(user.PasswordHash),
		escapeLineProtocolField(user.Phone),
		escapeLineProtocolField(user.Role),
		now.UnixNano(),
	)

	if err := r.client.writeLineProtocol(ctx, line); err != nil {
		log.Err(err).Str("email", user.Email).Msg("user record write failed")
		return models.User{}, err
	}

	user.UserID = now.UnixNano()
	user.CreatedAt = now
	return user, nil
}

// FindUserByEmail returns the latest user record point for the email within
// the login window (a bounded recency range).
func (r *influxUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findLatestByEmail(ctx, email, r.loginWindow)
}

// ListUsers returns one row per stored point within the listing window,
// ordered by point time.
func (r *influxUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	flux := fmt.Sprintf(`from(bucket: "%s")
  |> range(start: -%ds)
  |> filter(fn: (r) => r._measurement == "%s")
  |> pivot(rowKey: ["_time"], columnKey: ["_field"], valueColumn: "_value")
  |> sort(columns: ["_time"])`,
		escapeFluxString(r.client.bucket),
		int64(r.listWindow.Seconds()),
		userMeasurement,
	)

	rows, err := r.client.queryFlux(ctx, flux)
	if err != nil {
		log.Err(err).Str("func", "*influxUserRepository.ListUsers").Msg("user listing query failed")
		return nil, err
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		user, err := userFromFluxRow(row)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

// DeleteUserByEmail issues a predicate delete over the full time range for
// all points matching the email. An absent email is reported as
// [ErrNoUserWasFound] rather than silently succeeding; the existence check
// scans the full history so it matches the range the delete covers.
func (r *influxUserRepository) DeleteUserByEmail(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if _, err := r.findLatestByEmail(ctx, email, fullRange); err != nil {
		return err
	}

	predicate := fmt.Sprintf(`_measurement="%s" AND email="%s"`,
		userMeasurement, escapeFluxString(email))

	// Full history: a user deleted today must not resurface from an older point.
	start := time.Unix(0, 0)
	stop := time.Now().UTC().Add(time.Hour)

	if err := r.client.deletePredicate(ctx, predicate, start, stop); err != nil {
		log.Err(err).Str("email", email).Msg("predicate delete failed")
		return err
	}

	return nil
}

// fullRange makes findLatestByEmail scan from the Unix epoch instead of a
// bounded recency window.
const fullRange time.Duration = 0

func (r *influxUserRepository) findLatestByEmail(ctx context.Context, email string, window time.Duration) (models.User, error) {
	log := logger.FromContext(ctx)

	rangeStart := "0"
	if window > 0 {
		rangeStart = fmt.Sprintf("-%ds", int64(window.Seconds()))
	}

	flux := fmt.Sprintf(`from(bucket: "%s")
  |> range(start: %s)
  |> filter(fn: (r) => r._measurement == "%s" and r.email == "%s")
  |> pivot(rowKey: ["_time"], columnKey: ["_field"], valueColumn: "_value")
  |> sort(columns: ["_time"], desc: true)
  |> limit(n: 1)`,
		escapeFluxString(r.client.bucket),
		rangeStart,
		userMeasurement,
		escapeFluxString(email),
	)

	rows, err := r.client.queryFlux(ctx, flux)
	if err != nil {
		log.Err(err).Str("func", "*influxUserRepository.findLatestByEmail").Msg("user lookup query failed")
		return models.User{}, err
	}
	if len(rows) == 0 {
		return models.User{}, ErrNoUserWasFound
	}

	return userFromFluxRow(rows[0])
}

// userFromFluxRow maps a pivoted Flux result row onto a [models.User] by
// header name.
func userFromFluxRow(row map[string]string) (models.User, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(row["_time"]))
	if err != nil {
		return models.User{}, fmt.Errorf("%w: parsing point time %q: %w", ErrScanningRow, row["_time"], err)
	}

	user := models.User{
		UserID:       createdAt.UnixNano(),
		Email:        row["email"],
		PasswordHash: row["password_hash"],
		Phone:        row["phone"],
		Role:         row["role"],
		CreatedAt:    createdAt,
	}
	if user.Role == "" {
		user.Role = models.DefaultRole
	}

	return user, nil
}
