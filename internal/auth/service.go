package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/ut2tracker/internal/store"
	"github.com/2beens/ut2tracker/internal/telemetry/tracing"
	"github.com/2beens/ut2tracker/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=auth_test

type credentialStore interface {
	FindUser(ctx context.Context, username string) (bool, error)
	StoredPassword(ctx context.Context, username string) (string, error)
	AddUser(ctx context.Context, username, password string) error
}

// Service checks and registers users against the shared credential table.
// Passwords are stored as typed unless hashing is switched on; stored bcrypt
// hashes are always recognized when checking.
type Service struct {
	credentials   credentialStore
	hashPasswords bool
	// ability to inject the hash func (bcrypt is slow for unit tests)
	HashFunc func(password string) (string, error)
}

func NewService(credentials credentialStore, hashPasswords bool) *Service {
	return &Service{
		credentials:   credentials,
		hashPasswords: hashPasswords,
		HashFunc: func(password string) (string, error) {
			return pkg.HashPassword(password, pkg.DefaultPasswordHashCost)
		},
	}
}

// UserExists reports whether the username is already in the credential table.
func (s *Service) UserExists(ctx context.Context, username string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.user-exists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("username", username))

	return s.credentials.FindUser(ctx, username)
}

// CheckPassword fails closed: unknown usernames are reported as a mismatch.
func (s *Service) CheckPassword(ctx context.Context, username, password string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.check-password")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("username", username))

	stored, err := s.credentials.StoredPassword(ctx, username)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debugf("check password: user [%s] not found", username)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get stored password: %w", err)
	}

	if pkg.IsPasswordHash(stored) {
		return pkg.CheckPasswordHash(password, stored), nil
	}

	return stored == password, nil
}

// Register appends the credentials row. Uniqueness must be checked by the
// caller with UserExists beforehand; the two steps are not atomic.
func (s *Service) Register(ctx context.Context, username, password string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.register")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("username", username))

	toStore := password
	if s.hashPasswords {
		toStore, err = s.HashFunc(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
	}

	if err := s.credentials.AddUser(ctx, username, toStore); err != nil {
		return fmt.Errorf("add user: %w", err)
	}

	log.Debugf("user [%s] registered", username)
	return nil
}
