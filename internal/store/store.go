package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/ut2tracker/internal/workout"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrWorkbookNotFound = errors.New("workbook not found")
)

// CredentialStore is the shared username/password table.
type CredentialStore interface {
	FindUser(ctx context.Context, username string) (bool, error)
	// StoredPassword returns ErrUserNotFound for unknown usernames.
	StoredPassword(ctx context.Context, username string) (string, error)
	AddUser(ctx context.Context, username, password string) error
}

// WorkbookStore holds one workbook per user, with a sub-table per workout type.
type WorkbookStore interface {
	FindWorkbook(ctx context.Context, username string) (bool, error)
	CreateWorkbook(ctx context.Context, username string) (*Workbook, error)
	AppendRecord(ctx context.Context, username string, workoutType workout.Type, record workout.Record) error
	// ReadColumn returns all values of the column, header included at index 0.
	ReadColumn(ctx context.Context, username string, workoutType workout.Type, column workout.Column) ([]string, error)
}

type Store interface {
	CredentialStore
	WorkbookStore
}

type Workbook struct {
	ID   string
	Name string
	// SharedWith is empty when no share address was configured.
	SharedWith string
}

func WorkbookName(username, suffix string) string {
	return fmt.Sprintf("%s %s", username, suffix)
}
