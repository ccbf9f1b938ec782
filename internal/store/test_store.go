package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/2beens/ut2tracker/internal/config"
	"github.com/2beens/ut2tracker/internal/workout"
)

var _ Store = (*TestStore)(nil)
var _ Store = (*SheetsStore)(nil)

// TestStore is an in-memory Store, used in tests in place of the spreadsheet service.
type TestStore struct {
	mutex       sync.Mutex
	credentials [][]string
	workbooks   map[string]map[workout.Type][][]string
	shareEmail  string

	// FailNext, when set, is returned (once) by the next workbook operation.
	FailNext error
}

func NewTestStore(shareEmail string) *TestStore {
	return &TestStore{
		workbooks:  make(map[string]map[workout.Type][][]string),
		shareEmail: shareEmail,
	}
}

func (ts *TestStore) takeFailure() error {
	err := ts.FailNext
	ts.FailNext = nil
	return err
}

func (ts *TestStore) FindUser(_ context.Context, username string) (bool, error) {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	for _, row := range ts.credentials {
		if row[0] == username {
			return true, nil
		}
	}
	return false, nil
}

func (ts *TestStore) StoredPassword(_ context.Context, username string) (string, error) {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	for _, row := range ts.credentials {
		if row[0] == username {
			return row[1], nil
		}
	}
	return "", ErrUserNotFound
}

func (ts *TestStore) AddUser(_ context.Context, username, password string) error {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	ts.credentials = append(ts.credentials, []string{username, password})
	return nil
}

// Credentials returns a copy of the credential rows.
func (ts *TestStore) Credentials() [][]string {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	rows := make([][]string, 0, len(ts.credentials))
	for _, row := range ts.credentials {
		rows = append(rows, []string{row[0], row[1]})
	}
	return rows
}

func (ts *TestStore) FindWorkbook(_ context.Context, username string) (bool, error) {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	if err := ts.takeFailure(); err != nil {
		return false, err
	}
	_, ok := ts.workbooks[username]
	return ok, nil
}

func (ts *TestStore) CreateWorkbook(_ context.Context, username string) (*Workbook, error) {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	if err := ts.takeFailure(); err != nil {
		return nil, err
	}

	sheets := make(map[workout.Type][][]string)
	for _, wt := range workout.Types() {
		sheets[wt] = [][]string{append([]string(nil), workout.Header...)}
	}
	ts.workbooks[username] = sheets

	return &Workbook{
		ID:         fmt.Sprintf("test-%s", username),
		Name:       WorkbookName(username, config.DefaultWorkbookNameSuffix),
		SharedWith: ts.shareEmail,
	}, nil
}

func (ts *TestStore) AppendRecord(_ context.Context, username string, workoutType workout.Type, record workout.Record) error {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	if err := ts.takeFailure(); err != nil {
		return err
	}
	sheets, ok := ts.workbooks[username]
	if !ok {
		return ErrWorkbookNotFound
	}
	sheets[workoutType] = append(sheets[workoutType], record.Row())
	return nil
}

func (ts *TestStore) ReadColumn(_ context.Context, username string, workoutType workout.Type, column workout.Column) ([]string, error) {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	if err := ts.takeFailure(); err != nil {
		return nil, err
	}
	sheets, ok := ts.workbooks[username]
	if !ok {
		return nil, ErrWorkbookNotFound
	}

	var values []string
	for _, row := range sheets[workoutType] {
		values = append(values, row[int(column)-1])
	}
	return values, nil
}
