package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/ut2tracker/internal/telemetry/metrics"
	"github.com/2beens/ut2tracker/internal/telemetry/tracing"
	"github.com/2beens/ut2tracker/internal/workout"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"
	// rows per workout sub-table, as created by the first tracker version
	sheetRowCount     = 1000
	valueInputRaw     = "RAW"
	insertRows        = "INSERT_ROWS"
	majorDimColumns   = "COLUMNS"
	majorDimRows      = "ROWS"
	sharePermissionTo = "user"
)

// SheetsStore keeps credentials and workout records in Google Sheets.
// Workbooks are found by name through Google Drive.
type SheetsStore struct {
	sheets                   *sheets.Service
	drive                    *drive.Service
	credentialsSpreadsheetID string
	workbookNameSuffix       string
	shareEmail               string
	shareRole                string
	metrics                  *metrics.Manager
}

type NewSheetsStoreParams struct {
	HTTPClient *http.Client
	// endpoints are only overridden in tests
	SheetsEndpoint string
	DriveEndpoint  string

	CredentialsSpreadsheetID   string
	CredentialsSpreadsheetName string
	WorkbookNameSuffix         string
	ShareEmail                 string
	ShareRole                  string
	Metrics                    *metrics.Manager
}

func NewSheetsStore(ctx context.Context, params NewSheetsStoreParams) (*SheetsStore, error) {
	if params.HTTPClient == nil {
		return nil, errors.New("http client not set")
	}
	if params.Metrics == nil {
		params.Metrics = metrics.NewTestManager()
	}

	sheetsService, err := sheets.NewService(ctx, clientOptions(params.HTTPClient, params.SheetsEndpoint)...)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve sheets client: %w", err)
	}
	driveService, err := drive.NewService(ctx, clientOptions(params.HTTPClient, params.DriveEndpoint)...)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve drive client: %w", err)
	}

	s := &SheetsStore{
		sheets:                   sheetsService,
		drive:                    driveService,
		credentialsSpreadsheetID: params.CredentialsSpreadsheetID,
		workbookNameSuffix:       params.WorkbookNameSuffix,
		shareEmail:               params.ShareEmail,
		shareRole:                params.ShareRole,
		metrics:                  params.Metrics,
	}

	if s.credentialsSpreadsheetID == "" {
		if params.CredentialsSpreadsheetName == "" {
			return nil, errors.New("credentials spreadsheet id or name must be set")
		}
		id, err := s.findSpreadsheetID(ctx, "resolve_credentials", params.CredentialsSpreadsheetName)
		if err != nil {
			return nil, fmt.Errorf("find credentials spreadsheet %q: %w", params.CredentialsSpreadsheetName, err)
		}
		log.Debugf("credentials spreadsheet found, %s: %s", params.CredentialsSpreadsheetName, id)
		s.credentialsSpreadsheetID = id
	}

	return s, nil
}

func clientOptions(httpClient *http.Client, endpoint string) []option.ClientOption {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return opts
}

// startOp starts a span for a remote call; the returned func ends it and
// records the call duration and failure in metrics.
func (s *SheetsStore) startOp(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.sheets."+op)
	span.SetAttributes(attrs...)
	started := time.Now()
	return ctx, func(err error) {
		s.metrics.HistRemoteCallDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
		if err != nil {
			s.metrics.CounterRemoteCallErrors.WithLabelValues(op).Inc()
		}
		tracing.EndSpanWithErrCheck(span, err)
	}
}

func (s *SheetsStore) FindUser(ctx context.Context, username string) (_ bool, err error) {
	ctx, end := s.startOp(ctx, "find_user", spanUser(username))
	defer func() { end(err) }()

	usernames, err := s.readColumn(ctx, s.credentialsSpreadsheetID, "A:A")
	if err != nil {
		return false, fmt.Errorf("read usernames: %w", err)
	}
	for _, u := range usernames {
		if u == username {
			return true, nil
		}
	}

	return false, nil
}

func (s *SheetsStore) StoredPassword(ctx context.Context, username string) (_ string, err error) {
	ctx, end := s.startOp(ctx, "stored_password", spanUser(username))
	defer func() { end(err) }()

	resp, err := s.sheets.Spreadsheets.Values.
		Get(s.credentialsSpreadsheetID, "A:B").
		MajorDimension(majorDimRows).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("read credentials: %w", err)
	}

	for _, row := range resp.Values {
		cells := toStrings(row)
		if len(cells) == 0 || cells[0] != username {
			continue
		}
		if len(cells) < 2 {
			return "", nil
		}
		return cells[1], nil
	}

	return "", ErrUserNotFound
}

func (s *SheetsStore) AddUser(ctx context.Context, username, password string) (err error) {
	ctx, end := s.startOp(ctx, "add_user", spanUser(username))
	defer func() { end(err) }()

	if err := s.appendRow(ctx, s.credentialsSpreadsheetID, "A:B", []string{username, password}); err != nil {
		return fmt.Errorf("append credentials row: %w", err)
	}
	return nil
}

func (s *SheetsStore) FindWorkbook(ctx context.Context, username string) (_ bool, err error) {
	_, err = s.findSpreadsheetID(ctx, "find_workbook", s.workbookName(username))
	if errors.Is(err, ErrWorkbookNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SheetsStore) CreateWorkbook(ctx context.Context, username string) (_ *Workbook, err error) {
	ctx, end := s.startOp(ctx, "create_workbook", spanUser(username))
	defer func() { end(err) }()

	name := s.workbookName(username)
	newSpreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: name,
		},
	}
	for _, wt := range workout.Types() {
		newSpreadsheet.Sheets = append(newSpreadsheet.Sheets, newWorkoutSheet(wt))
	}

	created, err := s.sheets.Spreadsheets.
		Create(newSpreadsheet).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("create spreadsheet %q: %w", name, err)
	}

	workbook := &Workbook{
		ID:   created.SpreadsheetId,
		Name: name,
	}
	log.Debugf("workbook created, %s: %s", name, workbook.ID)

	if s.shareEmail == "" {
		log.Warnf("share email address not set, workbook %s not shared", name)
		return workbook, nil
	}

	if err := s.share(ctx, workbook.ID); err != nil {
		return workbook, fmt.Errorf("share workbook %q: %w", name, err)
	}
	workbook.SharedWith = s.shareEmail

	return workbook, nil
}

// newWorkoutSheet returns a sub-table with its bold header row already filled in.
func newWorkoutSheet(wt workout.Type) *sheets.Sheet {
	headerCells := make([]*sheets.CellData, 0, len(workout.Header))
	for _, title := range workout.Header {
		headerCells = append(headerCells, &sheets.CellData{
			UserEnteredValue: &sheets.ExtendedValue{
				StringValue: &title,
			},
			UserEnteredFormat: &sheets.CellFormat{
				TextFormat: &sheets.TextFormat{Bold: true},
			},
		})
	}

	return &sheets.Sheet{
		Properties: &sheets.SheetProperties{
			Title: wt.SheetTitle(),
			GridProperties: &sheets.GridProperties{
				RowCount:    sheetRowCount,
				ColumnCount: int64(len(workout.Header)),
			},
		},
		Data: []*sheets.GridData{
			{
				RowData: []*sheets.RowData{
					{Values: headerCells},
				},
			},
		},
	}
}

func (s *SheetsStore) share(ctx context.Context, spreadsheetID string) (err error) {
	ctx, end := s.startOp(ctx, "share_workbook")
	defer func() { end(err) }()

	_, err = s.drive.Permissions.
		Create(spreadsheetID, &drive.Permission{
			Type:         sharePermissionTo,
			Role:         s.shareRole,
			EmailAddress: s.shareEmail,
		}).
		Fields("id").
		Context(ctx).
		Do()
	return err
}

func (s *SheetsStore) AppendRecord(ctx context.Context, username string, workoutType workout.Type, record workout.Record) (err error) {
	ctx, end := s.startOp(ctx, "append_record", spanUser(username), spanWorkout(workoutType))
	defer func() { end(err) }()

	spreadsheetID, err := s.findSpreadsheetID(ctx, "find_workbook", s.workbookName(username))
	if err != nil {
		return err
	}

	rng := sheetRange(workoutType.SheetTitle(), workout.ColumnDate, workout.ColumnDistance)
	if err := s.appendRow(ctx, spreadsheetID, rng, record.Row()); err != nil {
		return fmt.Errorf("append %s record: %w", workoutType, err)
	}

	return nil
}

func (s *SheetsStore) ReadColumn(ctx context.Context, username string, workoutType workout.Type, column workout.Column) (_ []string, err error) {
	ctx, end := s.startOp(ctx, "read_column", spanUser(username), spanWorkout(workoutType))
	defer func() { end(err) }()

	spreadsheetID, err := s.findSpreadsheetID(ctx, "find_workbook", s.workbookName(username))
	if err != nil {
		return nil, err
	}

	values, err := s.readColumn(ctx, spreadsheetID, sheetRange(workoutType.SheetTitle(), column, column))
	if err != nil {
		return nil, fmt.Errorf("read %s column %s: %w", workoutType, column.Letter(), err)
	}

	return values, nil
}

func (s *SheetsStore) workbookName(username string) string {
	return WorkbookName(username, s.workbookNameSuffix)
}

// findSpreadsheetID looks a spreadsheet up by its exact name.
// ErrWorkbookNotFound is returned when there is none.
func (s *SheetsStore) findSpreadsheetID(ctx context.Context, op, name string) (_ string, err error) {
	ctx, end := s.startOp(ctx, op, attribute.String("spreadsheet", name))
	defer func() { end(err) }()

	query := fmt.Sprintf(
		"name = '%s' and mimeType = '%s' and trashed = false",
		escapeQueryValue(name), spreadsheetMimeType,
	)

	pageToken := ""
	for {
		call := s.drive.Files.List().
			Q(query).
			Spaces("drive").
			Fields("nextPageToken, files(id, name)").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		fileList, err := call.Do()
		if err != nil {
			return "", fmt.Errorf("list files named %q: %w", name, err)
		}

		for _, f := range fileList.Files {
			if f.Name == name {
				return f.Id, nil
			}
		}

		pageToken = fileList.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return "", ErrWorkbookNotFound
}

func (s *SheetsStore) readColumn(ctx context.Context, spreadsheetID, rng string) ([]string, error) {
	resp, err := s.sheets.Spreadsheets.Values.
		Get(spreadsheetID, rng).
		MajorDimension(majorDimColumns).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	if len(resp.Values) == 0 {
		return nil, nil
	}

	return toStrings(resp.Values[0]), nil
}

func (s *SheetsStore) appendRow(ctx context.Context, spreadsheetID, rng string, row []string) error {
	cells := make([]interface{}, 0, len(row))
	for _, c := range row {
		cells = append(cells, c)
	}

	_, err := s.sheets.Spreadsheets.Values.
		Append(spreadsheetID, rng, &sheets.ValueRange{
			Values: [][]interface{}{cells},
		}).
		ValueInputOption(valueInputRaw).
		InsertDataOption(insertRows).
		Context(ctx).
		Do()
	return err
}

// sheetRange builds an A1 range over whole columns of the named sheet, e.g. 'Exercise Bike'!A:C
func sheetRange(sheetTitle string, from, to workout.Column) string {
	return fmt.Sprintf("'%s'!%s:%s", sheetTitle, from.Letter(), to.Letter())
}

func escapeQueryValue(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `'`, `\'`)
}

func toStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

func spanUser(username string) attribute.KeyValue {
	return attribute.String("username", username)
}

func spanWorkout(workoutType workout.Type) attribute.KeyValue {
	return attribute.String("workout", workoutType.String())
}
