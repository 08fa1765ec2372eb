package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-data-hub/internal/config"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/models"
)

const (
	valuesPath      = "/v4/spreadsheets/{spreadsheetId}/values/{range}"
	spreadsheetPath = "/v4/spreadsheets/{spreadsheetId}"
	batchUpdatePath = "/v4/spreadsheets/{spreadsheetId}:batchUpdate"
)

// sheetsTableStore maps every table onto one worksheet of a Google
// spreadsheet. Row 1 is the header; data rows follow in stored order.
type sheetsTableStore struct {
	client        *resty.Client
	spreadsheetID string
	tokens        tokenSource
	limiter       *rate.Limiter
	now           func() time.Time
	logger        *logger.Logger

	mu     sync.Mutex
	sheets map[string]sheetProperties
	// headers maps, per table, the positional name given on read to a
	// column with a blank or repeated header back to its header cell text.
	headers map[string]map[string]string
}

type sheetProperties struct {
	SheetID        int64  `json:"sheetId"`
	Title          string `json:"title"`
	GridProperties struct {
		RowCount    int `json:"rowCount"`
		ColumnCount int `json:"columnCount"`
	} `json:"gridProperties"`
}

type spreadsheet struct {
	Sheets []struct {
		Properties sheetProperties `json:"properties"`
	} `json:"sheets"`
}

type valueRange struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
}

type batchUpdateRequest struct {
	Requests []sheetRequest `json:"requests"`
}

type sheetRequest struct {
	AppendDimension *appendDimension `json:"appendDimension,omitempty"`
	UpdateCells     *updateCells     `json:"updateCells,omitempty"`
}

type appendDimension struct {
	SheetID   int64  `json:"sheetId"`
	Dimension string `json:"dimension"`
	Length    int    `json:"length"`
}

type updateCells struct {
	Range  gridRange `json:"range"`
	Rows   []rowData `json:"rows"`
	Fields string    `json:"fields"`
}

type gridRange struct {
	SheetID int64 `json:"sheetId"`
}

type rowData struct {
	Values []cellData `json:"values"`
}

type cellData struct {
	UserEnteredValue *extendedValue `json:"userEnteredValue,omitempty"`
}

type extendedValue struct {
	StringValue *string  `json:"stringValue,omitempty"`
	NumberValue *float64 `json:"numberValue,omitempty"`
}

// NewSheetsTableStore builds the Google Sheets driver. A service-account key
// file takes precedence over a static access token.
func NewSheetsTableStore(cfg config.Sheets, log *logger.Logger) (TableStore, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("sheets store: spreadsheet id is required")
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json")

	var tokens tokenSource
	switch {
	case cfg.CredentialsFile != "":
		sa, err := loadServiceAccount(cfg.CredentialsFile, resty.New())
		if err != nil {
			return nil, fmt.Errorf("sheets store: %w", err)
		}
		tokens = sa
	case cfg.AccessToken != "":
		tokens = staticToken(cfg.AccessToken)
	default:
		return nil, errors.New("sheets store: credentials file or access token is required")
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}

	return newSheetsTableStore(client, cfg.SpreadsheetID, tokens, rate.NewLimiter(limit, burst), log), nil
}

func newSheetsTableStore(client *resty.Client, spreadsheetID string, tokens tokenSource, limiter *rate.Limiter, log *logger.Logger) *sheetsTableStore {
	return &sheetsTableStore{
		client:        client,
		spreadsheetID: spreadsheetID,
		tokens:        tokens,
		limiter:       limiter,
		now:           time.Now,
		logger:        log,
		sheets:        make(map[string]sheetProperties),
		headers:       make(map[string]map[string]string),
	}
}

// request waits for a rate-limit slot and returns an authorized request.
func (s *sheetsTableStore) request(ctx context.Context) (*resty.Request, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %w", ErrTimeout, err)
	}

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	return s.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetPathParam("spreadsheetId", s.spreadsheetID), nil
}

func (s *sheetsTableStore) Read(ctx context.Context, table string) (models.Snapshot, error) {
	req, err := s.request(ctx)
	if err != nil {
		return models.Snapshot{}, newStoreError(OpRead, table, err)
	}

	resp, err := req.
		SetPathParam("range", quoteSheetName(table)).
		SetQueryParams(map[string]string{
			"majorDimension":       "ROWS",
			"valueRenderOption":    "UNFORMATTED_VALUE",
			"dateTimeRenderOption": "FORMATTED_STRING",
		}).
		Get(valuesPath)
	if err != nil {
		return models.Snapshot{}, newStoreError(OpRead, table, transportError(ctx, err))
	}
	if err = mapSheetsError(resp); err != nil {
		return models.Snapshot{}, newStoreError(OpRead, table, err)
	}

	var vr valueRange
	if err = json.Unmarshal(resp.Body(), &vr); err != nil {
		return models.Snapshot{}, newStoreError(OpRead, table, fmt.Errorf("%w: %w", ErrMalformedResponse, err))
	}

	snap, positional := decodeValues(table, vr.Values, s.now())
	s.mu.Lock()
	s.headers[table] = positional
	s.mu.Unlock()

	return snap, nil
}

func (s *sheetsTableStore) Write(ctx context.Context, snapshot models.Snapshot) error {
	table := snapshot.Table

	props, err := s.properties(ctx, table)
	if err != nil {
		return newStoreError(OpWrite, table, err)
	}

	header := snapshot.Header()
	s.mu.Lock()
	rows := encodeRows(header, s.headers[table], snapshot.Records)
	s.mu.Unlock()

	var requests []sheetRequest
	if missing := len(rows) - props.GridProperties.RowCount; missing > 0 {
		requests = append(requests, sheetRequest{AppendDimension: &appendDimension{
			SheetID: props.SheetID, Dimension: "ROWS", Length: missing,
		}})
	}
	if missing := len(header) - props.GridProperties.ColumnCount; missing > 0 {
		requests = append(requests, sheetRequest{AppendDimension: &appendDimension{
			SheetID: props.SheetID, Dimension: "COLUMNS", Length: missing,
		}})
	}
	requests = append(requests, sheetRequest{UpdateCells: &updateCells{
		Range:  gridRange{SheetID: props.SheetID},
		Rows:   rows,
		Fields: "userEnteredValue",
	}})

	req, err := s.request(ctx)
	if err != nil {
		return newStoreError(OpWrite, table, err)
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(batchUpdateRequest{Requests: requests}).
		Post(batchUpdatePath)
	if err != nil {
		s.forget(table)
		return newStoreError(OpWrite, table, transportError(ctx, err))
	}
	if err = mapSheetsError(resp); err != nil {
		s.forget(table)
		return newStoreError(OpWrite, table, err)
	}

	s.grow(table, len(rows), len(header))
	s.logger.Debug().Str("table", table).Int("rows", len(snapshot.Records)).Msg("worksheet replaced")

	return nil
}

// properties returns the worksheet id and grid size of table, fetching the
// spreadsheet metadata on first use.
func (s *sheetsTableStore) properties(ctx context.Context, table string) (sheetProperties, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if props, ok := s.sheets[table]; ok {
		return props, nil
	}

	req, err := s.request(ctx)
	if err != nil {
		return sheetProperties{}, err
	}

	resp, err := req.
		SetQueryParam("fields", "sheets.properties").
		Get(spreadsheetPath)
	if err != nil {
		return sheetProperties{}, transportError(ctx, err)
	}
	if err = mapSheetsError(resp); err != nil {
		return sheetProperties{}, err
	}

	var doc spreadsheet
	if err = json.Unmarshal(resp.Body(), &doc); err != nil {
		return sheetProperties{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	for _, sh := range doc.Sheets {
		s.sheets[sh.Properties.Title] = sh.Properties
	}

	props, ok := s.sheets[table]
	if !ok {
		return sheetProperties{}, fmt.Errorf("%w: no worksheet named %q", ErrTableNotFound, table)
	}
	return props, nil
}

func (s *sheetsTableStore) grow(table string, rows, columns int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	props, ok := s.sheets[table]
	if !ok {
		return
	}
	props.GridProperties.RowCount = max(props.GridProperties.RowCount, rows)
	props.GridProperties.ColumnCount = max(props.GridProperties.ColumnCount, columns)
	s.sheets[table] = props
}

func (s *sheetsTableStore) forget(table string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sheets, table)
}

func quoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// decodeValues turns a values grid into a snapshot. A column whose header
// is blank or repeats an earlier one keeps its cells under a positional name
// ("_D", "projeto_E"); the returned map gives each such name its header text
// so a write puts the sheet back as it was. Rows with no content are dropped.
func decodeValues(table string, values [][]any, at time.Time) (models.Snapshot, map[string]string) {
	if len(values) == 0 {
		return emptySnapshot(table, at), nil
	}

	width := 0
	for _, row := range values {
		width = max(width, len(row))
	}

	texts := make([]string, width)
	taken := make(map[string]bool, width)
	for i, h := range values[0] {
		texts[i] = strings.TrimSpace(models.ValueOf(h).Text())
	}
	for _, text := range texts {
		if text != "" {
			taken[text] = true
		}
	}

	columns := make([]string, width)
	positional := make(map[string]string)
	seen := make(map[string]bool, width)
	for i, text := range texts {
		if text != "" && !seen[text] {
			seen[text] = true
			columns[i] = text
			continue
		}
		name := text + "_" + columnLetter(i)
		for taken[name] {
			name += "_"
		}
		taken[name] = true
		columns[i] = name
		positional[name] = text
	}

	snap := models.Snapshot{
		Table:     table,
		Columns:   columns,
		Records:   make([]models.Record, 0, len(values)-1),
		FetchedAt: at,
	}

	for _, row := range values[1:] {
		record := make(models.Record, len(columns))
		blank := true
		for i, raw := range row {
			v := models.ValueOf(raw)
			if !v.IsEmpty() {
				blank = false
			}
			record[columns[i]] = v
		}
		if blank {
			continue
		}
		snap.Records = append(snap.Records, record)
	}

	return snap, positional
}

// columnLetter returns the A1 column name of the zero-based index i.
func columnLetter(i int) string {
	var b []byte
	for i++; i > 0; i = (i - 1) / 26 {
		b = append([]byte{byte('A' + (i-1)%26)}, b...)
	}
	return string(b)
}

// encodeRows renders the header row followed by one row per record, cells in
// header order. Positional names go back out as their original header text.
func encodeRows(header []string, positional map[string]string, records []models.Record) []rowData {
	rows := make([]rowData, 0, len(records)+1)

	head := rowData{Values: make([]cellData, len(header))}
	for i, name := range header {
		text, ok := positional[name]
		if !ok {
			text = name
		}
		if text != "" {
			head.Values[i] = stringCell(text)
		}
	}
	rows = append(rows, head)

	for _, r := range records {
		row := rowData{Values: make([]cellData, len(header))}
		for i, name := range header {
			row.Values[i] = valueCell(r.Get(name))
		}
		rows = append(rows, row)
	}
	return rows
}

func stringCell(s string) cellData {
	return cellData{UserEnteredValue: &extendedValue{StringValue: &s}}
}

func valueCell(v models.Value) cellData {
	switch v.Kind() {
	case models.KindNumber:
		n, _ := v.Measure()
		return cellData{UserEnteredValue: &extendedValue{NumberValue: &n}}
	case models.KindString, models.KindDate:
		return stringCell(v.Text())
	default:
		return cellData{}
	}
}
