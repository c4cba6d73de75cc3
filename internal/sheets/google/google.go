package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"berdoz/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client mirrors module records into the tabs of one spreadsheet.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	logger        *slog.Logger
}

var _ sheets.Writer = (*Client)(nil)

// New creates a Sheets client from service account credentials.
// credentials may be inline JSON or a file path; when empty,
// GOOGLE_APPLICATION_CREDENTIALS is used.
func New(ctx context.Context, spreadsheetID, credentials string, logger *slog.Logger) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	if logger == nil {
		logger = slog.Default()
	}

	svc, err := newSheetsService(ctx, credentials, logger)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return NewWithService(svc, spreadsheetID, logger), nil
}

// NewWithService wraps an existing service.
func NewWithService(svc *gsheet.Service, spreadsheetID string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, logger: logger.With("component", "sheets")}
}

func newSheetsService(ctx context.Context, credentials string, logger *slog.Logger) (*gsheet.Service, error) {
	credentials = strings.TrimSpace(credentials)
	if credentials == "" {
		credentials = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case strings.HasPrefix(credentials, "{"):
		logger.InfoContext(ctx, "Using inline JSON credentials")
		credentialsJSON = []byte(credentials)
	case credentials != "":
		logger.InfoContext(ctx, "Reading credentials from file", "path", credentials)
		b, err := os.ReadFile(credentials)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_CREDENTIALS or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope),
		goption.WithHTTPClient(newHTTPClientWithPooling()))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// newHTTPClientWithPooling creates an HTTP client tuned for the Sheets API
// with connection pooling and keep-alive.
func newHTTPClientWithPooling() *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   60 * time.Second,
	}
}

// Upsert implements sheets.Writer. Rows are keyed by the id in column A; an
// empty tab first receives the header row.
func (c *Client) Upsert(ctx context.Context, row sheets.Row) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	ids, err := c.readIDs(ctx, row.Tab)
	if err != nil {
		return "", err
	}

	n := findRow(ids, row.ID)
	if n < 0 {
		if len(ids) == 0 && len(row.Header) > 0 {
			header := make([]any, len(row.Header))
			for i, h := range row.Header {
				header[i] = h
			}
			if err := c.write(ctx, rowRange(row.Tab, 1, len(header)), header); err != nil {
				return "", err
			}
			ids = append(ids, []any{row.Header[0]})
		}
		n = len(ids) + 1
	}

	cells := row.Cells()
	ref := rowRange(row.Tab, n, len(cells))
	if err := c.write(ctx, ref, cells); err != nil {
		return "", err
	}
	c.logger.DebugContext(ctx, "Row exported", "ref", ref, "record_id", row.ID)
	return ref, nil
}

// Delete implements sheets.Writer.
func (c *Client) Delete(ctx context.Context, tab, id string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	ids, err := c.readIDs(ctx, tab)
	if err != nil {
		return err
	}
	n := findRow(ids, id)
	if n < 0 {
		return nil
	}

	rng := wholeRow(tab, n)
	_, err = c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", rng, err)
	}
	return nil
}

func (c *Client) readIDs(ctx context.Context, tab string) ([][]any, error) {
	rng := fmt.Sprintf("%s!A:A", tab)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return resp.Values, nil
}

func (c *Client) write(ctx context.Context, rng string, cells []any) error {
	vr := &gsheet.ValueRange{Values: [][]any{cells}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}
