package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// SheetsWriter appends reports to a Google Sheets spreadsheet.
type SheetsWriter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ Writer = (*SheetsWriter)(nil)

// NewSheetsWriter builds a writer against the given spreadsheet. Credentials
// come from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewSheetsWriter(ctx context.Context, spreadsheetID, sheetName string) (*SheetsWriter, error) {
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if sheetName == "" {
		sheetName = "Relatorios"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &SheetsWriter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

// Write appends one header row for the report followed by one row per cohort
// member.
func (w *SheetsWriter) Write(ctx context.Context, rep Report) error {
	if w.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rows := make([][]any, 0, len(rep.Cohort.Members)+1)
	rows = append(rows, []any{
		rep.ID,
		string(rep.Cohort.Kind),
		rep.SellerID,
		rep.GeneratedAt.Format("2006-01-02 15:04:05"),
		len(rep.Cohort.Members),
		rep.Cohort.Metrics.DelinquencyRatePct,
	})
	for _, m := range rep.Cohort.Members {
		rows = append(rows, []any{
			m.ClientID,
			m.DisplayName,
			string(m.Status),
			m.Paid.Count,
			m.Paid.TotalAmount.Reais(),
			m.Overdue.Count,
			m.Overdue.TotalAmount.Reais(),
			m.Upcoming.Count,
			m.Upcoming.TotalAmount.Reais(),
		})
	}

	rng := fmt.Sprintf("%s!A:I", w.sheetName)
	vr := &gsheet.ValueRange{Values: rows}
	_, err := w.svc.Spreadsheets.Values.Append(w.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append report to sheet %s: %w", w.sheetName, err)
	}

	slog.InfoContext(ctx, "Report exported to Google Sheets",
		"report_id", rep.ID,
		"kind", rep.Cohort.Kind,
		"members", len(rep.Cohort.Members),
		"sheet", w.sheetName)

	return nil
}
