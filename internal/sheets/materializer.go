// Package sheets materializes stored sheet specs into real spreadsheets
// through the Google Sheets and Drive APIs.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/sheetsmith/sheetsmith/internal/spec"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Materializer turns a normalized spec into a spreadsheet. It is optional:
// when no credentials are configured the service reports unavailable.
type Materializer struct {
	sheetsService *sheetsapi.Service
	driveService  *drive.Service
}

// NewMaterializer builds a Materializer from service account credentials
// JSON. Empty credentials return a nil materializer without error so the
// rest of the app can run without the integration.
func NewMaterializer(ctx context.Context, credentialsJSON []byte) (*Materializer, error) {
	if len(credentialsJSON) == 0 {
		return nil, nil
	}
	creds, errCreds := google.CredentialsFromJSON(ctx, credentialsJSON,
		sheetsapi.SpreadsheetsScope,
		drive.DriveFileScope,
	)
	if errCreds != nil {
		return nil, fmt.Errorf("sheets: parse credentials: %w", errCreds)
	}

	sheetsService, errSheets := sheetsapi.NewService(ctx, option.WithCredentials(creds))
	if errSheets != nil {
		return nil, fmt.Errorf("sheets: create sheets service: %w", errSheets)
	}
	driveService, errDrive := drive.NewService(ctx, option.WithCredentials(creds))
	if errDrive != nil {
		return nil, fmt.Errorf("sheets: create drive service: %w", errDrive)
	}
	return &Materializer{
		sheetsService: sheetsService,
		driveService:  driveService,
	}, nil
}

// Available reports whether the integration is configured.
func (m *Materializer) Available() bool {
	return m != nil && m.sheetsService != nil
}

// Materialize creates a spreadsheet for the spec and returns its ID. Each
// sheet becomes a tab with a bold, frozen header row of column names.
func (m *Materializer) Materialize(ctx context.Context, s spec.Spec) (string, error) {
	if !m.Available() {
		return "", fmt.Errorf("sheets: materializer not configured")
	}
	title := strings.TrimSpace(s.Title)
	if title == "" {
		return "", fmt.Errorf("sheets: spec has no title")
	}

	created, errCreate := m.sheetsService.Spreadsheets.Create(&sheetsapi.Spreadsheet{
		Properties: &sheetsapi.SpreadsheetProperties{Title: title},
		Sheets:     buildTabRequests(s.Sheets),
	}).Context(ctx).Do()
	if errCreate != nil {
		return "", fmt.Errorf("sheets: create spreadsheet: %w", errCreate)
	}
	spreadsheetID := created.SpreadsheetId

	if errHeaders := m.writeHeaders(ctx, spreadsheetID, created, s.Sheets); errHeaders != nil {
		return "", errHeaders
	}
	if errFormat := m.formatHeaders(ctx, spreadsheetID, created, s.Sheets); errFormat != nil {
		return "", errFormat
	}

	// Readable by link so the copy flow works for recipients. Best effort;
	// a private spreadsheet is still a successful materialization.
	if _, errShare := m.driveService.Permissions.Create(spreadsheetID, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do(); errShare != nil {
		log.WithError(errShare).WithField("spreadsheet_id", spreadsheetID).Warn("sheets: share failed")
	}

	return spreadsheetID, nil
}

// buildTabRequests maps spec sheets onto tab definitions. A spec with zero
// sheets still yields one default tab because the API requires it.
func buildTabRequests(specSheets []spec.Sheet) []*sheetsapi.Sheet {
	if len(specSheets) == 0 {
		return []*sheetsapi.Sheet{{
			Properties: &sheetsapi.SheetProperties{Title: "Sheet1"},
		}}
	}
	tabs := make([]*sheetsapi.Sheet, 0, len(specSheets))
	for i, sheet := range specSheets {
		name := strings.TrimSpace(sheet.Name)
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i+1)
		}
		tabs = append(tabs, &sheetsapi.Sheet{
			Properties: &sheetsapi.SheetProperties{Title: name},
		})
	}
	return tabs
}

func (m *Materializer) writeHeaders(ctx context.Context, spreadsheetID string, created *sheetsapi.Spreadsheet, specSheets []spec.Sheet) error {
	for i, sheet := range specSheets {
		if len(sheet.Columns) == 0 || i >= len(created.Sheets) {
			continue
		}
		header := make([]interface{}, 0, len(sheet.Columns))
		for _, column := range sheet.Columns {
			header = append(header, column.Name)
		}
		tabTitle := created.Sheets[i].Properties.Title
		writeRange := fmt.Sprintf("'%s'!A1", tabTitle)
		valueRange := &sheetsapi.ValueRange{
			Range:  writeRange,
			Values: [][]interface{}{header},
		}
		if _, errWrite := m.sheetsService.Spreadsheets.Values.Update(spreadsheetID, writeRange, valueRange).
			ValueInputOption("RAW").
			Context(ctx).
			Do(); errWrite != nil {
			return fmt.Errorf("sheets: write header for %s: %w", tabTitle, errWrite)
		}
	}
	return nil
}

func (m *Materializer) formatHeaders(ctx context.Context, spreadsheetID string, created *sheetsapi.Spreadsheet, specSheets []spec.Sheet) error {
	var requests []*sheetsapi.Request
	for i, sheet := range specSheets {
		if len(sheet.Columns) == 0 || i >= len(created.Sheets) {
			continue
		}
		sheetID := created.Sheets[i].Properties.SheetId
		requests = append(requests,
			&sheetsapi.Request{
				RepeatCell: &sheetsapi.RepeatCellRequest{
					Range: &sheetsapi.GridRange{
						SheetId:          sheetID,
						StartRowIndex:    0,
						EndRowIndex:      1,
						StartColumnIndex: 0,
						EndColumnIndex:   int64(len(sheet.Columns)),
					},
					Cell: &sheetsapi.CellData{
						UserEnteredFormat: &sheetsapi.CellFormat{
							TextFormat: &sheetsapi.TextFormat{Bold: true},
						},
					},
					Fields: "userEnteredFormat.textFormat.bold",
				},
			},
			&sheetsapi.Request{
				UpdateSheetProperties: &sheetsapi.UpdateSheetPropertiesRequest{
					Properties: &sheetsapi.SheetProperties{
						SheetId: sheetID,
						GridProperties: &sheetsapi.GridProperties{
							FrozenRowCount: 1,
						},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
		)
	}
	if len(requests) == 0 {
		return nil
	}
	if _, errBatch := m.sheetsService.Spreadsheets.BatchUpdate(spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do(); errBatch != nil {
		return fmt.Errorf("sheets: format headers: %w", errBatch)
	}
	return nil
}
