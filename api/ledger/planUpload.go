package ledger

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"HTXErp/api"
	"HTXErp/api/constants"
	"HTXErp/internal/config"
	"HTXErp/internal/planledger"

	"github.com/shakinm/xlsReader/xls"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// parseUploadFile reads the uploaded plan sheet into string rows.
func parseUploadFile(file multipart.File, ext string) ([][]string, error) {
	switch ext {
	case ".csv":
		r := csv.NewReader(file)
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		r.TrimLeadingSpace = true
		return r.ReadAll()
	case ".xlsx":
		f, err := excelize.OpenReader(file)
		if err != nil {
			return nil, err
		}
		sheet := f.GetSheetName(0)
		return f.GetRows(sheet)
	case ".xls":
		return parseXLSFile(file)
	}
	return nil, errors.New(constants.ErrUnsupportedFileType)
}

// parseXLSFile parses a legacy XLS workbook. The xls package only opens
// named files, so the stream is spooled to a temp file first.
func parseXLSFile(file multipart.File) ([][]string, error) {
	tmpFile, err := os.CreateTemp("", "plan-upload-*.xls")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpFile.Name())

	if _, err := io.Copy(tmpFile, file); err != nil {
		tmpFile.Close()
		return nil, err
	}
	tmpFile.Close()

	xlsBook, err := xls.OpenFile(tmpFile.Name())
	if err != nil {
		return nil, err
	}
	sheet, err := xlsBook.GetSheet(0)
	if err != nil || sheet == nil {
		return nil, fmt.Errorf("no sheets found")
	}

	rows := [][]string{}
	for _, xlsRow := range sheet.GetRows() {
		rowData := []string{}
		for _, col := range xlsRow.GetCols() {
			rowData = append(rowData, col.GetString())
		}
		rows = append(rows, rowData)
	}
	return rows, nil
}

func normalizeHeader(h string) string {
	h = strings.TrimSpace(h)
	h = strings.Trim(h, "'\"`")
	h = strings.ToLower(h)
	return strings.ReplaceAll(h, " ", "_")
}

// UploadPlan ingests a bulk plan sheet. Expected columns (header row, any
// order): project_code, year_month, cost_item, plan_amount. Rows are written
// through the same plan path as manual entry, in batches, and per-row
// failures are reported without aborting the rest of the sheet.
func UploadPlan(planner *planledger.Planner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrFailedToParseUpload)
			return
		}

		results := make([]map[string]interface{}, 0)
		for _, files := range r.MultipartForm.File {
			for _, fileHeader := range files {
				file, err := fileHeader.Open()
				if err != nil {
					results = append(results, uploadFailure(fileHeader.Filename, err.Error()))
					continue
				}
				ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
				records, err := parseUploadFile(file, ext)
				file.Close()
				if err != nil {
					results = append(results, uploadFailure(fileHeader.Filename, err.Error()))
					continue
				}
				if len(records) < 2 {
					results = append(results, uploadFailure(fileHeader.Filename, constants.ErrUploadNeedsDataRows))
					continue
				}

				batchID := uuid.New().String()
				saved, rowErrors := ingestPlanRows(ctx, planner, records)
				result := map[string]interface{}{
					"success":  len(rowErrors) == 0,
					"file":     fileHeader.Filename,
					"batch_id": batchID,
					"saved":    saved,
				}
				if len(rowErrors) > 0 {
					result["row_errors"] = rowErrors
				}
				results = append(results, result)
			}
		}

		if len(results) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, "no file uploaded")
			return
		}
		api.RespondWithPayload(w, true, "", results)
	}
}

func uploadFailure(filename, msg string) map[string]interface{} {
	return map[string]interface{}{"success": false, "file": filename, "error": msg}
}

// ingestPlanRows maps sheet rows onto plan entries and saves them in
// batches. The header row decides the column positions.
func ingestPlanRows(ctx context.Context, planner *planledger.Planner, records [][]string) (int, []string) {
	colIndex := map[string]int{}
	for i, h := range records[0] {
		colIndex[normalizeHeader(h)] = i
	}
	field := func(row []string, name string) string {
		idx, ok := colIndex[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	saved := 0
	rowErrors := []string{}
	batch := make([]planledger.PlanEntry, 0, config.PlanUploadBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := planner.SavePlan(ctx, batch); err != nil {
			rowErrors = append(rowErrors, err.Error())
		} else {
			saved += len(batch)
		}
		batch = batch[:0]
	}

	for i, row := range records[1:] {
		amountStr := field(row, "plan_amount")
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: plan_amount %q is not a number", i+2, amountStr))
			continue
		}
		batch = append(batch, planledger.PlanEntry{
			ProjectCode: field(row, "project_code"),
			YearMonth:   field(row, "year_month"),
			SubjectCode: field(row, "cost_item"),
			PlanAmount:  amount,
		})
		if len(batch) >= config.PlanUploadBatchSize {
			flush()
		}
	}
	flush()
	return saved, rowErrors
}
