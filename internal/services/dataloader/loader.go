package dataloader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"expenses/internal/models"
	"expenses/internal/services/storage"
)

// DataLoader reads every statement of a folder into one expense set
type DataLoader struct {
	store     *storage.Storage
	log       zerolog.Logger
	encodings []Encoding
}

// FileReport describes what was read from one statement file
type FileReport struct {
	Name       string
	Encoding   string
	Format     models.Format
	HeaderLine int
	Rows       int
	Expenses   int
	Err        error
}

// Recognized reports whether one of the supported headers was found
func (r FileReport) Recognized() bool {
	return r.Err == nil && r.Format != models.FormatUnknown
}

// LoadResult holds the expenses of a folder plus per-file reports
type LoadResult struct {
	Transactions *models.TransactionSet
	Files        []FileReport
}

// Skipped returns the reports of files that could not be read
func (r *LoadResult) Skipped() []FileReport {
	var skipped []FileReport
	for _, f := range r.Files {
		if f.Err != nil {
			skipped = append(skipped, f)
		}
	}
	return skipped
}

// New creates a new DataLoader
func New(store *storage.Storage, log zerolog.Logger) *DataLoader {
	return &DataLoader{
		store:     store,
		log:       log,
		encodings: Encodings,
	}
}

// LoadData reads all statements. Files that cannot be read or decoded are
// logged and skipped; only a folder listing failure is returned as an error.
func (dl *DataLoader) LoadData() (*LoadResult, error) {
	files, err := dl.store.ListStatements()
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		dl.log.Warn().Str("dir", dl.store.Dir()).Msg("no statement files found")
	}

	result := &LoadResult{Transactions: models.NewTransactionSet(nil)}
	for _, file := range files {
		report, transactions := dl.loadFile(file)
		result.Files = append(result.Files, report)
		if report.Err != nil {
			dl.log.Warn().Err(report.Err).Str("file", report.Name).Msg("skipping statement")
			continue
		}

		dl.log.Debug().
			Str("file", report.Name).
			Str("encoding", report.Encoding).
			Str("format", report.Format.String()).
			Int("rows", report.Rows).
			Int("expenses", report.Expenses).
			Msg("loaded statement")
		result.Transactions.Transactions = append(result.Transactions.Transactions, transactions...)
	}

	dl.log.Info().Int("transactions", result.Transactions.Len()).Int("files", len(files)).Msg("loaded transactions")
	return result, nil
}

// loadFile reads, decodes and parses one statement
func (dl *DataLoader) loadFile(path string) (FileReport, []models.Transaction) {
	name := filepath.Base(path)
	dl.log.Info().Str("file", name).Msg("reading statement")

	data, err := dl.store.ReadFile(path)
	if err != nil {
		return FileReport{Name: name, Err: fmt.Errorf("error reading %s: %w", name, err)}, nil
	}

	text, enc, err := DecodeText(data, dl.encodings)
	if err != nil {
		return FileReport{Name: name, Err: fmt.Errorf("%w %s", err, name)}, nil
	}

	report, transactions := ParseStatement(name, text, dl.log)
	report.Encoding = enc
	return report, transactions
}

// ParseStatement parses decoded statement text. Only expense rows (amount
// below zero) are returned. A statement without a recognizable header gives
// no rows and no error.
func ParseStatement(name, text string, log zerolog.Logger) (FileReport, []models.Transaction) {
	report := FileReport{Name: name}

	lines := splitLines(text)
	report.HeaderLine, _ = LocateHeader(lines)

	if report.HeaderLine >= len(lines) {
		return report, nil
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(lines[report.HeaderLine:], "\n")))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			log.Warn().Err(err).Str("file", name).Msg("could not read header row")
		}
		return report, nil
	}
	report.Format = DetectFormat(header)
	if report.Format == models.FormatUnknown {
		return report, nil
	}

	var transactions []models.Transaction
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("skipping malformed row")
			continue
		}
		report.Rows++

		t, ok := NormalizeRow(report.Format, toRow(header, record))
		if !ok || !t.IsExpense() {
			continue
		}
		t.SourceFile = name
		transactions = append(transactions, t)
	}

	report.Expenses = len(transactions)
	return report, transactions
}

// toRow pairs header names with record values. Missing trailing values are
// left out of the row; extra values are dropped.
func toRow(header, record []string) Row {
	row := make(Row, len(header))
	for i, col := range header {
		if i >= len(record) {
			break
		}
		row[strings.TrimSpace(col)] = record[i]
	}
	return row
}

// splitLines splits on any of \r\n, \n and \r
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
