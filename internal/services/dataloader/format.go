package dataloader

import (
	"strings"

	"expenses/internal/models"
)

// Header tokens of the two supported exports
const (
	camtDateColumn        = "Buchungstag"
	debitCreditDateColumn = "Booking date"
	debitCreditTypeColumn = "Transaction Type"
)

// LocateHeader finds the header row in a statement that may start with
// preamble lines. The first line carrying either export's header markers
// wins. When nothing matches, line 0 is returned with FormatUnknown.
func LocateHeader(lines []string) (int, models.Format) {
	for i, line := range lines {
		if strings.Contains(line, debitCreditDateColumn) && strings.Contains(line, debitCreditTypeColumn) {
			return i, models.FormatDebitCredit
		}
		if strings.Contains(line, camtDateColumn) {
			return i, models.FormatCAMT
		}
	}
	return 0, models.FormatUnknown
}

// DetectFormat decides the row layout from the parsed header columns
func DetectFormat(header []string) models.Format {
	var hasCAMT bool
	for _, col := range header {
		switch strings.TrimSpace(col) {
		case debitCreditDateColumn:
			return models.FormatDebitCredit
		case camtDateColumn:
			hasCAMT = true
		}
	}
	if hasCAMT {
		return models.FormatCAMT
	}
	return models.FormatUnknown
}
