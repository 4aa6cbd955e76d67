package importer

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sentinel failures. Handlers translate these into user-facing messages;
// anything else from this package means the workbook itself was unreadable.
var (
	// ErrEmptyFile fires when the first sheet has no rows at all, not even
	// a header row.
	ErrEmptyFile = errors.New("filen är tom: kalkylarket saknar rader")

	// ErrNoSuppliers fires when parsing structurally succeeds but zero
	// valid records come out, e.g. every row missing the business key.
	ErrNoSuppliers = errors.New("inga giltiga leverantörer hittades: varje rad saknar LevNr eller Namn")
)

// HeaderValidation reports whether the required logical columns are present.
// Transient — returned to the uploader for correction, never persisted.
type HeaderValidation struct {
	Valid          bool     `json:"valid"`
	MissingColumns []string `json:"missing_columns"`
	FoundColumns   []string `json:"found_columns"`
}

// requiredColumn pairs a canonical display name with its accepted spellings.
type requiredColumn struct {
	display string
	aliases []string
}

var requiredColumns = []requiredColumn{
	{ColumnSupplierNumber, supplierNumberAliases},
	{ColumnSupplierName, supplierNameAliases},
}

// firstSheetRows opens buf as an xlsx workbook and returns all rows of the
// first sheet. Multi-sheet workbooks are by convention read first-sheet-only.
func firstSheetRows(buf []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("importer: open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("importer: read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// ValidateHeaders checks row 0 of the first sheet against the required
// logical columns. Each required column is satisfied when at least one of
// its normalized aliases appears among the normalized actual headers.
// A workbook with zero rows returns ErrEmptyFile.
//
// Callers run this before Parse to short-circuit with an actionable error
// instead of a useless "0 rows imported".
func ValidateHeaders(buf []byte) (*HeaderValidation, error) {
	rows, err := firstSheetRows(buf)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	headers := rows[0]
	found := make([]string, 0, len(headers))
	normalized := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		if n := NormalizeHeader(h); n != "" {
			found = append(found, h)
			normalized[n] = struct{}{}
		}
	}

	var missing []string
	for _, req := range requiredColumns {
		satisfied := false
		for _, alias := range req.aliases {
			if _, ok := normalized[NormalizeHeader(alias)]; ok {
				satisfied = true
				break
			}
		}
		if !satisfied {
			missing = append(missing, req.display)
		}
	}

	return &HeaderValidation{
		Valid:          len(missing) == 0,
		MissingColumns: missing,
		FoundColumns:   found,
	}, nil
}
