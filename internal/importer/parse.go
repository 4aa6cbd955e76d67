package importer

// Parse reads the first sheet of buf and returns one SupplierRecord per data
// row, in sheet order, plus the number of data rows examined so callers can
// report how many were dropped. A row missing the supplier number or name
// after trimming is skipped silently — one bad row must not block the batch.
// Zero records after processing every row returns ErrNoSuppliers; a workbook
// with no rows at all returns ErrEmptyFile.
func Parse(buf []byte) ([]SupplierRecord, int, error) {
	rows, err := firstSheetRows(buf)
	if err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return nil, 0, ErrEmptyFile
	}

	headers := rows[0]
	totalRows := len(rows) - 1
	records := make([]SupplierRecord, 0, totalRows)

	for _, raw := range rows[1:] {
		row := buildRow(headers, raw)

		record, ok := extractRecord(row)
		if !ok {
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, totalRows, ErrNoSuppliers
	}
	return records, totalRows, nil
}

// buildRow zips a data row against the header row. Cells beyond the row's
// length default to "" — excelize truncates trailing empties.
func buildRow(headers, raw []string) Row {
	row := Row{
		Keys:  headers,
		Cells: make(map[string]string, len(headers)),
	}
	for i, h := range headers {
		v := ""
		if i < len(raw) {
			v = raw[i]
		}
		// First header wins on duplicate column names.
		if _, dup := row.Cells[h]; !dup {
			row.Cells[h] = v
		}
	}
	return row
}

// extractRecord coerces one row into a SupplierRecord. ok=false means the
// row lacks its business key or display name and must be skipped.
func extractRecord(row Row) (SupplierRecord, bool) {
	var rec SupplierRecord

	rawNumber, _ := row.Cell(supplierNumberAliases)
	number, ok := CoerceString(rawNumber)
	if !ok {
		return rec, false
	}
	rawName, _ := row.Cell(supplierNameAliases)
	name, ok := CoerceString(rawName)
	if !ok {
		return rec, false
	}
	rec.SupplierNumber = number
	rec.Name = name

	for _, f := range numericFields {
		raw, _ := row.Cell(f.aliases)
		f.set(&rec, CoerceNumber(raw))
	}
	for _, f := range stringFields {
		raw, _ := row.Cell(f.aliases)
		if v, present := CoerceString(raw); present {
			f.set(&rec, &v)
		}
	}
	return rec, true
}
