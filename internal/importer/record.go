// Package importer reads supplier performance workbooks (xlsx) and turns the
// first sheet into normalized SupplierRecord values. It is a pure
// transformation layer: no persistence, no goroutines, no shared state —
// callers hand in a raw buffer and get back records or a typed failure.
package importer

// SupplierRecord is one normalized row of an uploaded workbook. It is built
// fresh per upload, per row, and never mutated afterwards; the persistence
// layer decides whether it creates or updates a stored supplier keyed by
// SupplierNumber.
type SupplierRecord struct {
	SupplierNumber string
	Name           string

	RowCount         float64
	TotalQuantity    float64
	TotalRevenue     float64
	AvgMargin        float64
	SalesScore       float64
	AssortmentScore  float64
	EfficiencyScore  float64
	MarginScore      float64
	TotalScore       float64
	RevenueShare     float64
	AccumulatedShare float64

	// Free-text fields: nil means the column was absent or blank,
	// distinguished from a present empty value.
	Diagnosis   *string
	ShortAction *string
	Tier        *string
	Profile     *string
}

// Canonical display names for the two required logical columns, used in
// validation messages shown to the uploader.
const (
	ColumnSupplierNumber = "LevNr"
	ColumnSupplierName   = "Namn"
)

// Accepted header spellings per required column, most-preferred first.
// Compared in normalized form (see NormalizeHeader).
var (
	supplierNumberAliases = []string{"levnr", "lev nr", "leverantörsnummer", "supplier number"}
	supplierNameAliases   = []string{"namn", "leverantör", "leverantörsnamn", "supplier name"}
)

// numericField maps a metric setter onto its accepted header spellings.
// Keeping this declarative makes adding an export variant a one-line change.
type numericField struct {
	aliases []string
	set     func(*SupplierRecord, float64)
}

type stringField struct {
	aliases []string
	set     func(*SupplierRecord, *string)
}

var numericFields = []numericField{
	{[]string{"antal rader", "rader", "row count"}, func(r *SupplierRecord, v float64) { r.RowCount = v }},
	{[]string{"totalt antal", "antal", "total quantity"}, func(r *SupplierRecord, v float64) { r.TotalQuantity = v }},
	{[]string{"omsättning", "total omsättning", "total revenue"}, func(r *SupplierRecord, v float64) { r.TotalRevenue = v }},
	{[]string{"snittmarginal", "marginal %", "avg margin"}, func(r *SupplierRecord, v float64) { r.AvgMargin = v }},
	{[]string{"försäljningspoäng", "sales score"}, func(r *SupplierRecord, v float64) { r.SalesScore = v }},
	{[]string{"sortimentspoäng", "assortment score"}, func(r *SupplierRecord, v float64) { r.AssortmentScore = v }},
	{[]string{"effektivitetspoäng", "efficiency score"}, func(r *SupplierRecord, v float64) { r.EfficiencyScore = v }},
	{[]string{"marginalpoäng", "margin score"}, func(r *SupplierRecord, v float64) { r.MarginScore = v }},
	{[]string{"totalpoäng", "total score", "poäng"}, func(r *SupplierRecord, v float64) { r.TotalScore = v }},
	{[]string{"omsättningsandel", "andel %", "revenue share"}, func(r *SupplierRecord, v float64) { r.RevenueShare = v }},
	{[]string{"ackumulerad andel", "ack andel", "accumulated share"}, func(r *SupplierRecord, v float64) { r.AccumulatedShare = v }},
}

var stringFields = []stringField{
	{[]string{"diagnos", "diagnosis"}, func(r *SupplierRecord, v *string) { r.Diagnosis = v }},
	{[]string{"åtgärd", "kort åtgärd", "short action"}, func(r *SupplierRecord, v *string) { r.ShortAction = v }},
	{[]string{"nivå", "tier", "klass"}, func(r *SupplierRecord, v *string) { r.Tier = v }},
	{[]string{"profil", "profile"}, func(r *SupplierRecord, v *string) { r.Profile = v }},
}
