package dto

import "github.com/shopspring/decimal"

type TrendSnapshotResponse struct {
	Month      string          `json:"month"`
	IndexValue decimal.Decimal `json:"index_value"`
	Source     string          `json:"source"`
	FetchedAt  string          `json:"fetched_at"`
}
