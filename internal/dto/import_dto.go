package dto

// ImportResponse summarizes one successful upload. Skipped counts rows the
// importer dropped for a missing business key — aggregate only, never
// per-row detail.
type ImportResponse struct {
	Filename  string `json:"filename"`
	TotalRows int    `json:"total_rows"`
	Created   int    `json:"created"`
	Updated   int    `json:"updated"`
	Skipped   int    `json:"skipped"`
}

type ImportLogResponse struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	UploadedBy string `json:"uploaded_by"`
	TotalRows  int    `json:"total_rows"`
	Created    int    `json:"created"`
	Updated    int    `json:"updated"`
	Skipped    int    `json:"skipped"`
	CreatedAt  string `json:"created_at"`
}
