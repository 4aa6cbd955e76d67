package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"levscore/internal/dto"
	"levscore/internal/importer"
	"levscore/internal/model"
	"levscore/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// HeaderError reports an upload whose header row lacked required columns.
// It keeps the full validation result so the handler can tell the uploader
// exactly what was missing and what was found instead.
type HeaderError struct {
	Validation *importer.HeaderValidation
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("spreadsheet is missing required columns: %v", e.Validation.MissingColumns)
}

type ImportService interface {
	// Validate checks the header row of an uploaded workbook without
	// touching any data, for the pre-upload dry-run endpoint.
	Validate(ctx context.Context, buf []byte) (*importer.HeaderValidation, error)
	// Import parses the workbook and upserts every valid row against the
	// organization's suppliers, keyed by supplier number.
	Import(ctx context.Context, orgID, uploaderID uuid.UUID, filename string, buf []byte) (*dto.ImportResponse, error)
	ListLogs(ctx context.Context, orgID uuid.UUID) ([]dto.ImportLogResponse, error)
}

type importService struct {
	suppliers  repository.SupplierRepository
	importLogs repository.ImportLogRepository
	scores     ScoreService
}

func NewImportService(
	suppliers repository.SupplierRepository,
	importLogs repository.ImportLogRepository,
	scores ScoreService,
) ImportService {
	return &importService{
		suppliers:  suppliers,
		importLogs: importLogs,
		scores:     scores,
	}
}

func (s *importService) Validate(ctx context.Context, buf []byte) (*importer.HeaderValidation, error) {
	return importer.ValidateHeaders(buf)
}

// Import runs the whole batch in one transaction: either every valid row
// lands or none does. Rows the importer skipped for a missing business key
// are only counted, never itemized.
func (s *importService) Import(ctx context.Context, orgID, uploaderID uuid.UUID, filename string, buf []byte) (*dto.ImportResponse, error) {
	validation, err := importer.ValidateHeaders(buf)
	if err != nil {
		return nil, err
	}
	if !validation.Valid {
		return nil, &HeaderError{Validation: validation}
	}

	records, totalRows, err := importer.Parse(buf)
	if err != nil {
		return nil, err
	}

	var created, updated int
	err = runTx(ctx, s.suppliers.DB(), func(tx *gorm.DB) error {
		for _, rec := range records {
			existing, err := s.suppliers.FindByNumberTx(tx, orgID, rec.SupplierNumber)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				sup := &model.Supplier{
					OrganizationID: orgID,
					SupplierNumber: rec.SupplierNumber,
					ReviewStatus:   model.ReviewPending,
				}
				applyRecord(sup, rec)
				if err := s.suppliers.CreateTx(tx, sup); err != nil {
					return err
				}
				created++
				continue
			}
			// Re-import refreshes metrics and text but never touches the
			// review workflow or comments.
			applyRecord(existing, rec)
			if err := s.suppliers.SaveTx(tx, existing); err != nil {
				return err
			}
			updated++
		}

		entry := &model.ImportLog{
			OrganizationID: orgID,
			UploadedByID:   uploaderID,
			Filename:       filename,
			TotalRows:      totalRows,
			Created:        created,
			Updated:        updated,
			Skipped:        totalRows - len(records),
		}
		return s.importLogs.CreateTx(tx, entry)
	})
	if err != nil {
		return nil, err
	}

	// Shares and tiers depend on every supplier in the org, not just the
	// ones this file touched.
	if err := s.scores.Recompute(ctx, orgID); err != nil {
		return nil, err
	}

	log.Info().
		Str("org_id", orgID.String()).
		Str("filename", filename).
		Int("created", created).
		Int("updated", updated).
		Int("skipped", totalRows-len(records)).
		Msg("import completed")

	return &dto.ImportResponse{
		Filename:  filename,
		TotalRows: totalRows,
		Created:   created,
		Updated:   updated,
		Skipped:   totalRows - len(records),
	}, nil
}

func (s *importService) ListLogs(ctx context.Context, orgID uuid.UUID) ([]dto.ImportLogResponse, error) {
	logs, err := s.importLogs.ListByOrg(ctx, orgID, 50)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ImportLogResponse, len(logs))
	for i, l := range logs {
		uploadedBy := ""
		if l.UploadedBy != nil {
			uploadedBy = l.UploadedBy.Name
		}
		resp[i] = dto.ImportLogResponse{
			ID:         l.ID.String(),
			Filename:   l.Filename,
			UploadedBy: uploadedBy,
			TotalRows:  l.TotalRows,
			Created:    l.Created,
			Updated:    l.Updated,
			Skipped:    l.Skipped,
			CreatedAt:  l.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return resp, nil
}

// applyRecord copies the spreadsheet row onto the supplier. The imported
// tier is authoritative even when nil: clearing it lets the recompute pass
// derive a fresh one from accumulated revenue share.
func applyRecord(s *model.Supplier, rec importer.SupplierRecord) {
	s.Name = rec.Name
	s.RowCount = rec.RowCount
	s.TotalQuantity = rec.TotalQuantity
	s.TotalRevenue = rec.TotalRevenue
	s.AvgMargin = rec.AvgMargin
	s.SalesScore = rec.SalesScore
	s.AssortmentScore = rec.AssortmentScore
	s.EfficiencyScore = rec.EfficiencyScore
	s.MarginScore = rec.MarginScore
	s.TotalScore = rec.TotalScore
	s.RevenueShare = rec.RevenueShare
	s.AccumulatedShare = rec.AccumulatedShare
	s.Diagnosis = rec.Diagnosis
	s.ShortAction = rec.ShortAction
	s.Tier = rec.Tier
	s.Profile = rec.Profile
}
