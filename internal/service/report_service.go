package service

import (
	"context"

	"levscore/internal/config"
	"levscore/internal/infra"
	"levscore/internal/repository"

	"github.com/google/uuid"
)

type ReportService interface {
	// Scorecard renders the supplier's PDF scorecard and returns the path
	// to the generated file.
	Scorecard(ctx context.Context, orgID, supplierID uuid.UUID) (string, error)
	// EmailScorecard renders the scorecard and mails it as an attachment.
	EmailScorecard(ctx context.Context, orgID, supplierID uuid.UUID, to string) error
}

type reportService struct {
	suppliers repository.SupplierRepository
	mailer    *infra.Mailer
	cfg       *config.Config
}

func NewReportService(suppliers repository.SupplierRepository, mailer *infra.Mailer, cfg *config.Config) ReportService {
	return &reportService{suppliers: suppliers, mailer: mailer, cfg: cfg}
}

func (s *reportService) Scorecard(ctx context.Context, orgID, supplierID uuid.UUID) (string, error) {
	sup, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil || sup.OrganizationID != orgID {
		return "", ErrSupplierNotFound
	}
	return infra.GenerateScorecardPDF(sup, s.cfg.PDFStoragePath)
}

func (s *reportService) EmailScorecard(ctx context.Context, orgID, supplierID uuid.UUID, to string) error {
	sup, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil || sup.OrganizationID != orgID {
		return ErrSupplierNotFound
	}
	path, err := infra.GenerateScorecardPDF(sup, s.cfg.PDFStoragePath)
	if err != nil {
		return err
	}
	subject := "Supplier scorecard: " + sup.Name
	body := "Attached is the latest scorecard for " + sup.Name + " (" + sup.SupplierNumber + ").\n"
	return s.mailer.Send(to, subject, body, path)
}
