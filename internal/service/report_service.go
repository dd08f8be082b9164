package service

import (
	"context"
	"fmt"
	"time"

	"autostats/internal/errors"
	"autostats/internal/report"
	"autostats/internal/repository"
)

// ReportService exports a vehicle's service history as a PDF document.
type ReportService interface {
	// GenerateReport resolves the vehicle through the ownership guard,
	// assembles the chronological service history and renders it. It
	// returns the PDF bytes and the suggested filename.
	GenerateReport(ctx context.Context, userID string, vehicleID uint) ([]byte, string, error)
}

type reportService struct {
	vehicleService VehicleService
	recordRepo     repository.ServiceRecordRepository
	now            func() time.Time
}

// NewReportService creates a new report service.
func NewReportService(vehicleService VehicleService, recordRepo repository.ServiceRecordRepository) ReportService {
	return &reportService{
		vehicleService: vehicleService,
		recordRepo:     recordRepo,
		now:            time.Now,
	}
}

func (s *reportService) GenerateReport(ctx context.Context, userID string, vehicleID uint) ([]byte, string, error) {
	vehicle, err := s.vehicleService.GetForUser(ctx, userID, vehicleID)
	if err != nil {
		return nil, "", err
	}

	// Reports read oldest to newest, the opposite of the listing view.
	records, err := s.recordRepo.ListByVehicleChronological(ctx, vehicleID)
	if err != nil {
		return nil, "", fmt.Errorf("list records: %w", err)
	}

	now := s.now()
	doc := report.BuildServiceHistory(vehicle, records, now)

	pdfBytes, err := report.RenderPDF(doc)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", errors.ErrReportRender, err)
	}

	return pdfBytes, report.Filename(vehicle.RegistrationNumber, now), nil
}
