package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/JibinB02/pehlahath/internal/entity"
	"github.com/JibinB02/pehlahath/internal/repository"
)

type ReportService struct {
	reportRepo repository.ReportRepository
	events     EventPublisher
	logger     *zap.Logger
}

func NewReportService(reportRepo repository.ReportRepository, events EventPublisher, logger *zap.Logger) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		events:     events,
		logger:     logger,
	}
}

// SubmitReport stores an incident report and raises an alert event for
// downstream notification. Delivery is the consumer's problem; the report
// is returned as soon as it is persisted.
func (s *ReportService) SubmitReport(ctx context.Context, req *entity.SubmitReportRequest, reporter entity.AuthUser) (*entity.Report, error) {
	report := &entity.Report{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Severity:    req.Severity,
		Images:      req.Images,
	}
	if report.Images == nil {
		report.Images = []string{}
	}

	created, err := s.reportRepo.Create(ctx, report)
	if err != nil {
		return nil, err
	}

	event := &entity.TaskEvent{
		Type:     entity.EventAlertRaised,
		ActorID:  reporter.ID,
		EntityID: created.ID,
		Payload: map[string]any{
			"type":     created.Type,
			"title":    created.Title,
			"location": created.Location,
			"severity": created.Severity,
		},
		Timestamp: time.Now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.events.PublishTaskEvent(ctx, event); err != nil {
			s.logger.Warn("failed to publish alert event",
				zap.Int("report_id", created.ID), zap.Error(err))
		}
	}()

	return created, nil
}

func (s *ReportService) GetReport(ctx context.Context, id int) (*entity.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, entity.ErrReportNotFound
	}
	return report, nil
}

func (s *ReportService) ListReports(ctx context.Context) ([]entity.Report, error) {
	return s.reportRepo.List(ctx)
}
