package calendar

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
	caseClient "github.com/m04kA/OptiOR-SchedulingService/internal/integrations/caseservice"
	"github.com/m04kA/OptiOR-SchedulingService/internal/service/calendar/models"
)

// Service сервис календарной ленты кейсов
type Service struct {
	caseClient CaseServiceClient
	logger     Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(caseClient CaseServiceClient, logger Logger) *Service {
	return &Service{
		caseClient: caseClient,
		logger:     logger,
	}
}

// GetCalendar возвращает кейсы в формате событий календаря
// date != "" сужает ленту до одного дня
func (s *Service) GetCalendar(ctx context.Context, date string) (*models.CalendarResponse, error) {
	s.logger.Info("GetCalendar: fetching cases, date=%q", date)

	var filterDate *time.Time
	if date != "" {
		parsed, err := time.Parse(domain.DateFormat, date)
		if err != nil {
			s.logger.Warn("GetCalendar: invalid date %q", date)
			return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, date)
		}
		filterDate = &parsed
	}

	cases, err := s.caseClient.GetCases(ctx)
	if err != nil {
		s.logger.Error("GetCalendar: failed to fetch cases: %v", err)
		return nil, fmt.Errorf("%w: GetCalendar - failed to fetch cases: %v", ErrCaseServiceUnavailable, err)
	}

	if filterDate != nil {
		filtered := make([]*domain.Case, 0, len(cases))
		for _, c := range cases {
			if c.IsOnDate(*filterDate) {
				filtered = append(filtered, c)
			}
		}
		cases = filtered
	}

	// Лента отсортирована по началу операции, при равенстве - по ID
	sort.Slice(cases, func(i, j int) bool {
		if cases[i].WheelsIn.Equal(cases[j].WheelsIn) {
			return cases[i].ID < cases[j].ID
		}
		return cases[i].WheelsIn.Before(cases[j].WheelsIn)
	})

	s.logger.Info("GetCalendar: returning %d events", len(cases))
	return models.FromDomainCases(cases), nil
}

// DeleteCase удаляет кейс через CaseService
func (s *Service) DeleteCase(ctx context.Context, caseID int64) error {
	s.logger.Info("DeleteCase: deleting case id=%d", caseID)

	if err := s.caseClient.DeleteCase(ctx, caseID); err != nil {
		if errors.Is(err, caseClient.ErrCaseNotFound) {
			s.logger.Warn("DeleteCase: case id=%d not found", caseID)
			return ErrCaseNotFound
		}
		s.logger.Error("DeleteCase: failed to delete case id=%d: %v", caseID, err)
		return fmt.Errorf("%w: DeleteCase - failed to delete case: %v", ErrCaseServiceUnavailable, err)
	}

	s.logger.Info("DeleteCase: successfully deleted case id=%d", caseID)
	return nil
}
