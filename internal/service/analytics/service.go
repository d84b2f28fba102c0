package analytics

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
	"github.com/m04kA/OptiOR-SchedulingService/internal/integrations/predictservice"
	"github.com/m04kA/OptiOR-SchedulingService/internal/service/analytics/models"
)

// Периоды агрегации
const (
	PeriodDay   = "day"
	PeriodMonth = "month"
	PeriodYear  = "year"
	PeriodAll   = "all"
)

// Максимум хирургов в топе счётчика
const topSurgeonsLimit = 10

// Service сервис аналитики и разовых оценок длительности
type Service struct {
	caseClient      CaseServiceClient
	predictClient   PredictServiceClient
	fallbackMinutes int
	logger          Logger
	timeProvider    TimeProvider
}

// NewService создает новый экземпляр сервиса аналитики
func NewService(caseClient CaseServiceClient, predictClient PredictServiceClient, fallbackMinutes int, logger Logger) *Service {
	return &Service{
		caseClient:      caseClient,
		predictClient:   predictClient,
		fallbackMinutes: fallbackMinutes,
		logger:          logger,
		timeProvider:    &RealTimeProvider{},
	}
}

// GetAnalytics возвращает агрегаты по кейсам за период
// Счётчики и средние строятся по кейсам с зафиксированной длительностью,
// сводка загрузки - по всем кейсам периода
func (s *Service) GetAnalytics(ctx context.Context, period string) (*models.AnalyticsResponse, error) {
	period, err := normalizePeriod(period)
	if err != nil {
		s.logger.Warn("GetAnalytics: %v", err)
		return nil, err
	}

	s.logger.Info("GetAnalytics: computing aggregates, period=%s", period)

	cases, err := s.caseClient.GetCases(ctx)
	if err != nil {
		s.logger.Error("GetAnalytics: failed to fetch cases: %v", err)
		return nil, fmt.Errorf("%w: GetAnalytics - failed to fetch cases: %v", ErrCaseServiceUnavailable, err)
	}

	inPeriod := filterByPeriod(cases, period, s.timeProvider.Now())

	resp := &models.AnalyticsResponse{
		Period:                 period,
		SpecialtyCounts:        make(map[string]int),
		RoomCounts:             make(map[string]int),
		SurgeonCounts:          make(map[string]int),
		AvgDurationBySpecialty: make(map[string]float64),
		Status:                 buildStatus(inPeriod),
	}

	durationSum := make(map[string]float64)
	surgeonCounts := make(map[string]int)

	for _, c := range inPeriod {
		if !c.HasActualDuration() {
			continue
		}

		resp.SpecialtyCounts[c.Service]++
		resp.RoomCounts[c.ORSuite]++
		durationSum[c.Service] += *c.ActualDuration

		surgeon := domain.UnassignedDoctorLabel
		if c.HasSurgeon() {
			surgeon = *c.DoctorName
		}
		surgeonCounts[surgeon]++
	}

	for specialty, sum := range durationSum {
		resp.AvgDurationBySpecialty[specialty] = round1(sum / float64(resp.SpecialtyCounts[specialty]))
	}

	resp.SurgeonCounts = topSurgeons(surgeonCounts, topSurgeonsLimit)

	s.logger.Info("GetAnalytics: period=%s, %d cases aggregated", period, resp.Status.TotalCases)
	return resp, nil
}

// PredictDuration делает разовую оценку длительности операции
// Цепочка деградации: модель (когда передано заявленное время) ->
// историческое среднее -> значение по умолчанию. Недоступность
// PredictService не превращается в ошибку ответа
func (s *Service) PredictDuration(ctx context.Context, req *models.PredictDurationRequest) (*models.PredictDurationResponse, error) {
	s.logger.Info("PredictDuration: specialty=%s date=%s", req.Specialty, req.Date)

	if strings.TrimSpace(req.Specialty) == "" {
		s.logger.Warn("PredictDuration: specialty is required")
		return nil, fmt.Errorf("%w: specialty is required", ErrInvalidInput)
	}
	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		s.logger.Warn("PredictDuration: invalid date %q", req.Date)
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, req.Date)
	}

	minutes, source := s.resolvePrediction(ctx, req)

	resp := &models.PredictDurationResponse{
		PredictedMinutes: minutes,
		Source:           source,
	}
	if req.BookedTime != nil {
		overrun := minutes - int(math.Round(*req.BookedTime))
		resp.OverrunMinutes = &overrun
	}

	s.logger.Info("PredictDuration: specialty=%s predicted=%d min (source=%s)", req.Specialty, minutes, source)
	return resp, nil
}

// Retrain запускает переобучение модели PredictService
func (s *Service) Retrain(ctx context.Context) (*models.RetrainResponse, error) {
	s.logger.Info("Retrain: requesting model retraining")

	result, err := s.predictClient.Retrain(ctx)
	if err != nil {
		if errors.Is(err, predictservice.ErrTrainingFailed) {
			s.logger.Error("Retrain: training failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrTrainingFailed, err)
		}
		s.logger.Error("Retrain: predict service error: %v", err)
		return nil, fmt.Errorf("%w: Retrain - predict service error: %v", ErrPredictServiceUnavailable, err)
	}

	s.logger.Info("Retrain: model retrained, status=%s", result.Status)
	return &models.RetrainResponse{
		Message: result.Message,
		Status:  result.Status,
	}, nil
}

// Вспомогательные методы

// resolvePrediction повторяет цепочку деградации диалога бронирования
func (s *Service) resolvePrediction(ctx context.Context, req *models.PredictDurationRequest) (int, string) {
	if req.BookedTime != nil {
		minutes, err := s.predictClient.PredictSuggestion(ctx, &predictservice.SuggestionRequest{
			Date:       req.Date,
			Service:    req.Specialty,
			BookedTime: *req.BookedTime,
		})
		if err != nil {
			s.logger.Warn("resolvePrediction: model suggestion failed for specialty=%s: %v", req.Specialty, err)
		} else if minutes > 0 {
			return int(math.Round(minutes)), domain.DurationSourceModel
		}
	}

	minutes, source, err := s.predictClient.PredictAverageWithGracefulDegradation(ctx, req.Specialty, req.Date)
	if err != nil || minutes <= 0 {
		s.logger.Warn("resolvePrediction: falling back to default %d min for specialty=%s", s.fallbackMinutes, req.Specialty)
		return s.fallbackMinutes, domain.DurationSourceFallback
	}

	if source == "" {
		source = domain.DurationSourceAverage
	}
	return int(math.Round(minutes)), source
}

// normalizePeriod валидирует период; пустой период означает "all"
func normalizePeriod(period string) (string, error) {
	if period == "" {
		return PeriodAll, nil
	}
	switch period {
	case PeriodDay, PeriodMonth, PeriodYear, PeriodAll:
		return period, nil
	default:
		return "", fmt.Errorf("%w: unknown period %q", ErrInvalidInput, period)
	}
}

// filterByPeriod оставляет кейсы, попадающие в период относительно now
func filterByPeriod(cases []*domain.Case, period string, now time.Time) []*domain.Case {
	if period == PeriodAll {
		return cases
	}

	nowY, nowM, nowD := now.Date()

	result := make([]*domain.Case, 0, len(cases))
	for _, c := range cases {
		y, m, d := c.WheelsIn.Date()

		switch period {
		case PeriodDay:
			if y == nowY && m == nowM && d == nowD {
				result = append(result, c)
			}
		case PeriodMonth:
			if y == nowY && m == nowM {
				result = append(result, c)
			}
		case PeriodYear:
			if y == nowY {
				result = append(result, c)
			}
		}
	}

	return result
}

// buildStatus строит сводку загрузки по всем кейсам периода
func buildStatus(cases []*domain.Case) models.AnalyticsStatus {
	var durationSum float64
	var durationCount int

	for _, c := range cases {
		if c.HasActualDuration() {
			durationSum += *c.ActualDuration
			durationCount++
		}
	}

	avg := 0.0
	if durationCount > 0 {
		avg = round1(durationSum / float64(durationCount))
	}

	return models.AnalyticsStatus{
		TotalCases:  len(cases),
		AvgDuration: avg,
		Utilization: domain.UtilizationBand(len(cases)),
	}
}

// topSurgeons возвращает limit хирургов с наибольшим числом операций
// Порядок при равенстве счётчиков - по имени, чтобы топ был детерминирован
func topSurgeons(counts map[string]int, limit int) map[string]int {
	type entry struct {
		name  string
		count int
	}

	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name: name, count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count == entries[j].count {
			return entries[i].name < entries[j].name
		}
		return entries[i].count > entries[j].count
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}

	result := make(map[string]int, len(entries))
	for _, e := range entries {
		result[e.name] = e.count
	}
	return result
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
