package get_free_surgeons

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers"
	getFreeSurgeons "github.com/m04kA/OptiOR-SchedulingService/internal/usecase/get_free_surgeons"
)

const (
	msgMissingSpecialty   = "специальность обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidHour        = "некорректный час"
	msgInvalidDuration    = "некорректная длительность, ожидается положительное число минут"
	msgInvalidExcludeCase = "некорректный ID исключаемого кейса"
	msgInvalidInput       = "некорректные данные запроса"
	msgCaseServiceDown    = "сервис кейсов недоступен"
)

type Handler struct {
	useCase GetFreeSurgeonsUseCase
	logger  Logger
}

func NewHandler(useCase GetFreeSurgeonsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/free-surgeons
// Query params: specialty (required), date + hour + durationMinutes
// (optional, вместе), excludeCaseId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	specialty := query.Get("specialty")
	if specialty == "" {
		h.logger.Warn("GET /free-surgeons - Missing specialty")
		handlers.RespondBadRequest(w, msgMissingSpecialty)
		return
	}

	var hour *int
	if hourStr := query.Get("hour"); hourStr != "" {
		parsed, err := strconv.Atoi(hourStr)
		if err != nil {
			h.logger.Warn("GET /free-surgeons - Invalid hour %q: %v", hourStr, err)
			handlers.RespondBadRequest(w, msgInvalidHour)
			return
		}
		hour = &parsed
	}

	var durationMinutes *int
	if durationStr := query.Get("durationMinutes"); durationStr != "" {
		parsed, err := strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /free-surgeons - Invalid duration %q: %v", durationStr, err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		durationMinutes = &parsed
	}

	var excludeCaseID *int64
	if excludeStr := query.Get("excludeCaseId"); excludeStr != "" {
		id, err := strconv.ParseInt(excludeStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /free-surgeons - Invalid exclude case ID %q: %v", excludeStr, err)
			handlers.RespondBadRequest(w, msgInvalidExcludeCase)
			return
		}
		excludeCaseID = &id
	}

	useCaseReq, err := ToUseCaseRequest(specialty, query.Get("date"), hour, durationMinutes, excludeCaseID)
	if err != nil {
		h.logger.Warn("GET /free-surgeons - Invalid date %q: %v", query.Get("date"), err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getFreeSurgeons.ErrInvalidDuration):
			h.logger.Warn("GET /free-surgeons - Non-positive duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getFreeSurgeons.ErrInvalidInput):
			h.logger.Warn("GET /free-surgeons - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getFreeSurgeons.ErrCaseServiceUnavailable):
			h.logger.Error("GET /free-surgeons - Case service unavailable: %v", err)
			handlers.RespondBadGateway(w, msgCaseServiceDown)

		default:
			h.logger.Error("GET /free-surgeons - Failed to filter surgeons: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /free-surgeons - %d surgeons returned for specialty=%s (filtered=%t)",
		len(result.Surgeons), specialty, result.Filtered)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
