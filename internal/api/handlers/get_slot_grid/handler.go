package get_slot_grid

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers"
	getSlotGrid "github.com/m04kA/OptiOR-SchedulingService/internal/usecase/get_slot_grid"
)

const (
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDuration    = "длительность обязательна"
	msgInvalidDuration    = "некорректная длительность, ожидается положительное число минут"
	msgInvalidExcludeCase = "некорректный ID исключаемого кейса"
	msgCaseServiceDown    = "сервис кейсов недоступен"
)

type Handler struct {
	useCase GetSlotGridUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotGridUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slot-grid
// Query params: date (required, YYYY-MM-DD), durationMinutes (required),
// excludeCaseId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /slot-grid - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	durationStr := query.Get("durationMinutes")
	if durationStr == "" {
		h.logger.Warn("GET /slot-grid - Missing duration")
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}

	durationMinutes, err := strconv.Atoi(durationStr)
	if err != nil {
		h.logger.Warn("GET /slot-grid - Invalid duration %q: %v", durationStr, err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	var excludeCaseID *int64
	if excludeStr := query.Get("excludeCaseId"); excludeStr != "" {
		id, err := strconv.ParseInt(excludeStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /slot-grid - Invalid exclude case ID %q: %v", excludeStr, err)
			handlers.RespondBadRequest(w, msgInvalidExcludeCase)
			return
		}
		excludeCaseID = &id
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, durationMinutes, excludeCaseID)
	if err != nil {
		h.logger.Warn("GET /slot-grid - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getSlotGrid.ErrInvalidDuration):
			h.logger.Warn("GET /slot-grid - Non-positive duration %d", durationMinutes)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getSlotGrid.ErrInvalidInput):
			h.logger.Warn("GET /slot-grid - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getSlotGrid.ErrCaseServiceUnavailable):
			h.logger.Error("GET /slot-grid - Case service unavailable: %v", err)
			handlers.RespondBadGateway(w, msgCaseServiceDown)

		default:
			h.logger.Error("GET /slot-grid - Failed to build grid: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slot-grid - %d slots returned for date=%s", len(result.Slots), dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
