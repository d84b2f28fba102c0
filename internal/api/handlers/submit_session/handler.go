package submit_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers"
	submitSession "github.com/m04kA/OptiOR-SchedulingService/internal/usecase/submit_session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные запроса"
	msgSessionNotFound    = "сессия не найдена или истекла"
	msgCaseNotFound       = "редактируемый кейс не найден"
	msgVersionConflict    = "сессия изменилась, обновите диалог"
	msgSessionNotReady    = "в сессии не выбраны длительность, слот или хирург"
	msgSlotTaken          = "слот уже занят, выберите другой"
	msgSurgeonBusy        = "хирург занят в этом интервале"
	msgCaseServiceDown    = "сервис кейсов недоступен"
)

type Handler struct {
	useCase SubmitSessionUseCase
	logger  Logger
}

func NewHandler(useCase SubmitSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/submit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	var req SubmitSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/submit - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(sessionID))
	if err != nil {
		switch {
		case errors.Is(err, submitSession.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/submit - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, submitSession.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/submit - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, submitSession.ErrCaseNotFound):
			h.logger.Warn("POST /sessions/{id}/submit - Edited case disappeared: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgCaseNotFound)

		case errors.Is(err, submitSession.ErrVersionConflict):
			h.logger.Warn("POST /sessions/{id}/submit - Stale version %d: session_id=%s", req.Version, sessionID)
			handlers.RespondConflict(w, msgVersionConflict)

		case errors.Is(err, submitSession.ErrSessionNotReady):
			h.logger.Warn("POST /sessions/{id}/submit - Session not ready: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSessionNotReady)

		case errors.Is(err, submitSession.ErrSlotTaken):
			h.logger.Warn("POST /sessions/{id}/submit - Slot taken on final check: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, submitSession.ErrSurgeonBusy):
			h.logger.Warn("POST /sessions/{id}/submit - Surgeon busy on final check: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSurgeonBusy)

		case errors.Is(err, submitSession.ErrCaseServiceUnavailable):
			h.logger.Error("POST /sessions/{id}/submit - Case service unavailable: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadGateway(w, msgCaseServiceDown)

		default:
			h.logger.Error("POST /sessions/{id}/submit - Failed to submit session: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/submit - Session submitted: session_id=%s, case_id=%d, mode=%s",
		sessionID, result.CaseID, result.Mode)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
