package submit_session

import (
	submitSession "github.com/m04kA/OptiOR-SchedulingService/internal/usecase/submit_session"
)

// SubmitSessionRequest HTTP request model
type SubmitSessionRequest struct {
	Version int64 `json:"version"`
}

// SubmitSessionResponse HTTP response model
type SubmitSessionResponse struct {
	SessionID string `json:"sessionId"`
	CaseID    int64  `json:"caseId"`
	Mode      string `json:"mode"`
	State     string `json:"state"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitSessionRequest) ToUseCaseRequest(sessionID string) *submitSession.Request {
	return &submitSession.Request{
		SessionID: sessionID,
		Version:   r.Version,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitSession.Response) *SubmitSessionResponse {
	return &SubmitSessionResponse{
		SessionID: resp.SessionID,
		CaseID:    resp.CaseID,
		Mode:      resp.Mode,
		State:     resp.State,
	}
}
