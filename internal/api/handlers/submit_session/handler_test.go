package submit_session

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	submitSession "github.com/m04kA/OptiOR-SchedulingService/internal/usecase/submit_session"
)

type mockUseCase struct {
	gotRequest *submitSession.Request
	response   *submitSession.Response
	err        error
}

func (m *mockUseCase) Execute(_ context.Context, req *submitSession.Request) (*submitSession.Response, error) {
	m.gotRequest = req
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestRouter(useCase *mockUseCase) *mux.Router {
	router := mux.NewRouter()
	handler := NewHandler(useCase, noopLogger{})
	router.HandleFunc("/api/v1/sessions/{sessionId}/submit", handler.Handle).Methods(http.MethodPost)
	return router
}

func doRequest(t *testing.T, router *mux.Router, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/sess-1/submit", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	useCase := &mockUseCase{
		response: &submitSession.Response{
			SessionID: "sess-1",
			CaseID:    42,
			Mode:      "create",
			State:     "submitted",
		},
	}
	router := newTestRouter(useCase)

	rec := doRequest(t, router, `{"version": 4}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, useCase.gotRequest)
	assert.Equal(t, "sess-1", useCase.gotRequest.SessionID)
	assert.Equal(t, int64(4), useCase.gotRequest.Version)

	var resp SubmitSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.CaseID)
	assert.Equal(t, "create", resp.Mode)
	assert.Equal(t, "submitted", resp.State)
}

func TestHandler_Handle_InvalidBody(t *testing.T) {
	router := newTestRouter(&mockUseCase{})

	rec := doRequest(t, router, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Handle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		useCaseErr error
		wantStatus int
	}{
		{"invalid input", submitSession.ErrInvalidInput, http.StatusBadRequest},
		{"session not found", submitSession.ErrSessionNotFound, http.StatusNotFound},
		{"edited case gone", submitSession.ErrCaseNotFound, http.StatusNotFound},
		{"stale version", submitSession.ErrVersionConflict, http.StatusConflict},
		{"session not ready", submitSession.ErrSessionNotReady, http.StatusConflict},
		{"slot taken", submitSession.ErrSlotTaken, http.StatusConflict},
		{"surgeon busy", submitSession.ErrSurgeonBusy, http.StatusConflict},
		{"case service down", submitSession.ErrCaseServiceUnavailable, http.StatusBadGateway},
		{"internal", submitSession.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockUseCase{err: tt.useCaseErr})

			rec := doRequest(t, router, `{"version": 4}`)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}
