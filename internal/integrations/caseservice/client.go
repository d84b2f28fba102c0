package caseservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
)

// Client клиент для работы с CaseService (хранилище кейсов и ростер хирургов)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CaseService
// transport == nil означает транспорт по умолчанию (без метрик)
func NewClient(baseURL string, timeout time.Duration, transport http.RoundTripper, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		log: log,
	}
}

// GetCases получает полный список кейсов
// Снапшот неизменяемый: один запрос к CaseService - одна консистентная
// картина занятости для всех проверок в рамках операции
func (c *Client) GetCases(ctx context.Context) ([]*domain.Case, error) {
	url := fmt.Sprintf("%s/api/cases", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var events []CaseEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	cases := make([]*domain.Case, 0, len(events))
	for i := range events {
		dc, err := events[i].ToDomainCase()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		cases = append(cases, dc)
	}

	return cases, nil
}

// GetDoctors получает ростер хирургов по специальностям
// Порядок хирургов внутри специальности сохраняется как прислал сервис
func (c *Client) GetDoctors(ctx context.Context) (map[string][]string, error) {
	url := fmt.Sprintf("%s/api/doctors", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var roster map[string][]string
	if err := json.NewDecoder(resp.Body).Decode(&roster); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return roster, nil
}

// CreateCase создает кейс и возвращает его id
func (c *Client) CreateCase(ctx context.Context, payload *CreateCaseRequest) (int64, error) {
	url := fmt.Sprintf("%s/api/cases", c.baseURL)

	resp, err := c.doJSON(ctx, http.MethodPost, url, payload)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return 0, unexpectedStatus(resp)
	}

	var created CreateCaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return 0, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("CaseService: created case id=%d", created.ID)
	return created.ID, nil
}

// UpdateCase частично обновляет кейс
func (c *Client) UpdateCase(ctx context.Context, caseID int64, payload *UpdateCaseRequest) error {
	url := fmt.Sprintf("%s/api/cases/%d", c.baseURL, caseID)

	resp, err := c.doJSON(ctx, http.MethodPut, url, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		c.log.Info("CaseService: updated case id=%d", caseID)
		return nil
	case http.StatusNotFound:
		return ErrCaseNotFound
	default:
		return unexpectedStatus(resp)
	}
}

// DeleteCase удаляет кейс
func (c *Client) DeleteCase(ctx context.Context, caseID int64) error {
	url := fmt.Sprintf("%s/api/cases/%d", c.baseURL, caseID)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		c.log.Info("CaseService: deleted case id=%d", caseID)
		return nil
	case http.StatusNotFound:
		return ErrCaseNotFound
	default:
		return unexpectedStatus(resp)
	}
}

// doJSON выполняет запрос с JSON телом
func (c *Client) doJSON(ctx context.Context, method, url string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}

	return resp, nil
}

// checkStatus валидирует статус ответа для GET запросов
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	default:
		return unexpectedStatus(resp)
	}
}

func unexpectedStatus(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}
	return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
}
