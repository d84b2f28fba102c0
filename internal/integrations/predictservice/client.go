package predictservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с PredictService (ML модель длительности операций)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента PredictService
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

// PredictSuggestion предсказывает длительность для заданного booked_time
func (c *Client) PredictSuggestion(ctx context.Context, req *SuggestionRequest) (float64, error) {
	resp, err := c.post(ctx, "/api/predict_suggestion", req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusInternalServerError:
		// Единственный 500 от этого endpoint'а - необученная модель
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("%w: %s", ErrModelNotTrained, string(body))
	default:
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var prediction PredictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return 0, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return prediction.PredictedDuration, nil
}

// PredictAverage возвращает среднюю длительность по специальности в минутах
// Вторым значением возвращается источник оценки как прислал сервис
// (пустая строка, если сервис источник не указал)
func (c *Client) PredictAverage(ctx context.Context, service, date string) (float64, string, error) {
	resp, err := c.post(ctx, "/api/predict_average", &AverageRequest{Service: service, Date: date})
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var prediction PredictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return 0, "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	source := ""
	if prediction.Source != nil {
		source = *prediction.Source
	}

	return prediction.PredictedDuration, source, nil
}

// PredictAverageWithGracefulDegradation возвращает среднюю длительность с graceful degradation
// При недоступности PredictService возвращает ErrServiceDegraded, что позволяет
// сервису подставить длительность по умолчанию вместо отказа всего диалога
func (c *Client) PredictAverageWithGracefulDegradation(ctx context.Context, service, date string) (float64, string, error) {
	c.log.Info("Fetching average duration for service=%s", service)

	minutes, source, err := c.PredictAverage(ctx, service, date)
	if err != nil {
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("PredictService unavailable, applying graceful degradation for service=%s: %v", service, err)
		return 0, "", fmt.Errorf("%w: service=%s, error=%v", ErrServiceDegraded, service, err)
	}

	c.log.Info("Successfully fetched average duration for service=%s: %.1f min (source=%s)", service, minutes, source)
	return minutes, source, nil
}

// Retrain запускает переобучение модели на актуальных данных
func (c *Client) Retrain(ctx context.Context) (*RetrainResponse, error) {
	resp, err := c.post(ctx, "/api/retrain", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result RetrainResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrTrainingFailed, result.Message)
	}

	return &result, nil
}

// post выполняет POST запрос с JSON телом (nil payload - пустое тело)
func (c *Client) post(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
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
