package predictservice

// SuggestionRequest запрос предсказания длительности для известного booked_time
type SuggestionRequest struct {
	Date       string  `json:"date"`
	Service    string  `json:"service"`
	BookedTime float64 `json:"booked_time"`
}

// AverageRequest запрос средней длительности по специальности
type AverageRequest struct {
	Service string `json:"service"`
	Date    string `json:"date,omitempty"`
}

// PredictionResponse ответ с предсказанной длительностью в минутах
// Source заполняется только endpoint'ом средней длительности
type PredictionResponse struct {
	PredictedDuration float64 `json:"predicted_duration"`
	Source            *string `json:"source,omitempty"`
}

// RetrainResponse ответ на запрос переобучения модели
type RetrainResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ErrorResponse модель ошибки от PredictService
type ErrorResponse struct {
	Error string `json:"error"`
}
