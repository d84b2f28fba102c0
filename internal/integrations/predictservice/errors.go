package predictservice

import "errors"

var (
	// ErrModelNotTrained возвращается, когда у PredictService еще нет обученной модели
	ErrModelNotTrained = errors.New("predictservice client: model not trained")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("predictservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("predictservice client: invalid response")

	// ErrUnavailable возвращается, когда PredictService недоступен
	ErrUnavailable = errors.New("predictservice client: service unavailable")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что PredictService недоступен и следует использовать
	// длительность по умолчанию
	ErrServiceDegraded = errors.New("predictservice unavailable: graceful degradation applied")

	// ErrTrainingFailed возвращается, когда PredictService не смог переобучить модель
	ErrTrainingFailed = errors.New("predictservice client: training failed")
)
