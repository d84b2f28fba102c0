package models

// Request модели

// PredictDurationRequest запрос разовой оценки длительности операции
type PredictDurationRequest struct {
	Date       string   `json:"date"`
	Specialty  string   `json:"specialty"`
	BookedTime *float64 `json:"bookedTime,omitempty"`
}

// Response модели

// PredictDurationResponse оценка длительности операции
// OverrunMinutes - превышение оценки над заявленным временем (присутствует,
// только когда заявленное время передано; отрицательное значение - операция
// по оценке закончится раньше заявленного)
type PredictDurationResponse struct {
	PredictedMinutes int    `json:"predictedMinutes"`
	Source           string `json:"source"`
	OverrunMinutes   *int   `json:"overrunMinutes,omitempty"`
}

// AnalyticsStatus сводка загрузки операционных за период
type AnalyticsStatus struct {
	TotalCases  int     `json:"totalCases"`
	AvgDuration float64 `json:"avgDuration"`
	Utilization string  `json:"utilization"`
}

// AnalyticsResponse агрегаты по кейсам за период
// Счётчики строятся по кейсам с зафиксированной длительностью; сводка
// Status - по всем кейсам периода
type AnalyticsResponse struct {
	Period                 string             `json:"period"`
	SpecialtyCounts        map[string]int     `json:"specialtyCounts"`
	RoomCounts             map[string]int     `json:"roomCounts"`
	SurgeonCounts          map[string]int     `json:"surgeonCounts"`
	AvgDurationBySpecialty map[string]float64 `json:"avgDurationBySpecialty"`
	Status                 AnalyticsStatus    `json:"status"`
}

// RetrainResponse результат переобучения модели
type RetrainResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
