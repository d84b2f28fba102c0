package submit_session

// Request модель запроса на подтверждение сессии бронирования
type Request struct {
	SessionID string // ID сессии
	Version   int64  // Версия сессии, которую видел клиент
}

// Response модель ответа с сохраненным кейсом
type Response struct {
	SessionID string // ID сессии
	CaseID    int64  // ID сохраненного кейса
	Mode      string // Режим сессии (create / edit)
	State     string // Итоговое состояние сессии
}
