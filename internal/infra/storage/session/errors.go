package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrSessionAlreadyExists возвращается при попытке создать сессию с занятым id
	ErrSessionAlreadyExists = errors.New("session.repository: session already exists")

	// ErrVersionConflict возвращается, когда мутация несет устаревшую версию сессии
	// Так отбрасываются результаты запросов, которые обогнала более новая мутация
	ErrVersionConflict = errors.New("session.repository: version conflict")
)
