package wizard

import "errors"

var (
	// ErrStepIncomplete возвращается, когда на текущем шаге не хватает данных для перехода вперед
	ErrStepIncomplete = errors.New("wizard: current step is incomplete")

	// ErrOperationInFlight возвращается, пока выполняется блокирующая операция текущего шага
	ErrOperationInFlight = errors.New("wizard: operation in progress")

	// ErrNotOnConfirmStep возвращается при попытке завершить запись не с последнего шага
	ErrNotOnConfirmStep = errors.New("wizard: booking can only be completed from the confirm step")

	// ErrSuperseded возвращается вызывающему, чей результат устарел: выбор изменился,
	// пока операция выполнялась, и результат отброшен
	ErrSuperseded = errors.New("wizard: result discarded, selection changed")

	// ErrSessionNotFound возвращается, когда сессия не существует или истекла
	ErrSessionNotFound = errors.New("wizard: session not found")

	// ErrTooManySessions возвращается при превышении лимита одновременных сессий
	ErrTooManySessions = errors.New("wizard: too many active sessions")
)
