package wizard

// OpState состояние асинхронной операции мастера
type OpState string

const (
	OpIdle    OpState = "idle"
	OpPending OpState = "pending"
	OpSuccess OpState = "success"
	OpFailure OpState = "failure"
)

// Op результат одной операции: значение есть только в OpSuccess, ошибка только в OpFailure
type Op[T any] struct {
	State OpState
	Value T
	Err   error
}

func idleOp[T any]() Op[T] {
	return Op[T]{State: OpIdle}
}

func pendingOp[T any]() Op[T] {
	return Op[T]{State: OpPending}
}

func successOp[T any](v T) Op[T] {
	return Op[T]{State: OpSuccess, Value: v}
}

func failureOp[T any](err error) Op[T] {
	return Op[T]{State: OpFailure, Err: err}
}

func (o Op[T]) IsPending() bool {
	return o.State == OpPending
}

func (o Op[T]) Succeeded() bool {
	return o.State == OpSuccess
}
