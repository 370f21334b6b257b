package events

import "errors"

var (
	// ErrMarshal возвращается, если событие не удалось сериализовать
	ErrMarshal = errors.New("events: failed to marshal event")

	// ErrPublish возвращается, если брокер не принял сообщения
	ErrPublish = errors.New("events: failed to publish messages")
)
