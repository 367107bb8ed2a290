//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"toni/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker runs until its context ends. Returning an error or panicking
// gets it restarted by the supervisor; returning nil ends it for good.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName is the worker's type name, used in logs and metrics.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// Publisher hands an event over without waiting for it to be applied.
type Publisher interface {
	Publish(e event.DomainEvent)
}
