package dispatch

import (
	"context"
	"sync"

	"github.com/aistomin/andys-backend/internal/adapter/mailer"
)

var _ deliverer = &delivererMock{}

type delivererMock struct {
	DeliverFunc func(ctx context.Context, env mailer.Envelope) error

	calls struct {
		Deliver []struct {
			Ctx context.Context
			Env mailer.Envelope
		}
	}
	lockDeliver sync.RWMutex
}

func (mock *delivererMock) Deliver(ctx context.Context, env mailer.Envelope) error {
	if mock.DeliverFunc == nil {
		panic("delivererMock.DeliverFunc: method is nil but deliverer.Deliver was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Env mailer.Envelope
	}{Ctx: ctx, Env: env}
	mock.lockDeliver.Lock()
	mock.calls.Deliver = append(mock.calls.Deliver, callInfo)
	mock.lockDeliver.Unlock()
	return mock.DeliverFunc(ctx, env)
}

func (mock *delivererMock) DeliverCalls() []struct {
	Ctx context.Context
	Env mailer.Envelope
} {
	mock.lockDeliver.RLock()
	calls := mock.calls.Deliver
	mock.lockDeliver.RUnlock()
	return calls
}
