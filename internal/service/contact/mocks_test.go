package contact

import (
	"context"
	"sync"
	"time"

	"github.com/aistomin/andys-backend/internal/domain"
	"github.com/aistomin/andys-backend/internal/service/dispatch"
)

var (
	_ personRepo = &personRepoMock{}
	_ emailRepo  = &emailRepoMock{}
	_ sender     = &senderMock{}
)

type personRepoMock struct {
	GetByEmailFunc    func(ctx context.Context, email string) (*domain.Person, error)
	CreateFunc        func(ctx context.Context, p domain.Person) (*domain.Person, error)
	UpdateConsentFunc func(ctx context.Context, id int64, allow bool) (*domain.Person, error)

	calls struct {
		GetByEmail []struct {
			Ctx   context.Context
			Email string
		}
		Create []struct {
			Ctx context.Context
			P   domain.Person
		}
		UpdateConsent []struct {
			Ctx   context.Context
			ID    int64
			Allow bool
		}
	}
	lockGetByEmail    sync.RWMutex
	lockCreate        sync.RWMutex
	lockUpdateConsent sync.RWMutex
}

func (mock *personRepoMock) GetByEmail(ctx context.Context, email string) (*domain.Person, error) {
	if mock.GetByEmailFunc == nil {
		panic("personRepoMock.GetByEmailFunc: method is nil but personRepo.GetByEmail was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Email string
	}{Ctx: ctx, Email: email}
	mock.lockGetByEmail.Lock()
	mock.calls.GetByEmail = append(mock.calls.GetByEmail, callInfo)
	mock.lockGetByEmail.Unlock()
	return mock.GetByEmailFunc(ctx, email)
}

func (mock *personRepoMock) GetByEmailCalls() []struct {
	Ctx   context.Context
	Email string
} {
	mock.lockGetByEmail.RLock()
	calls := mock.calls.GetByEmail
	mock.lockGetByEmail.RUnlock()
	return calls
}

func (mock *personRepoMock) Create(ctx context.Context, p domain.Person) (*domain.Person, error) {
	if mock.CreateFunc == nil {
		panic("personRepoMock.CreateFunc: method is nil but personRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.Person
	}{Ctx: ctx, P: p}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, p)
}

func (mock *personRepoMock) CreateCalls() []struct {
	Ctx context.Context
	P   domain.Person
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *personRepoMock) UpdateConsent(ctx context.Context, id int64, allow bool) (*domain.Person, error) {
	if mock.UpdateConsentFunc == nil {
		panic("personRepoMock.UpdateConsentFunc: method is nil but personRepo.UpdateConsent was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    int64
		Allow bool
	}{Ctx: ctx, ID: id, Allow: allow}
	mock.lockUpdateConsent.Lock()
	mock.calls.UpdateConsent = append(mock.calls.UpdateConsent, callInfo)
	mock.lockUpdateConsent.Unlock()
	return mock.UpdateConsentFunc(ctx, id, allow)
}

func (mock *personRepoMock) UpdateConsentCalls() []struct {
	Ctx   context.Context
	ID    int64
	Allow bool
} {
	mock.lockUpdateConsent.RLock()
	calls := mock.calls.UpdateConsent
	mock.lockUpdateConsent.RUnlock()
	return calls
}

type emailRepoMock struct {
	CountDuplicatesFunc func(ctx context.Context, dispatcherID, receptorID int64, subject, body string, since time.Time) (int, error)

	calls struct {
		CountDuplicates []struct {
			Ctx          context.Context
			DispatcherID int64
			ReceptorID   int64
			Subject      string
			Body         string
			Since        time.Time
		}
	}
	lockCountDuplicates sync.RWMutex
}

func (mock *emailRepoMock) CountDuplicates(ctx context.Context, dispatcherID, receptorID int64, subject, body string, since time.Time) (int, error) {
	if mock.CountDuplicatesFunc == nil {
		panic("emailRepoMock.CountDuplicatesFunc: method is nil but emailRepo.CountDuplicates was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		DispatcherID int64
		ReceptorID   int64
		Subject      string
		Body         string
		Since        time.Time
	}{Ctx: ctx, DispatcherID: dispatcherID, ReceptorID: receptorID, Subject: subject, Body: body, Since: since}
	mock.lockCountDuplicates.Lock()
	mock.calls.CountDuplicates = append(mock.calls.CountDuplicates, callInfo)
	mock.lockCountDuplicates.Unlock()
	return mock.CountDuplicatesFunc(ctx, dispatcherID, receptorID, subject, body, since)
}

func (mock *emailRepoMock) CountDuplicatesCalls() []struct {
	Ctx          context.Context
	DispatcherID int64
	ReceptorID   int64
	Subject      string
	Body         string
	Since        time.Time
} {
	mock.lockCountDuplicates.RLock()
	calls := mock.calls.CountDuplicates
	mock.lockCountDuplicates.RUnlock()
	return calls
}

type senderMock struct {
	SendFunc func(ctx context.Context, input dispatch.SendInput) (*domain.EmailMessage, error)

	calls struct {
		Send []struct {
			Ctx   context.Context
			Input dispatch.SendInput
		}
	}
	lockSend sync.RWMutex
}

func (mock *senderMock) Send(ctx context.Context, input dispatch.SendInput) (*domain.EmailMessage, error) {
	if mock.SendFunc == nil {
		panic("senderMock.SendFunc: method is nil but sender.Send was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input dispatch.SendInput
	}{Ctx: ctx, Input: input}
	mock.lockSend.Lock()
	mock.calls.Send = append(mock.calls.Send, callInfo)
	mock.lockSend.Unlock()
	return mock.SendFunc(ctx, input)
}

func (mock *senderMock) SendCalls() []struct {
	Ctx   context.Context
	Input dispatch.SendInput
} {
	mock.lockSend.RLock()
	calls := mock.calls.Send
	mock.lockSend.RUnlock()
	return calls
}
