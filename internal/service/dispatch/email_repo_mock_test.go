package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/aistomin/andys-backend/internal/domain"
)

var _ emailRepo = &emailRepoMock{}

type emailRepoMock struct {
	ClaimFunc         func(ctx context.Context, id int64, now time.Time, lease time.Duration) (bool, error)
	CreateFunc        func(ctx context.Context, m domain.EmailMessage) (int64, error)
	GetByIDFunc       func(ctx context.Context, id int64) (*domain.EmailMessage, error)
	MarkDeliveredFunc func(ctx context.Context, id int64, status domain.EmailStatus, info *string) (bool, error)

	calls struct {
		Claim []struct {
			Ctx   context.Context
			ID    int64
			Now   time.Time
			Lease time.Duration
		}
		Create []struct {
			Ctx context.Context
			M   domain.EmailMessage
		}
		GetByID []struct {
			Ctx context.Context
			ID  int64
		}
		MarkDelivered []struct {
			Ctx    context.Context
			ID     int64
			Status domain.EmailStatus
			Info   *string
		}
	}
	lockClaim         sync.RWMutex
	lockCreate        sync.RWMutex
	lockGetByID       sync.RWMutex
	lockMarkDelivered sync.RWMutex
}

func (mock *emailRepoMock) Claim(ctx context.Context, id int64, now time.Time, lease time.Duration) (bool, error) {
	if mock.ClaimFunc == nil {
		panic("emailRepoMock.ClaimFunc: method is nil but emailRepo.Claim was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    int64
		Now   time.Time
		Lease time.Duration
	}{Ctx: ctx, ID: id, Now: now, Lease: lease}
	mock.lockClaim.Lock()
	mock.calls.Claim = append(mock.calls.Claim, callInfo)
	mock.lockClaim.Unlock()
	return mock.ClaimFunc(ctx, id, now, lease)
}

func (mock *emailRepoMock) ClaimCalls() []struct {
	Ctx   context.Context
	ID    int64
	Now   time.Time
	Lease time.Duration
} {
	mock.lockClaim.RLock()
	calls := mock.calls.Claim
	mock.lockClaim.RUnlock()
	return calls
}

func (mock *emailRepoMock) Create(ctx context.Context, m domain.EmailMessage) (int64, error) {
	if mock.CreateFunc == nil {
		panic("emailRepoMock.CreateFunc: method is nil but emailRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		M   domain.EmailMessage
	}{Ctx: ctx, M: m}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, m)
}

func (mock *emailRepoMock) CreateCalls() []struct {
	Ctx context.Context
	M   domain.EmailMessage
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *emailRepoMock) GetByID(ctx context.Context, id int64) (*domain.EmailMessage, error) {
	if mock.GetByIDFunc == nil {
		panic("emailRepoMock.GetByIDFunc: method is nil but emailRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *emailRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *emailRepoMock) MarkDelivered(ctx context.Context, id int64, status domain.EmailStatus, info *string) (bool, error) {
	if mock.MarkDeliveredFunc == nil {
		panic("emailRepoMock.MarkDeliveredFunc: method is nil but emailRepo.MarkDelivered was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     int64
		Status domain.EmailStatus
		Info   *string
	}{Ctx: ctx, ID: id, Status: status, Info: info}
	mock.lockMarkDelivered.Lock()
	mock.calls.MarkDelivered = append(mock.calls.MarkDelivered, callInfo)
	mock.lockMarkDelivered.Unlock()
	return mock.MarkDeliveredFunc(ctx, id, status, info)
}

func (mock *emailRepoMock) MarkDeliveredCalls() []struct {
	Ctx    context.Context
	ID     int64
	Status domain.EmailStatus
	Info   *string
} {
	mock.lockMarkDelivered.RLock()
	calls := mock.calls.MarkDelivered
	mock.lockMarkDelivered.RUnlock()
	return calls
}
