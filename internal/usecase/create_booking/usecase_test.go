package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PartyVenue-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PartyVenue-BookingService/internal/infra/storage/storagetest"
	"github.com/m04kA/PartyVenue-BookingService/pkg/keylock"
	"github.com/m04kA/PartyVenue-BookingService/pkg/logger"
	"github.com/m04kA/PartyVenue-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/PartyVenue-BookingService/pkg/ptr"
	"github.com/m04kA/PartyVenue-BookingService/pkg/txmanager"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type recordedMetrics struct {
	mu       sync.Mutex
	created  []int
	rejected []string
}

func (m *recordedMetrics) RecordBookingCreated(_ string, area int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, area)
}

func (m *recordedMetrics) RecordAllocationRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected = append(m.rejected, reason)
}

type testEnv struct {
	uc      *UseCase
	repo    *bookingRepo.Repository
	metrics *recordedMetrics
}

func newTestEnv(t *testing.T, policy domain.AllocationPolicy) *testEnv {
	t.Helper()

	db := storagetest.NewSQLite(t)
	repo := bookingRepo.NewRepository(db, psqlbuilder.New(psqlbuilder.DialectSQLite))
	m := &recordedMetrics{}

	uc := NewUseCase(
		repo,
		domain.DefaultSlotCalendar(),
		keylock.New(),
		txmanager.NewTransactionManager(db),
		policy,
		m,
		logger.NewNop(),
	)
	uc.timeProvider = fixedTime{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}

	return &testEnv{uc: uc, repo: repo, metrics: m}
}

func (e *testEnv) occupancy(t *testing.T, date string, slot domain.SlotCode) int {
	t.Helper()
	d, err := domain.ParseDate(date)
	require.NoError(t, err)
	n, err := e.repo.CountBySlot(context.Background(), d, slot)
	require.NoError(t, err)
	return n
}

func newRequest(date, slot string, confirmed bool) *Request {
	return &Request{
		EventDate:         date,
		SlotCode:          slot,
		OverflowConfirmed: confirmed,
		Details: domain.PartyDetails{
			CelebrantName: "Leo",
			ChildrenCount: 10,
			AdultsCount:   5,
			Package:       string(domain.PackageDIY),
			Extras:        []string{"popcorn"},
		},
	}
}

func TestUseCase_AreaDerivation(t *testing.T) {
	env := newTestEnv(t, domain.AllocationPolicy{})
	ctx := context.Background()

	first, err := env.uc.Execute(ctx, newRequest("2024-06-08", "AFTERNOON", false))
	require.NoError(t, err)
	assert.Equal(t, 1, first.Area)
	assert.Equal(t, 0, first.Occupancy)
	assert.False(t, first.Overflow)

	second, err := env.uc.Execute(ctx, newRequest("2024-06-08", "AFTERNOON", false))
	require.NoError(t, err)
	assert.Equal(t, 2, second.Area)

	third, err := env.uc.Execute(ctx, newRequest("2024-06-08", "AFTERNOON", true))
	require.NoError(t, err)
	assert.Equal(t, 3, third.Area)
	assert.Equal(t, 2, third.Occupancy)
	assert.True(t, third.Overflow)

	// без жесткого лимита все следующие бронирования попадают в зону 3
	fourth, err := env.uc.Execute(ctx, newRequest("2024-06-08", "AFTERNOON", true))
	require.NoError(t, err)
	assert.Equal(t, 3, fourth.Area)

	assert.Equal(t, []int{1, 2, 3, 3}, env.metrics.created)
}

func TestUseCase_CopiesSlotAndPayload(t *testing.T) {
	env := newTestEnv(t, domain.AllocationPolicy{})

	resp, err := env.uc.Execute(context.Background(), newRequest("2024-06-08", " morning ", false))
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, domain.SlotMorning, resp.SlotCode)
	assert.Equal(t, "morning", resp.SlotLabel)
	assert.Equal(t, "09:30", resp.StartTime.String())
	assert.Equal(t, "12:30", resp.EndTime.String())
	assert.Equal(t, "2024-06-08", resp.EventDate.Format(domain.DateFormat))
	assert.Equal(t, "Leo", resp.Details.CelebrantName)
	assert.Equal(t, []string{"popcorn"}, resp.Details.Extras)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), resp.CreatedAt)

	stored, err := env.repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:30", stored.StartTime.String())
	assert.Equal(t, "Leo", stored.Details.CelebrantName)
}

func TestUseCase_OverflowNotConfirmed(t *testing.T) {
	env := newTestEnv(t, domain.AllocationPolicy{})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := env.uc.Execute(ctx, newRequest("2024-06-08", "AFTERNOON", false))
		require.NoError(t, err)
	}

	_, err := env.uc.Execute(ctx, newRequest("2024-06-08", "AFTERNOON", false))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOverflowNotConfirmed)

	var allocErr *AllocationError
	require.True(t, errors.As(err, &allocErr))
	assert.Equal(t, 2, allocErr.Occupancy)
	assert.Equal(t, domain.NormalCapacity, allocErr.Capacity)

	assert.Equal(t, 2, env.occupancy(t, "2024-06-08", domain.SlotAfternoon))
	assert.Equal(t, []string{reasonOverflowNotConfirmed}, env.metrics.rejected)
}

func TestUseCase_InvalidSlot(t *testing.T) {
	tests := []struct {
		name string
		date string
		slot string
	}{
		{name: "morning on monday", date: "2024-06-03", slot: "MORNING"},
		{name: "unknown slot", date: "2024-06-08", slot: "NIGHT"},
		{name: "malformed date", date: "03.06.2024", slot: "AFTERNOON"},
		{name: "impossible date", date: "2024-02-30", slot: "AFTERNOON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, domain.AllocationPolicy{})

			_, err := env.uc.Execute(context.Background(), newRequest(tt.date, tt.slot, true))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSlot)

			var allocErr *AllocationError
			require.True(t, errors.As(err, &allocErr))
			assert.Zero(t, allocErr.Occupancy)
		})
	}
}

func TestUseCase_InvalidSlotDoesNotInsert(t *testing.T) {
	env := newTestEnv(t, domain.AllocationPolicy{})

	_, err := env.uc.Execute(context.Background(), newRequest("2024-06-03", "MORNING", false))
	require.ErrorIs(t, err, ErrInvalidSlot)

	assert.Zero(t, env.occupancy(t, "2024-06-03", domain.SlotMorning))
	assert.Zero(t, env.occupancy(t, "2024-06-03", domain.SlotAfternoon))
}

func TestUseCase_InvalidInput(t *testing.T) {
	env := newTestEnv(t, domain.AllocationPolicy{})

	_, err := env.uc.Execute(context.Background(), &Request{SlotCode: "AFTERNOON"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.uc.Execute(context.Background(), &Request{EventDate: "2024-06-08"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	req := newRequest("2024-06-08", "AFTERNOON", false)
	long := make([]byte, domain.MaxIdempotencyKeyLength+1)
	for i := range long {
		long[i] = 'k'
	}
	req.IdempotencyKey = ptr.Ptr(string(long))
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_DeleteDoesNotRenumber(t *testing.T) {
	env := newTestEnv(t, domain.AllocationPolicy{})
	ctx := context.Background()

	first, err := env.uc.Execute(ctx, newRequest("2024-06-08", "AFTERNOON", false))
	require.NoError(t, err)
	_, err = env.uc.Execute(ctx, newRequest("2024-06-08", "AFTERNOON", false))
	require.NoError(t, err)

	require.NoError(t, env.repo.Delete(ctx, first.ID))

	next, err := env.uc.Execute(ctx, newRequest("2024-06-08", "AFTERNOON", false))
	require.NoError(t, err)
	assert.Equal(t, 2, next.Area)
	assert.Equal(t, 1, next.Occupancy)
}

func TestUseCase_HardCap(t *testing.T) {
	env := newTestEnv(t, domain.AllocationPolicy{HardCap: 3})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := env.uc.Execute(ctx, newRequest("2024-06-08", "AFTERNOON", true))
		require.NoError(t, err)
	}

	_, err := env.uc.Execute(ctx, newRequest("2024-06-08", "AFTERNOON", true))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotFull)

	var allocErr *AllocationError
	require.True(t, errors.As(err, &allocErr))
	assert.Equal(t, 3, allocErr.Occupancy)

	assert.Equal(t, 3, env.occupancy(t, "2024-06-08", domain.SlotAfternoon))
}

func TestUseCase_IdempotencyKey(t *testing.T) {
	env := newTestEnv(t, domain.AllocationPolicy{})
	ctx := context.Background()

	req := newRequest("2024-06-08", "AFTERNOON", false)
	req.IdempotencyKey = ptr.Ptr("form-42")

	first, err := env.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.Replayed)

	retry := newRequest("2024-06-08", "AFTERNOON", false)
	retry.IdempotencyKey = ptr.Ptr("  form-42 ")

	second, err := env.uc.Execute(ctx, retry)
	require.NoError(t, err)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Area, second.Area)

	assert.Equal(t, 1, env.occupancy(t, "2024-06-08", domain.SlotAfternoon))
	assert.Equal(t, []int{1}, env.metrics.created)
}

func TestUseCase_IdempotencyReplayIgnoresOverflow(t *testing.T) {
	env := newTestEnv(t, domain.AllocationPolicy{})
	ctx := context.Background()

	keyed := newRequest("2024-06-08", "AFTERNOON", false)
	keyed.IdempotencyKey = ptr.Ptr("k1")
	first, err := env.uc.Execute(ctx, keyed)
	require.NoError(t, err)

	_, err = env.uc.Execute(ctx, newRequest("2024-06-08", "AFTERNOON", false))
	require.NoError(t, err)

	// слот заполнен, но повтор с тем же ключом возвращает исходное бронирование
	replay := newRequest("2024-06-08", "AFTERNOON", false)
	replay.IdempotencyKey = ptr.Ptr("k1")
	again, err := env.uc.Execute(ctx, replay)
	require.NoError(t, err)
	assert.True(t, again.Replayed)
	assert.Equal(t, first.ID, again.ID)
}

func TestUseCase_ConcurrentCreatesSamePair(t *testing.T) {
	env := newTestEnv(t, domain.AllocationPolicy{})
	ctx := context.Background()

	const workers = 8

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		areas []int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := env.uc.Execute(ctx, newRequest("2024-06-08", "AFTERNOON", true))
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			areas = append(areas, resp.Area)
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, areas, workers)

	counts := make(map[int]int)
	for _, a := range areas {
		counts[a]++
	}
	assert.Equal(t, 1, counts[1])
	assert.Equal(t, 1, counts[2])
	assert.Equal(t, workers-2, counts[3])
}

func TestUseCase_ConcurrentCreatesDifferentPairs(t *testing.T) {
	env := newTestEnv(t, domain.AllocationPolicy{})
	ctx := context.Background()

	dates := []string{"2024-06-08", "2024-06-09", "2024-06-10", "2024-06-11"}

	var wg sync.WaitGroup
	for _, date := range dates {
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(date string) {
				defer wg.Done()
				_, err := env.uc.Execute(ctx, newRequest(date, "AFTERNOON", false))
				assert.NoError(t, err)
			}(date)
		}
	}
	wg.Wait()

	for _, date := range dates {
		assert.Equal(t, 2, env.occupancy(t, date, domain.SlotAfternoon), date)
	}
}

// Проверки на фейках: порядок шагов и обработка ошибок хранилища

type fakeRepo struct {
	lockErr   error
	countErr  error
	createErr error
	count     int
	calls     []string
}

func (f *fakeRepo) LockSlot(context.Context, time.Time, domain.SlotCode) error {
	f.calls = append(f.calls, "lock")
	return f.lockErr
}

func (f *fakeRepo) GetByIdempotencyKey(context.Context, time.Time, domain.SlotCode, string) (*domain.Booking, error) {
	f.calls = append(f.calls, "key")
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeRepo) CountBySlot(context.Context, time.Time, domain.SlotCode) (int, error) {
	f.calls = append(f.calls, "count")
	return f.count, f.countErr
}

func (f *fakeRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.calls = append(f.calls, "create")
	if f.createErr != nil {
		return nil, f.createErr
	}
	b.ID = 7
	return b, nil
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type failingLocker struct{}

func (failingLocker) Lock(ctx context.Context, _ string) (func(), error) {
	return nil, context.DeadlineExceeded
}

func newFakeUseCase(repo *fakeRepo, locker SlotLocker) *UseCase {
	return NewUseCase(repo, domain.DefaultSlotCalendar(), locker, inlineTx{},
		domain.AllocationPolicy{}, nil, logger.NewNop())
}

func TestUseCase_StepOrder(t *testing.T) {
	repo := &fakeRepo{count: 1}
	uc := newFakeUseCase(repo, keylock.New())

	req := newRequest("2024-06-08", "AFTERNOON", false)
	req.IdempotencyKey = ptr.Ptr("abc")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, 2, resp.Area)
	assert.Equal(t, []string{"lock", "key", "count", "create"}, repo.calls)
}

func TestUseCase_StorageErrors(t *testing.T) {
	boom := errors.New("connection reset")

	tests := []struct {
		name  string
		repo  *fakeRepo
		calls []string
	}{
		{name: "lock", repo: &fakeRepo{lockErr: boom}, calls: []string{"lock"}},
		{name: "count", repo: &fakeRepo{countErr: boom}, calls: []string{"lock", "count"}},
		{name: "create", repo: &fakeRepo{createErr: boom}, calls: []string{"lock", "count", "create"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newFakeUseCase(tt.repo, keylock.New())

			_, err := uc.Execute(context.Background(), newRequest("2024-06-08", "AFTERNOON", false))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInternal)
			assert.Equal(t, tt.calls, tt.repo.calls)
		})
	}
}

func TestUseCase_LockTimeout(t *testing.T) {
	repo := &fakeRepo{}
	uc := newFakeUseCase(repo, failingLocker{})

	_, err := uc.Execute(context.Background(), newRequest("2024-06-08", "AFTERNOON", false))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, repo.calls)
}
