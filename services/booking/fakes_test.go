package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	catalogRepo "lavellh/database/repository/catalog"
	reservationRepo "lavellh/database/repository/reservation"
	"lavellh/models"

	"go.uber.org/zap"
)

// memRepo is an in-memory reservation store mirroring the mongo repository's
// guarantees, including the guarded compare-and-set.
type memRepo struct {
	mu      sync.Mutex
	records map[string]models.Reservation
}

func newMemRepo() *memRepo {
	return &memRepo{records: map[string]models.Reservation{}}
}

func (r *memRepo) Create(ctx context.Context, res *models.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[res.ID]; ok {
		return fmt.Errorf("duplicate id %s", res.ID)
	}
	r.records[res.ID] = *res
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.records[id]
	if !ok {
		return nil, reservationRepo.ErrNotFound
	}
	out := res
	return &out, nil
}

func (r *memRepo) ListByUser(ctx context.Context, userID string, f models.ListFilter) ([]models.Reservation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Reservation
	for _, res := range r.records {
		if res.UserID != userID {
			continue
		}
		if f.Kind != "" && res.Kind != f.Kind {
			continue
		}
		if f.Status != "" && res.Status != f.Status {
			continue
		}
		out = append(out, res)
	}
	return out, int64(len(out)), nil
}

func (r *memRepo) ListByProvider(ctx context.Context, providerID string, f models.ListFilter) ([]models.Reservation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Reservation
	for _, res := range r.records {
		if res.ProviderID != providerID {
			continue
		}
		if f.Kind != "" && res.Kind != f.Kind {
			continue
		}
		if f.Status != "" && res.Status != f.Status {
			continue
		}
		out = append(out, res)
	}
	return out, int64(len(out)), nil
}

func (r *memRepo) FindLiveAppointments(ctx context.Context, serviceID, date, excludeID string) ([]models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Reservation
	for _, res := range r.records {
		if res.Kind != models.KindAppointment || res.ServiceID != serviceID || res.AppointmentDate != date {
			continue
		}
		if excludeID != "" && res.ID == excludeID {
			continue
		}
		if !res.Status.IsLive() {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (r *memRepo) Update(ctx context.Context, res *models.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[res.ID]; !ok {
		return reservationRepo.ErrNotFound
	}
	r.records[res.ID] = *res
	return nil
}

func (r *memRepo) UpdateGuarded(ctx context.Context, res *models.Reservation, allowedFrom ...models.ReservationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.records[res.ID]
	if !ok {
		return reservationRepo.ErrNotFound
	}
	for _, from := range allowedFrom {
		if stored.Status == from {
			r.records[res.ID] = *res
			return nil
		}
	}
	return reservationRepo.ErrStaleStatus
}

func (r *memRepo) SetReview(ctx context.Context, id string, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.records[id]
	if !ok {
		return reservationRepo.ErrNotFound
	}
	if stored.Status != models.StatusCompleted || stored.Review != nil {
		return reservationRepo.ErrStaleStatus
	}
	stored.Review = review
	r.records[id] = stored
	return nil
}

func (r *memRepo) AggregateServiceRating(ctx context.Context, serviceID string) (float64, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum, count int
	for _, res := range r.records {
		if res.ServiceID != serviceID || res.Review == nil {
			continue
		}
		if res.Review.ModerationStatus != models.ModerationActive {
			continue
		}
		sum += res.Review.Rating
		count++
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

// memCatalog serves listings from a map and records rating write-backs.
type memCatalog struct {
	listings        map[string]models.Listing
	users           map[string]bool
	listingRating   float64
	listingReviews  int
	providerRating  float64
	providerReviews int
}

func newMemCatalog(listings ...models.Listing) *memCatalog {
	c := &memCatalog{
		listings: map[string]models.Listing{},
		users:    map[string]bool{"user-1": true, "user-2": true},
	}
	for _, l := range listings {
		c.listings[l.ID] = l
	}
	return c
}

func (c *memCatalog) GetListingByID(ctx context.Context, listingID string) (*models.Listing, error) {
	l, ok := c.listings[listingID]
	if !ok {
		return nil, fmt.Errorf("lookup %s: %w", listingID, catalogRepo.ErrListingNotFound)
	}
	out := l
	return &out, nil
}

func (c *memCatalog) UserExists(ctx context.Context, userID string) (bool, error) {
	return c.users[userID], nil
}

func (c *memCatalog) UpdateListingRating(ctx context.Context, listingID string, rating float64, totalReviews int) error {
	c.listingRating = rating
	c.listingReviews = totalReviews
	return nil
}

func (c *memCatalog) UpdateProviderRating(ctx context.Context, providerID string, rating float64, totalReviews int) error {
	c.providerRating = rating
	c.providerReviews = totalReviews
	return nil
}

// fakeProcessor hands out deterministic intents and lets tests script the
// reported status and injected failures.
type fakeProcessor struct {
	mu          sync.Mutex
	createErr   error
	retrieveErr error
	// transientOnce makes the next retrieve fail once, then succeed.
	transientOnce bool
	statuses      map[string]string
	intents       map[string]models.Amount
	createCalls   int
}

func newFakeProcessor() *fakeProcessor {
	return &fakeProcessor{
		statuses: map[string]string{},
		intents:  map[string]models.Amount{},
	}
}

func (p *fakeProcessor) setStatus(intentID, status string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statuses[intentID] = status
}

func (p *fakeProcessor) CreateIntent(ctx context.Context, amount models.Amount, currency, idempotencyKey string, metadata map[string]string) (*models.PaymentIntent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.createErr != nil {
		return nil, p.createErr
	}
	p.createCalls++
	id := "pi_" + idempotencyKey
	if _, ok := p.intents[id]; !ok {
		p.intents[id] = amount
		p.statuses[id] = models.IntentRequiresPaymentMethod
	}
	return &models.PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret",
		Status:       p.statuses[id],
		Amount:       p.intents[id],
	}, nil
}

func (p *fakeProcessor) RetrieveIntent(ctx context.Context, id string) (*models.PaymentIntent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.transientOnce {
		p.transientOnce = false
		return nil, newTransient("connection reset")
	}
	if p.retrieveErr != nil {
		return nil, p.retrieveErr
	}
	amount, ok := p.intents[id]
	if !ok {
		return nil, newProcessorError("no such intent %s", id)
	}
	return &models.PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret",
		Status:       p.statuses[id],
		Amount:       amount,
	}, nil
}

func (p *fakeProcessor) CancelIntent(ctx context.Context, id string) (*models.PaymentIntent, error) {
	p.setStatus(id, models.IntentCanceled)
	return p.RetrieveIntent(ctx, id)
}

// passLock runs the critical section inline.
type passLock struct{}

func (passLock) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// mutexLockManager serialises critical sections with a process-local mutex,
// standing in for the redis advisory lock in concurrency tests.
type mutexLockManager struct {
	mu sync.Mutex
}

func (m *mutexLockManager) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// recordingTasks captures scheduled work instead of enqueuing it.
type recordingTasks struct {
	autoStarts   []string
	dueReminders []string
	autoStartAt  time.Time
}

func (t *recordingTasks) ScheduleAutoStart(reservationID string, at time.Time) error {
	t.autoStarts = append(t.autoStarts, reservationID)
	t.autoStartAt = at
	return nil
}

func (t *recordingTasks) ScheduleDueReminder(reservationID string, at time.Time) error {
	t.dueReminders = append(t.dueReminders, reservationID)
	return nil
}

func newTestService(repo *memRepo, catalog *memCatalog, proc *fakeProcessor) (*DefaultReservationService, *recordingTasks) {
	tasks := &recordingTasks{}
	svc := &DefaultReservationService{
		Repo:     repo,
		Catalog:  catalog,
		Payments: NewPaymentCoordinator(zap.NewNop(), proc, "usd"),
		Detector: &ConflictDetector{Repo: repo},
		Locks:    passLock{},
		Tasks:    tasks,
		Logger:   zap.NewNop(),
	}
	return svc, tasks
}

func bookingListing() models.Listing {
	return models.Listing{
		ID:         "svc-cleaning",
		ProviderID: "prov-1",
		Name:       "Deep Cleaning",
		CategoryID: "cat-home",
		BasePrice:  10000,
		IsActive:   true,
	}
}

func appointmentListing() models.Listing {
	return models.Listing{
		ID:                 "svc-salon",
		ProviderID:         "prov-1",
		Name:               "Hair Salon",
		CategoryID:         "cat-beauty",
		BasePrice:          4000,
		AppointmentEnabled: true,
		IsActive:           true,
		SlotTemplates: []models.SlotTemplate{
			{ID: "slot-30", Duration: 30, DurationUnit: "minutes", Price: 10000},
			{ID: "slot-60", Duration: 1, DurationUnit: "hours", Price: 18000},
		},
	}
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}
