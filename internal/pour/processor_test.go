package pour

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kegworks/taproom-backend/internal/bac"
	"github.com/kegworks/taproom-backend/internal/binge"
	"github.com/kegworks/taproom-backend/internal/drinks"
	"github.com/kegworks/taproom-backend/internal/grants"
	"github.com/kegworks/taproom-backend/internal/kegs"
	"github.com/kegworks/taproom-backend/internal/policy"
	"github.com/kegworks/taproom-backend/internal/users"
	"github.com/kegworks/taproom-backend/pkg/db/models"
	"github.com/kegworks/taproom-backend/pkg/enums"
	pkgerrors "github.com/kegworks/taproom-backend/pkg/errors"
	"github.com/kegworks/taproom-backend/pkg/locks"
	"github.com/kegworks/taproom-backend/pkg/metrics"
)

var testNow = time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

// nopTx runs the function directly. Rollback semantics live in pkg/db and
// are covered there; these tests assert the pipeline and its error paths.
type nopTx struct{}

func (nopTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// One store backs every repository fake so a single mutex guards it all.
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*models.User
	kegs     map[uuid.UUID]*models.Keg
	drinks   map[uuid.UUID]*models.Drink
	grants   map[uuid.UUID]*models.Grant
	policies map[uuid.UUID]*models.Policy
	charges  []models.GrantCharge
	bacs     []models.BAC
	binges   []models.Binge
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uuid.UUID]*models.User),
		kegs:     make(map[uuid.UUID]*models.Keg),
		drinks:   make(map[uuid.UUID]*models.Drink),
		grants:   make(map[uuid.UUID]*models.Grant),
		policies: make(map[uuid.UUID]*models.Policy),
	}
}

type memUsers struct{ s *memStore }

func (m memUsers) WithTx(tx *gorm.DB) users.Repository { return m }
func (m memUsers) Create(ctx context.Context, u *models.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	cp := *u
	m.s.users[u.ID] = &cp
	return nil
}
func (m memUsers) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	u, ok := m.s.users[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	cp := *u
	return &cp, nil
}
func (m memUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
}
func (m memUsers) List(ctx context.Context) ([]models.User, error) { return nil, nil }
func (m memUsers) Save(ctx context.Context, u *models.User) error { return nil }

type memKegs struct{ s *memStore }

func (m memKegs) WithTx(tx *gorm.DB) kegs.Repository { return m }
func (m memKegs) Create(ctx context.Context, k *models.Keg) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	cp := *k
	m.s.kegs[k.ID] = &cp
	return nil
}
func (m memKegs) FindByID(ctx context.Context, id uuid.UUID) (*models.Keg, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	k, ok := m.s.kegs[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "keg not found")
	}
	cp := *k
	return &cp, nil
}
func (m memKegs) List(ctx context.Context) ([]models.Keg, error) { return nil, nil }
func (m memKegs) ListByStatus(ctx context.Context, status enums.KegStatus) ([]models.Keg, error) {
	return nil, nil
}
func (m memKegs) Save(ctx context.Context, k *models.Keg) error { return nil }

type memDrinks struct{ s *memStore }

func (m memDrinks) WithTx(tx *gorm.DB) drinks.Repository { return m }
func (m memDrinks) Create(ctx context.Context, d *models.Drink) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	cp := *d
	m.s.drinks[d.ID] = &cp
	return nil
}
func (m memDrinks) FindByID(ctx context.Context, id uuid.UUID) (*models.Drink, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	d, ok := m.s.drinks[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "drink not found")
	}
	cp := *d
	return &cp, nil
}
func (m memDrinks) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.DrinkStatus) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	d, ok := m.s.drinks[id]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "drink not found")
	}
	d.Status = status
	return nil
}
func (m memDrinks) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Drink, error) {
	return nil, nil
}
func (m memDrinks) ListByKeg(ctx context.Context, kegID uuid.UUID, limit int) ([]models.Drink, error) {
	return nil, nil
}
func (m memDrinks) PouredVolumeByKeg(ctx context.Context, kegID uuid.UUID) (int64, error) {
	return 0, nil
}

type memGrants struct{ s *memStore }

func (m memGrants) WithTx(tx *gorm.DB) grants.Repository { return m }
func (m memGrants) Create(ctx context.Context, g *models.Grant) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	cp := *g
	m.s.grants[g.ID] = &cp
	return nil
}
func (m memGrants) FindByID(ctx context.Context, id uuid.UUID) (*models.Grant, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	g, ok := m.s.grants[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "grant not found")
	}
	cp := *g
	return &cp, nil
}
func (m memGrants) ListActiveForUpdate(ctx context.Context, userID uuid.UUID) ([]models.Grant, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []models.Grant
	for _, g := range m.s.grants {
		if g.UserID == userID && g.Status == enums.GrantStatusActive {
			out = append(out, *g)
		}
	}
	return out, nil
}
func (m memGrants) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Grant, error) {
	return nil, nil
}
func (m memGrants) ListLapsed(ctx context.Context, cutoff time.Time) ([]models.Grant, error) {
	return nil, nil
}
func (m memGrants) Save(ctx context.Context, g *models.Grant) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	cp := *g
	m.s.grants[g.ID] = &cp
	return nil
}
func (m memGrants) SoftDelete(ctx context.Context, id uuid.UUID) error { return nil }
func (m memGrants) CreateCharge(ctx context.Context, c *models.GrantCharge) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.s.charges = append(m.s.charges, *c)
	return nil
}
func (m memGrants) ListChargesByDrink(ctx context.Context, drinkID uuid.UUID) ([]models.GrantCharge, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []models.GrantCharge
	for _, c := range m.s.charges {
		if c.DrinkID == drinkID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memPolicies struct{ s *memStore }

func (m memPolicies) WithTx(tx *gorm.DB) policy.Repository { return m }
func (m memPolicies) Create(ctx context.Context, p *models.Policy) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	m.s.policies[p.ID] = &cp
	return nil
}
func (m memPolicies) FindByID(ctx context.Context, id uuid.UUID) (*models.Policy, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	p, ok := m.s.policies[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "policy not found")
	}
	cp := *p
	return &cp, nil
}
func (m memPolicies) List(ctx context.Context) ([]models.Policy, error) { return nil, nil }

type memBAC struct{ s *memStore }

func (m memBAC) WithTx(tx *gorm.DB) bac.Repository { return m }
func (m memBAC) Create(ctx context.Context, rec *models.BAC) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	m.s.bacs = append(m.s.bacs, *rec)
	return nil
}
func (m memBAC) LatestByUser(ctx context.Context, userID uuid.UUID) (*models.BAC, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var latest *models.BAC
	for i := range m.s.bacs {
		if m.s.bacs[i].UserID != userID {
			continue
		}
		if latest == nil || m.s.bacs[i].RecTime.After(latest.RecTime) {
			latest = &m.s.bacs[i]
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}
func (m memBAC) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.BAC, error) {
	return nil, nil
}

type memBinges struct{ s *memStore }

func (m memBinges) WithTx(tx *gorm.DB) binge.Repository { return m }
func (m memBinges) Create(ctx context.Context, b *models.Binge) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	m.s.binges = append(m.s.binges, *b)
	return nil
}
func (m memBinges) LatestByUserForUpdate(ctx context.Context, userID uuid.UUID) (*models.Binge, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var latest *models.Binge
	for i := range m.s.binges {
		if m.s.binges[i].UserID != userID {
			continue
		}
		if latest == nil || m.s.binges[i].EndTime.After(latest.EndTime) {
			latest = &m.s.binges[i]
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}
func (m memBinges) Save(ctx context.Context, b *models.Binge) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i := range m.s.binges {
		if m.s.binges[i].ID == b.ID {
			m.s.binges[i] = *b
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "binge not found")
}
func (m memBinges) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Binge, error) {
	return nil, nil
}

type fixture struct {
	store     *memStore
	processor *Processor
	user      *models.User
	keg       *models.Keg
}

func newFixture(t *testing.T, shortfall enums.ShortfallPolicy) *fixture {
	t.Helper()
	store := newMemStore()

	grantsRepo := memGrants{s: store}
	policiesRepo := memPolicies{s: store}

	allocator, err := grants.NewAllocator(grantsRepo, shortfall)
	if err != nil {
		t.Fatal(err)
	}
	bacSvc, err := bac.NewService(memBAC{s: store}, 0.02)
	if err != nil {
		t.Fatal(err)
	}
	bingeSvc, err := binge.NewService(memBinges{s: store}, 90*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	pricing, err := policy.NewService(policiesRepo)
	if err != nil {
		t.Fatal(err)
	}

	processor, err := NewProcessor(Deps{
		DB:            nopTx{},
		Locker:        locks.NewMutexLocker(),
		Users:         memUsers{s: store},
		Kegs:          memKegs{s: store},
		Drinks:        memDrinks{s: store},
		Grants:        grantsRepo,
		Policies:      policiesRepo,
		Allocator:     allocator,
		BAC:           bacSvc,
		Binges:        bingeSvc,
		Pricing:       pricing,
		Metrics:       metrics.NewPourMetrics(prometheus.NewRegistry()),
		TicksPerLiter: 2200,
		LockWait:      5 * time.Second,
	})
	if err != nil {
		t.Fatal(err)
	}

	user := &models.User{ID: uuid.New(), Username: "drinker", Gender: enums.GenderMale, WeightKg: 82}
	keg := &models.Keg{ID: uuid.New(), BeerName: "Pale Ale", ABV: 5, Status: enums.KegStatusOnline}
	store.users[user.ID] = user
	store.kegs[keg.ID] = keg

	return &fixture{store: store, processor: processor, user: user, keg: keg}
}

func (f *fixture) addGrant(t *testing.T, capML int64, unitCost decimal.Decimal, unitVolumeML int64) *models.Grant {
	t.Helper()

	pol := &models.Policy{ID: uuid.New(), Type: enums.PolicyTypeFree}
	if !unitCost.IsZero() {
		pol.Type = enums.PolicyTypeFixedCost
		pol.UnitCost = unitCost
		pol.UnitVolumeML = unitVolumeML
	}
	f.store.policies[pol.ID] = pol

	g := &models.Grant{
		ID:          uuid.New(),
		UserID:      f.user.ID,
		PolicyID:    pol.ID,
		Expiration:  enums.GrantExpirationVolume,
		Status:      enums.GrantStatusActive,
		ExpVolumeML: capML,
		CreatedAt:   testNow.Add(-24 * time.Hour),
	}
	f.store.grants[g.ID] = g
	return g
}

func TestProcess_HappyPath(t *testing.T) {
	f := newFixture(t, enums.ShortfallPolicyRecord)
	f.addGrant(t, 1000, decimal.RequireFromString("5.00"), 355)

	result, err := f.processor.Process(context.Background(), Input{
		UserID:   f.user.ID,
		KegID:    f.keg.ID,
		VolumeML: 355,
		EndTime:  testNow,
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.Drink == nil || result.Drink.VolumeML != 355 {
		t.Fatalf("unexpected drink: %+v", result.Drink)
	}
	if len(result.Charges) != 1 || result.Charges[0].VolumeML != 355 {
		t.Fatalf("unexpected charges: %+v", result.Charges)
	}
	if result.ShortfallML != 0 {
		t.Fatalf("unexpected shortfall %d", result.ShortfallML)
	}
	if !result.Cost.Equal(decimal.RequireFromString("5.00")) {
		t.Fatalf("cost = %s, want 5.00", result.Cost)
	}
	if result.BAC == nil || result.BAC.Value <= 0 {
		t.Fatalf("expected positive bac, got %+v", result.BAC)
	}
	if result.Binge == nil || result.Binge.VolumeML != 355 {
		t.Fatalf("expected session covering the pour, got %+v", result.Binge)
	}
}

func TestProcess_DerivesVolumeFromTicks(t *testing.T) {
	f := newFixture(t, enums.ShortfallPolicyRecord)
	f.addGrant(t, 5000, decimal.Zero, 0)

	result, err := f.processor.Process(context.Background(), Input{
		UserID:  f.user.ID,
		KegID:   f.keg.ID,
		Ticks:   2200,
		EndTime: testNow,
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Drink.VolumeML != 1000 {
		t.Fatalf("2200 ticks at 2200/L should be 1000mL, got %d", result.Drink.VolumeML)
	}
	if !result.Cost.IsZero() {
		t.Fatalf("free policy should cost nothing, got %s", result.Cost)
	}
}

func TestProcess_ShortfallRecorded(t *testing.T) {
	f := newFixture(t, enums.ShortfallPolicyRecord)
	f.addGrant(t, 200, decimal.RequireFromString("1.00"), 100)

	result, err := f.processor.Process(context.Background(), Input{
		UserID:   f.user.ID,
		KegID:    f.keg.ID,
		VolumeML: 300,
		EndTime:  testNow,
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.ShortfallML != 100 {
		t.Fatalf("shortfall = %d, want 100", result.ShortfallML)
	}
	// only the authorized 200mL carries a price
	if !result.Cost.Equal(decimal.RequireFromString("2.00")) {
		t.Fatalf("cost = %s, want 2.00", result.Cost)
	}
}

func TestProcess_RejectPolicyFailsPour(t *testing.T) {
	f := newFixture(t, enums.ShortfallPolicyReject)
	f.addGrant(t, 200, decimal.Zero, 0)

	_, err := f.processor.Process(context.Background(), Input{
		UserID:   f.user.ID,
		KegID:    f.keg.ID,
		VolumeML: 300,
		EndTime:  testNow,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeInsufficient) {
		t.Fatalf("expected %s, got %v", pkgerrors.CodeInsufficient, err)
	}
}

func TestProcess_OfflineKegRejected(t *testing.T) {
	f := newFixture(t, enums.ShortfallPolicyRecord)
	f.keg.Status = enums.KegStatusOffline

	_, err := f.processor.Process(context.Background(), Input{
		UserID:   f.user.ID,
		KegID:    f.keg.ID,
		VolumeML: 300,
		EndTime:  testNow,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestProcess_UnknownUserOrKeg(t *testing.T) {
	f := newFixture(t, enums.ShortfallPolicyRecord)

	_, err := f.processor.Process(context.Background(), Input{
		UserID:   uuid.New(),
		KegID:    f.keg.ID,
		VolumeML: 100,
		EndTime:  testNow,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for user, got %v", err)
	}

	_, err = f.processor.Process(context.Background(), Input{
		UserID:   f.user.ID,
		KegID:    uuid.New(),
		VolumeML: 100,
		EndTime:  testNow,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for keg, got %v", err)
	}
}

func TestProcess_InputValidation(t *testing.T) {
	f := newFixture(t, enums.ShortfallPolicyRecord)

	cases := []Input{
		{KegID: f.keg.ID, VolumeML: 100},                      // no user
		{UserID: f.user.ID, VolumeML: 100},                    // no keg
		{UserID: f.user.ID, KegID: f.keg.ID, VolumeML: -1},    // negative volume
		{UserID: f.user.ID, KegID: f.keg.ID, Ticks: -1},       // negative ticks
	}
	for _, input := range cases {
		if _, err := f.processor.Process(context.Background(), input); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("input %+v: expected validation error, got %v", input, err)
		}
	}
}

// stalledTx hangs until the transaction context expires.
type stalledTx struct{}

func (stalledTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestProcess_StoreTimeoutFailsPour(t *testing.T) {
	f := newFixture(t, enums.ShortfallPolicyRecord)

	deps := f.processor.deps
	deps.DB = stalledTx{}
	deps.StoreTimeout = 25 * time.Millisecond
	processor, err := NewProcessor(deps)
	if err != nil {
		t.Fatal(err)
	}

	_, err = processor.Process(context.Background(), Input{
		UserID:   f.user.ID,
		KegID:    f.keg.ID,
		VolumeML: 200,
		EndTime:  testNow,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodePersistence) {
		t.Fatalf("expected persistence error from stalled store, got %v", err)
	}
}

func TestProcess_ConcurrentPoursConserveVolume(t *testing.T) {
	f := newFixture(t, enums.ShortfallPolicyRecord)
	grant := f.addGrant(t, 500, decimal.Zero, 0)

	const workers = 8
	const pourML = 100

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// identical timestamps keep scheduling order out of the
			// ordering guards; conservation is what matters here
			_, err := f.processor.Process(context.Background(), Input{
				UserID:   f.user.ID,
				KegID:    f.keg.ID,
				VolumeML: pourML,
				EndTime:  testNow,
			})
			if err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var charged, shortfall int64
	for _, c := range f.store.charges {
		if c.GrantID != nil {
			charged += c.VolumeML
		} else {
			shortfall += c.VolumeML
		}
	}
	if charged+shortfall != workers*pourML {
		t.Fatalf("volume not conserved: charged=%d shortfall=%d want total %d",
			charged, shortfall, workers*pourML)
	}
	if charged != 500 {
		t.Fatalf("grant capacity is 500mL, charged %d", charged)
	}
	if g := f.store.grants[grant.ID]; g.TotalVolumeML != 500 || g.Status != enums.GrantStatusExpired {
		t.Fatalf("grant should be exactly exhausted: %+v", g)
	}
	if len(f.store.drinks) != workers {
		t.Fatalf("expected %d drinks, got %d", workers, len(f.store.drinks))
	}
}

func TestProcess_ConcurrentPoursExactCapacity(t *testing.T) {
	f := newFixture(t, enums.ShortfallPolicyRecord)

	const workers = 8
	const pourML = 100
	grant := f.addGrant(t, workers*pourML, decimal.Zero, 0)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.processor.Process(context.Background(), Input{
				UserID:   f.user.ID,
				KegID:    f.keg.ID,
				VolumeML: pourML,
				EndTime:  testNow,
			})
			if err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var grantCharges int
	for _, c := range f.store.charges {
		if c.GrantID == nil {
			t.Fatalf("unexpected shortfall charge of %dmL", c.VolumeML)
		}
		if c.VolumeML != pourML {
			t.Fatalf("expected each charge to be %dmL, got %d", pourML, c.VolumeML)
		}
		grantCharges++
	}
	if grantCharges != workers {
		t.Fatalf("expected exactly %d charges, got %d", workers, grantCharges)
	}
	if g := f.store.grants[grant.ID]; g.TotalVolumeML != workers*pourML || g.Status != enums.GrantStatusExpired {
		t.Fatalf("grant should be exactly exhausted: %+v", g)
	}
}

func TestVoid(t *testing.T) {
	f := newFixture(t, enums.ShortfallPolicyRecord)
	f.addGrant(t, 1000, decimal.Zero, 0)

	result, err := f.processor.Process(context.Background(), Input{
		UserID:   f.user.ID,
		KegID:    f.keg.ID,
		VolumeML: 355,
		EndTime:  testNow,
	})
	if err != nil {
		t.Fatal(err)
	}

	voided, err := f.processor.Void(context.Background(), result.Drink.ID)
	if err != nil {
		t.Fatal(err)
	}
	if voided.Status != enums.DrinkStatusInvalid {
		t.Fatalf("expected invalid status, got %s", voided.Status)
	}

	// idempotent
	again, err := f.processor.Void(context.Background(), result.Drink.ID)
	if err != nil || again.Status != enums.DrinkStatusInvalid {
		t.Fatalf("second void should be a no-op, got %+v err=%v", again, err)
	}

	// charges stay as written
	charges, _ := memGrants{s: f.store}.ListChargesByDrink(context.Background(), result.Drink.ID)
	if len(charges) != 1 {
		t.Fatalf("void must not touch the charge ledger, got %d charges", len(charges))
	}

	if _, err := f.processor.Void(context.Background(), uuid.New()); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
