package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cryptolink/cryptolink-payment-service/internal/domain"
)

// In-memory fakes emulating the postgres repos, the merchant store
// and the external collaborators. The payment repo reproduces the
// conditional-update semantics of the real one: transitions succeed
// only while the stored status is still PENDING.

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*domain.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*domain.Payment)}
}

func (r *fakePaymentRepo) CreatePayment(payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *payment
	r.payments[payment.ID] = &stored
	return nil
}

func (r *fakePaymentRepo) GetPaymentByID(payID string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.payments[payID]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	copied := *stored
	return &copied, nil
}

func (r *fakePaymentRepo) FindPending() ([]*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pending []*domain.Payment
	for _, stored := range r.payments {
		if stored.Status == domain.StatusPending {
			copied := *stored
			pending = append(pending, &copied)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending, nil
}

func (r *fakePaymentRepo) FindPendingRetry(retryOf string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.payments {
		if stored.RetryOf == retryOf && stored.Status == domain.StatusPending {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) MarkCompleted(payID, txHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.payments[payID]
	if !ok || stored.Status != domain.StatusPending {
		return false, nil
	}
	stored.Status = domain.StatusCompleted
	stored.TxHash = txHash
	stored.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakePaymentRepo) MarkFailed(payID, reason string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.payments[payID]
	if !ok || stored.Status != domain.StatusPending {
		return false, nil
	}
	stored.Status = domain.StatusFailed
	stored.FailureReason = reason
	stored.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakePaymentRepo) GetRetryChain(payID string) ([]*domain.Payment, error) {
	var chain []*domain.Payment
	currentID := payID
	for currentID != "" {
		payment, err := r.GetPaymentByID(currentID)
		if err != nil {
			return nil, err
		}
		chain = append(chain, payment)
		currentID = payment.RetryOf
	}
	return chain, nil
}

type fakeMerchantStore struct {
	mu          sync.Mutex
	orders      map[string]*domain.MerchantOrder
	apiStatuses map[string]*domain.APIStatus
	cryptos     map[string][]domain.WalletOption
	links       map[string]*domain.PayLink
}

func newFakeMerchantStore() *fakeMerchantStore {
	return &fakeMerchantStore{
		orders:      make(map[string]*domain.MerchantOrder),
		apiStatuses: make(map[string]*domain.APIStatus),
		cryptos:     make(map[string][]domain.WalletOption),
		links:       make(map[string]*domain.PayLink),
	}
}

func (s *fakeMerchantStore) GetOrder(orderID string) (*domain.MerchantOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *fakeMerchantStore) GetAPIStatus(apiKey string) (*domain.APIStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.apiStatuses[apiKey]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *status
	return &copied, nil
}

func (s *fakeMerchantStore) GetEnabledCryptos(merchantID string) ([]domain.WalletOption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.WalletOption(nil), s.cryptos[merchantID]...), nil
}

func (s *fakeMerchantStore) CreatePayLink(link *domain.PayLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *link
	s.links[link.Code] = &copied
	return nil
}

func (s *fakeMerchantStore) GetPayLink(code string) (*domain.PayLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.links[code]
	if !ok {
		return nil, domain.ErrPayLinkNotFound
	}
	copied := *link
	return &copied, nil
}

type fakeOracle struct {
	mu      sync.Mutex
	reports map[string]*domain.OracleReport // keyed by wallet address
	err     error
	calls   int
}

func newFakeOracle() *fakeOracle {
	return &fakeOracle{reports: make(map[string]*domain.OracleReport)}
}

func (o *fakeOracle) CheckPayment(ctx context.Context, address, network string, expectedAmount float64) (*domain.OracleReport, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls++
	if o.err != nil {
		return nil, o.err
	}
	if report, ok := o.reports[address]; ok {
		copied := *report
		return &copied, nil
	}
	return &domain.OracleReport{}, nil
}

type fakeRates struct {
	prices map[string]float64
	err    error
}

func (r *fakeRates) GetUSDPrice(ctx context.Context, coinType string) (float64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return r.prices[coinType], nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

const (
	testOrderID  = "5f0c2c7e-1af1-4c41-9a1f-3f8ad10be1a2"
	testAPIKey   = "mk_live_k1"
	testMerchant = "merchant-1"
	testAddress  = "bc1q7cyrfmck2ffu2ud3rn5l5a8yv6f0chkp0zpemf"
)

func newTestUsecase() (*DefaultPaymentUsecase, *fakePaymentRepo, *fakeMerchantStore, *fakeOracle, *fakeClock) {
	repo := newFakePaymentRepo()
	store := newFakeMerchantStore()
	oracle := newFakeOracle()
	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}

	store.orders[testOrderID] = &domain.MerchantOrder{
		ID:            testOrderID,
		MerchantID:    testMerchant,
		ProductID:     "prod-1",
		ProductName:   "Annual license",
		AmountUSD:     100,
		BusinessEmail: "owner@example.com",
		IsActive:      true,
	}
	store.apiStatuses[testAPIKey] = &domain.APIStatus{
		Key:        testAPIKey,
		MerchantID: testMerchant,
		IsActive:   true,
	}
	store.cryptos[testMerchant] = []domain.WalletOption{
		{CoinType: "BTC", Network: "mainnet", WalletAddress: testAddress},
		{CoinType: "ETH", Network: "mainnet", WalletAddress: "0x52908400098527886E0F7030069857D2E4169EE7"},
	}

	uc := &DefaultPaymentUsecase{
		PaymentRepo:   repo,
		MerchantStore: store,
		Oracle:        oracle,
		Rates:         &fakeRates{prices: map[string]float64{"BTC": 50000, "ETH": 2500}},
		Rules: VerificationRules{
			MinConfirmations: 1,
			AmountTolerance:  0.005,
			RecordTimeout:    time.Second,
		},
		now:         clock.Now,
		newLinkCode: mustLinkCodeGenerator(),
	}

	return uc, repo, store, oracle, clock
}
