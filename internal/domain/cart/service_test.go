package cart

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/ambassador-platform/internal/domain/catalog"
)

type memoryStore struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func newMemoryStore() *memoryStore {
	return &memoryStore{carts: make(map[string]*Cart)}
}

func (m *memoryStore) Load(_ context.Context, sessionID string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *c
	copied.Items = append([]LineItem(nil), c.Items...)
	return &copied, nil
}

func (m *memoryStore) Save(_ context.Context, c *Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *c
	copied.Items = append([]LineItem(nil), c.Items...)
	m.carts[c.SessionID] = &copied
	return nil
}

func (m *memoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}

// fakeCatalog prices through the real country rules so override prices
// match production behavior.
type fakeCatalog struct {
	products map[uint]catalog.Product
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[uint]catalog.Product{
		2: {ID: 2, Name: "Shampoo", Price: 507},
		3: {ID: 3, Name: "Aceite", Price: 427},
	}}
}

func (f *fakeCatalog) GetProduct(id uint, country string) (*catalog.PricedProduct, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	priced := catalog.Priced(p, country)
	return &priced, nil
}

type fakeCountryResolver struct {
	countries map[string]string
}

func (f *fakeCountryResolver) ResolveCountry(_ context.Context, ref string) string {
	return f.countries[ref]
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestService(store Store) *Service {
	resolver := &fakeCountryResolver{countries: map[string]string{
		"colombiana@example.com": "Colombia",
	}}
	return NewService(store, newFakeCatalog(), resolver, quietLogger())
}

func TestService_Get_EmptySession(t *testing.T) {
	service := newTestService(newMemoryStore())

	c, err := service.Get(context.Background(), "s1")

	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, catalog.CurrencyMXN, c.Currency)
	assert.Equal(t, "s1", c.SessionID)
}

func TestService_AddItem_PricesForReferralCountry(t *testing.T) {
	service := newTestService(newMemoryStore())

	c, err := service.AddItem(context.Background(), "s1", "colombiana@example.com", 2, 1)

	require.NoError(t, err)
	assert.Equal(t, catalog.CurrencyCOP, c.Currency)
	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(77350), c.Items[0].UnitPrice)
}

func TestService_AddItem_UnknownProduct(t *testing.T) {
	service := newTestService(newMemoryStore())

	_, err := service.AddItem(context.Background(), "s1", "", 99, 1)

	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestService_AddItem_IncrementsExistingLine(t *testing.T) {
	service := newTestService(newMemoryStore())
	ctx := context.Background()

	_, err := service.AddItem(ctx, "s1", "", 2, 1)
	require.NoError(t, err)
	c, err := service.AddItem(ctx, "s1", "", 2, 2)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, int64(1521), c.Totals().Total)
}

func TestService_AddItem_RepricesLinesWhenCurrencyChanges(t *testing.T) {
	service := newTestService(newMemoryStore())
	ctx := context.Background()

	_, err := service.AddItem(ctx, "s1", "colombiana@example.com", 2, 1)
	require.NoError(t, err)

	// A later add without a ref resolves to MXN; the Colombian line
	// must not survive at its COP price under an MXN label.
	c, err := service.AddItem(ctx, "s1", "", 3, 1)
	require.NoError(t, err)

	assert.Equal(t, catalog.CurrencyMXN, c.Currency)
	require.Len(t, c.Items, 2)
	assert.Equal(t, int64(507), c.Items[0].UnitPrice)
	assert.Equal(t, int64(427), c.Items[1].UnitPrice)
	assert.Equal(t, int64(934), c.Totals().Total)
}

func TestService_AddItem_RepricesToColombiaOverride(t *testing.T) {
	service := newTestService(newMemoryStore())
	ctx := context.Background()

	_, err := service.AddItem(ctx, "s1", "", 2, 1)
	require.NoError(t, err)

	c, err := service.AddItem(ctx, "s1", "colombiana@example.com", 3, 1)
	require.NoError(t, err)

	assert.Equal(t, catalog.CurrencyCOP, c.Currency)
	require.Len(t, c.Items, 2)
	assert.Equal(t, int64(77350), c.Items[0].UnitPrice)
	assert.Equal(t, int64(59400), c.Items[1].UnitPrice, "oil keeps its own override")
}

func TestService_AddItem_SameCurrencyKeepsStoredPrices(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store)
	ctx := context.Background()

	_, err := service.AddItem(ctx, "s1", "colombiana@example.com", 2, 1)
	require.NoError(t, err)
	c, err := service.AddItem(ctx, "s1", "colombiana@example.com", 3, 1)
	require.NoError(t, err)

	assert.Equal(t, catalog.CurrencyCOP, c.Currency)
	assert.Equal(t, int64(77350), c.Items[0].UnitPrice)
	assert.Equal(t, int64(59400), c.Items[1].UnitPrice)
}

func TestService_UpdateItemQuantity_ZeroRemovesAndPersists(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store)
	ctx := context.Background()

	_, err := service.AddItem(ctx, "s1", "", 2, 2)
	require.NoError(t, err)

	c, err := service.UpdateItemQuantity(ctx, "s1", 2, 0)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	stored, err := service.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, stored.IsEmpty())
}

func TestService_Clear_DropsStoredCart(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store)
	ctx := context.Background()

	_, err := service.AddItem(ctx, "s1", "", 2, 1)
	require.NoError(t, err)

	require.NoError(t, service.Clear(ctx, "s1"))

	count, err := service.Count(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, count)
}
