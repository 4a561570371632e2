package ledger_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// memStore es un almacén en memoria que imita el comportamiento de la capa
// postgres para los casos de uso: mutex por producto en lugar de
// SELECT FOR UPDATE, escrituras en staging que se aplican solo al commit
// (Rollback implícito si la función de la transacción falla) e IDs de asiento
// secuenciales asignados al crear.
type memStore struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	users    map[string]*entity.User
	entries  []entity.Transaction
	nextID   int64
	locks    map[string]*sync.Mutex
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Product),
		users:    make(map[string]*entity.User),
		locks:    make(map[string]*sync.Mutex),
		nextID:   1,
	}
}

func (s *memStore) addProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[p.ID] = &cp
}

func (s *memStore) addUser(u *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[u.ID] = &cp
}

func (s *memStore) quantityOf(productID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[productID].Quantity
}

func (s *memStore) entryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *memStore) lastEntry() entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[len(s.entries)-1]
}

// allEntries copia de los asientos para verificar invariantes.
func (s *memStore) allEntries() []entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Transaction, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *memStore) lockFor(productID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[productID] == nil {
		s.locks[productID] = &sync.Mutex{}
	}
	return s.locks[productID]
}

// memTx estado de una transacción simulada: filas bloqueadas y escrituras
// pendientes de commit.
type memTx struct {
	store      *memStore
	locked     map[string]*sync.Mutex
	stagedQty  map[string]int64
	stagedTxns []*entity.Transaction
}

func (t *memTx) lockProduct(productID string) {
	if _, ok := t.locked[productID]; ok {
		return
	}
	mu := t.store.lockFor(productID)
	mu.Lock()
	t.locked[productID] = mu
}

func (t *memTx) commit() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for id, qty := range t.stagedQty {
		if p, ok := t.store.products[id]; ok {
			p.Quantity = qty
			p.UpdatedAt = time.Now()
		}
	}
	for _, e := range t.stagedTxns {
		t.store.entries = append(t.store.entries, *e)
	}
}

func (t *memTx) release() {
	for _, mu := range t.locked {
		mu.Unlock()
	}
	t.locked = nil
}

// memTxRunner implementa ledger.TxRunner sobre el almacén en memoria.
type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(ctx context.Context, fn func(repository.TransactionRepository, repository.ProductRepository) error) error {
	tx := &memTx{
		store:     r.store,
		locked:    make(map[string]*sync.Mutex),
		stagedQty: make(map[string]int64),
	}
	defer tx.release()
	if err := fn(&memTransactionRepo{store: r.store, tx: tx}, &memProductRepo{store: r.store, tx: tx}); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// memProductRepo implementa repository.ProductRepository. Con tx != nil,
// GetForUpdate toma el mutex del producto y las escrituras quedan en staging.
type memProductRepo struct {
	store *memStore
	tx    *memTx
}

func (r *memProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.store.addProduct(product)
	return nil
}

func (r *memProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if r.tx != nil {
		r.tx.lockProduct(id)
	}
	p, err := r.GetByID(ctx, id)
	if p != nil && r.tx != nil {
		if qty, ok := r.tx.stagedQty[id]; ok {
			p.Quantity = qty
		}
	}
	return p, err
}

func (r *memProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.store.addProduct(product)
	return nil
}

func (r *memProductRepo) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	if r.tx != nil {
		r.tx.stagedQty[id] = quantity
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p, ok := r.store.products[id]; ok {
		p.Quantity = quantity
	}
	return nil
}

func (r *memProductRepo) ListActive(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProductRepo) SoftDelete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p, ok := r.store.products[id]; ok {
		p.IsActive = false
	}
	return nil
}

// memUserRepo implementa repository.UserRepository.
type memUserRepo struct {
	store *memStore
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.addUser(user)
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

func (r *memUserRepo) UpdateRole(ctx context.Context, id, role string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

// memTransactionRepo implementa repository.TransactionRepository. Con tx != nil
// el asiento se asigna ID de inmediato (la secuencia no se reusa aunque la
// transacción haga rollback, igual que un BIGSERIAL) pero queda en staging.
type memTransactionRepo struct {
	store *memStore
	tx    *memTx
}

func (r *memTransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	r.store.mu.Lock()
	t.ID = r.store.nextID
	r.store.nextID++
	r.store.mu.Unlock()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if r.tx != nil {
		r.tx.stagedTxns = append(r.tx.stagedTxns, t)
		return nil
	}
	r.store.mu.Lock()
	r.store.entries = append(r.store.entries, *t)
	r.store.mu.Unlock()
	return nil
}

func (r *memTransactionRepo) GetByID(ctx context.Context, id int64) (*repository.TransactionWithNames, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.entries {
		if r.store.entries[i].ID == id {
			return r.withNames(r.store.entries[i]), nil
		}
	}
	return nil, nil
}

func (r *memTransactionRepo) List(ctx context.Context, filter repository.TransactionFilter, limit, offset int) ([]*repository.TransactionWithNames, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	matched := make([]entity.Transaction, 0, len(r.store.entries))
	for _, e := range r.store.entries {
		if matches(e, filter) {
			matched = append(matched, e)
		}
	}
	sortNewestFirst(matched)

	total := int64(len(matched))
	if offset >= len(matched) {
		return []*repository.TransactionWithNames{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	out := make([]*repository.TransactionWithNames, 0, end-offset)
	for _, e := range matched[offset:end] {
		out = append(out, r.withNames(e))
	}
	return out, total, nil
}

func (r *memTransactionRepo) Summary(ctx context.Context) (*repository.TransactionSummary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	total := decimal.Zero
	all := make([]entity.Transaction, len(r.store.entries))
	copy(all, r.store.entries)
	for _, e := range all {
		total = total.Add(e.TotalValue)
	}
	sortNewestFirst(all)
	n := 5
	if len(all) < n {
		n = len(all)
	}
	recent := make([]*repository.TransactionWithNames, 0, n)
	for _, e := range all[:n] {
		recent = append(recent, r.withNames(e))
	}
	return &repository.TransactionSummary{
		TotalTransactions: int64(len(all)),
		TotalValue:        total,
		Recent:            recent,
	}, nil
}

func (r *memTransactionRepo) LastDateByProduct(ctx context.Context, productID string) (*time.Time, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var last *time.Time
	for i := range r.store.entries {
		e := r.store.entries[i]
		if e.ProductID != productID {
			continue
		}
		if last == nil || e.CreatedAt.After(*last) {
			t := e.CreatedAt
			last = &t
		}
	}
	return last, nil
}

// withNames resuelve las proyecciones de nombre; el llamador ya tiene store.mu.
func (r *memTransactionRepo) withNames(e entity.Transaction) *repository.TransactionWithNames {
	out := &repository.TransactionWithNames{Transaction: e}
	if p, ok := r.store.products[e.ProductID]; ok {
		out.ProductName = p.Name
	}
	if u, ok := r.store.users[e.UserID]; ok {
		out.UserName = u.Name
	}
	return out
}

func matches(e entity.Transaction, f repository.TransactionFilter) bool {
	if f.UserID != "" && e.UserID != f.UserID {
		return false
	}
	if f.ProductID != "" && e.ProductID != f.ProductID {
		return false
	}
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.From != nil && e.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && e.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

// sortNewestFirst ordena por created_at DESC con desempate id DESC, el mismo
// orden del repositorio postgres.
func sortNewestFirst(entries []entity.Transaction) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID > entries[j].ID
	})
}
