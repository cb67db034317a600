package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/harkeshbirman/my-book-keeper/internal/domain"
)

// fakeStore mimics the postgres package: totals move together with ledger
// records, and repay claims the unpaid record atomically.
type fakeStore struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	unpaid map[int64]domain.UnpaidTransaction
	paid   map[int64]domain.PaidTransaction
	nextID int64
}

func newFakeStore(emails ...string) *fakeStore {
	s := &fakeStore{
		users:  make(map[string]*domain.User),
		unpaid: make(map[int64]domain.UnpaidTransaction),
		paid:   make(map[int64]domain.PaidTransaction),
	}
	for i, email := range emails {
		s.users[email] = &domain.User{ID: int64(i + 1), Email: email}
	}
	return s
}

func (s *fakeStore) UserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeStore) UserByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *fakeStore) CreateTransaction(_ context.Context, lender, borrower string, amount float64) (*domain.UnpaidTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.users[lender]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	b, ok := s.users[borrower]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	l.TotalLent += amount
	b.TotalBorrowed += amount

	s.nextID++
	txn := domain.UnpaidTransaction{
		ID:        s.nextID,
		Lender:    lender,
		Borrower:  borrower,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	s.unpaid[txn.ID] = txn

	return &txn, nil
}

func (s *fakeStore) RepayTransaction(_ context.Context, id int64) (*domain.PaidTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.unpaid[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	delete(s.unpaid, id)

	s.users[txn.Lender].TotalLent -= txn.Amount
	s.users[txn.Borrower].TotalBorrowed -= txn.Amount

	paid := domain.PaidTransaction{
		ID:           txn.ID,
		Lender:       txn.Lender,
		Borrower:     txn.Borrower,
		Repaid:       true,
		RepayingDate: time.Now(),
	}
	s.paid[paid.ID] = paid

	return &paid, nil
}

func (s *fakeStore) UnpaidForUser(_ context.Context, email string) ([]domain.UnpaidTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var txns []domain.UnpaidTransaction
	for _, txn := range s.unpaid {
		if txn.Lender == email || txn.Borrower == email {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

func (s *fakeStore) PaidForUser(_ context.Context, email string) ([]domain.PaidTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var txns []domain.PaidTransaction
	for _, txn := range s.paid {
		if txn.Lender == email || txn.Borrower == email {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

func (s *fakeStore) totals(t *testing.T, email string) (float64, float64) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		t.Fatalf("unknown user %s", email)
	}
	return user.TotalLent, user.TotalBorrowed
}

func TestTransactionServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects non-positive amount", func(t *testing.T) {
		store := newFakeStore("alice@example.com", "bob@example.com")
		srv := NewTransactionService(store, store)

		for _, amount := range []float64{0, -10} {
			_, err := srv.Create(ctx, "alice@example.com", "bob@example.com", amount)
			if !errors.Is(err, domain.ErrNonPositiveAmount) {
				t.Errorf("amount %v: got %v, want ErrNonPositiveAmount", amount, err)
			}
		}
	})

	t.Run("rejects same lender and borrower", func(t *testing.T) {
		store := newFakeStore("alice@example.com")
		srv := NewTransactionService(store, store)

		_, err := srv.Create(ctx, "alice@example.com", "alice@example.com", 50)
		if !errors.Is(err, domain.ErrSameParty) {
			t.Errorf("got %v, want ErrSameParty", err)
		}
	})

	t.Run("rejects unknown parties", func(t *testing.T) {
		store := newFakeStore("alice@example.com")
		srv := NewTransactionService(store, store)

		_, err := srv.Create(ctx, "nobody@example.com", "alice@example.com", 50)
		if !errors.Is(err, domain.ErrInvalidLender) {
			t.Errorf("got %v, want ErrInvalidLender", err)
		}

		_, err = srv.Create(ctx, "alice@example.com", "nobody@example.com", 50)
		if !errors.Is(err, domain.ErrInvalidBorrower) {
			t.Errorf("got %v, want ErrInvalidBorrower", err)
		}
	})

	t.Run("moves both totals by the amount", func(t *testing.T) {
		store := newFakeStore("alice@example.com", "bob@example.com")
		srv := NewTransactionService(store, store)

		txn, err := srv.Create(ctx, "alice@example.com", "bob@example.com", 100)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if txn.Lender != "alice@example.com" || txn.Borrower != "bob@example.com" || txn.Amount != 100 {
			t.Errorf("unexpected transaction: %+v", txn)
		}
		if txn.Repaid {
			t.Error("new transaction must not be marked repaid")
		}

		if lent, _ := store.totals(t, "alice@example.com"); lent != 100 {
			t.Errorf("lender totalLent = %v, want 100", lent)
		}
		if _, borrowed := store.totals(t, "bob@example.com"); borrowed != 100 {
			t.Errorf("borrower totalBorrowed = %v, want 100", borrowed)
		}
	})
}

func TestTransactionServiceRepay(t *testing.T) {
	ctx := context.Background()

	t.Run("settles the transaction and reverses totals", func(t *testing.T) {
		store := newFakeStore("alice@example.com", "bob@example.com")
		srv := NewTransactionService(store, store)

		txn, err := srv.Create(ctx, "alice@example.com", "bob@example.com", 100)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		paid, err := srv.Repay(ctx, 1, txn.ID)
		if err != nil {
			t.Fatalf("Repay failed: %v", err)
		}

		if paid.ID != txn.ID {
			t.Errorf("paid id = %d, want %d", paid.ID, txn.ID)
		}
		if paid.Lender != txn.Lender || paid.Borrower != txn.Borrower {
			t.Errorf("paid parties %s/%s, want %s/%s", paid.Lender, paid.Borrower, txn.Lender, txn.Borrower)
		}
		if !paid.Repaid {
			t.Error("paid transaction must be marked repaid")
		}

		if lent, _ := store.totals(t, "alice@example.com"); lent != 0 {
			t.Errorf("lender totalLent = %v, want 0 after round trip", lent)
		}
		if _, borrowed := store.totals(t, "bob@example.com"); borrowed != 0 {
			t.Errorf("borrower totalBorrowed = %v, want 0 after round trip", borrowed)
		}

		unpaid, err := srv.UnpaidFor(ctx, 1)
		if err != nil {
			t.Fatalf("UnpaidFor failed: %v", err)
		}
		if len(unpaid) != 0 {
			t.Errorf("unpaid list has %d entries, want 0", len(unpaid))
		}
	})

	t.Run("second repay of the same id fails", func(t *testing.T) {
		store := newFakeStore("alice@example.com", "bob@example.com")
		srv := NewTransactionService(store, store)

		txn, err := srv.Create(ctx, "alice@example.com", "bob@example.com", 40)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if _, err = srv.Repay(ctx, 1, txn.ID); err != nil {
			t.Fatalf("first Repay failed: %v", err)
		}

		_, err = srv.Repay(ctx, 1, txn.ID)
		if !errors.Is(err, domain.ErrTransactionNotFound) {
			t.Errorf("second Repay: got %v, want ErrTransactionNotFound", err)
		}

		if lent, _ := store.totals(t, "alice@example.com"); lent != 0 {
			t.Errorf("lender totalLent = %v, want 0 after a single settlement", lent)
		}
	})

	t.Run("unknown caller fails", func(t *testing.T) {
		store := newFakeStore("alice@example.com", "bob@example.com")
		srv := NewTransactionService(store, store)

		txn, err := srv.Create(ctx, "alice@example.com", "bob@example.com", 40)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		_, err = srv.Repay(ctx, 99, txn.ID)
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("got %v, want ErrUserNotFound", err)
		}
	})

	t.Run("concurrent repays settle exactly once", func(t *testing.T) {
		store := newFakeStore("alice@example.com", "bob@example.com")
		srv := NewTransactionService(store, store)

		txn, err := srv.Create(ctx, "alice@example.com", "bob@example.com", 75)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		const attempts = 8
		errs := make(chan error, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := srv.Repay(ctx, 1, txn.ID)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		var succeeded, notFound int
		for err := range errs {
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrTransactionNotFound):
				notFound++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}

		if succeeded != 1 {
			t.Errorf("%d repays succeeded, want exactly 1", succeeded)
		}
		if notFound != attempts-1 {
			t.Errorf("%d repays saw not-found, want %d", notFound, attempts-1)
		}

		if lent, _ := store.totals(t, "alice@example.com"); lent != 0 {
			t.Errorf("lender totalLent = %v, want 0 after a single settlement", lent)
		}
		if _, borrowed := store.totals(t, "bob@example.com"); borrowed != 0 {
			t.Errorf("borrower totalBorrowed = %v, want 0 after a single settlement", borrowed)
		}
	})
}

func TestTransactionServiceLists(t *testing.T) {
	ctx := context.Background()

	store := newFakeStore("alice@example.com", "bob@example.com", "carol@example.com")
	srv := NewTransactionService(store, store)

	aliceLends, err := srv.Create(ctx, "alice@example.com", "bob@example.com", 10)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	aliceBorrows, err := srv.Create(ctx, "carol@example.com", "alice@example.com", 20)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err = srv.Create(ctx, "bob@example.com", "carol@example.com", 30); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("unpaid list covers both sides and nothing else", func(t *testing.T) {
		txns, err := srv.UnpaidFor(ctx, 1) // alice
		if err != nil {
			t.Fatalf("UnpaidFor failed: %v", err)
		}

		if len(txns) != 2 {
			t.Fatalf("got %d transactions, want 2", len(txns))
		}
		ids := map[int64]bool{}
		for _, txn := range txns {
			ids[txn.ID] = true
		}
		if !ids[aliceLends.ID] || !ids[aliceBorrows.ID] {
			t.Errorf("list %v misses alice's transactions %d and %d", ids, aliceLends.ID, aliceBorrows.ID)
		}
	})

	t.Run("paid list tracks settlements", func(t *testing.T) {
		if _, err := srv.Repay(ctx, 2, aliceLends.ID); err != nil {
			t.Fatalf("Repay failed: %v", err)
		}

		paid, err := srv.PaidFor(ctx, 1) // alice
		if err != nil {
			t.Fatalf("PaidFor failed: %v", err)
		}
		if len(paid) != 1 || paid[0].ID != aliceLends.ID {
			t.Errorf("paid list = %+v, want single entry with id %d", paid, aliceLends.ID)
		}

		paid, err = srv.PaidFor(ctx, 3) // carol was not a party
		if err != nil {
			t.Fatalf("PaidFor failed: %v", err)
		}
		if len(paid) != 0 {
			t.Errorf("carol's paid list has %d entries, want 0", len(paid))
		}
	})

	t.Run("unknown caller fails", func(t *testing.T) {
		if _, err := srv.UnpaidFor(ctx, 99); !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("UnpaidFor: got %v, want ErrUserNotFound", err)
		}
		if _, err := srv.PaidFor(ctx, 99); !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("PaidFor: got %v, want ErrUserNotFound", err)
		}
	})
}
