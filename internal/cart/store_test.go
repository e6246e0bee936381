package cart

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/leademy-studio/shusha-rest/internal/domain"
)

type stubStorage struct {
	lines     []domain.CartLine
	loadErr   error
	saveErr   error
	saveCalls int
}

func (s *stubStorage) Load() ([]domain.CartLine, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out, nil
}

func (s *stubStorage) Save(lines []domain.CartLine) error {
	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.lines = make([]domain.CartLine, len(lines))
	copy(s.lines, lines)
	return nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testProduct(id string, price int64) domain.Product {
	return domain.Product{ID: id, Name: "Dish " + id, Price: price, Category: "Menu"}
}

func TestAddItem_SameIDAggregatesQuantity(t *testing.T) {
	store := New(&stubStorage{}, discardLogger())
	store.AddItem(testProduct("a", 500))
	store.AddItem(testProduct("a", 500))

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected one line, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
}

func TestAddItem_StoredSnapshotWinsOverChangedProduct(t *testing.T) {
	store := New(&stubStorage{}, discardLogger())
	store.AddItem(testProduct("a", 500))

	changed := testProduct("a", 999)
	changed.Name = "Renamed"
	store.AddItem(changed)

	items := store.Items()
	if items[0].Price != 500 || items[0].Name != "Dish a" {
		t.Fatalf("stored snapshot lost: %+v", items[0])
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	store := New(&stubStorage{}, discardLogger())
	store.AddItem(testProduct("b", 100))
	store.AddItem(testProduct("a", 200))
	store.AddItem(testProduct("c", 300))
	store.AddItem(testProduct("a", 200))

	items := store.Items()
	want := []string{"b", "a", "c"}
	if len(items) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(items))
	}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, items[i].ID)
		}
	}
}

func TestQuantityFloor(t *testing.T) {
	store := New(&stubStorage{}, discardLogger())
	store.AddItem(testProduct("a", 500))

	store.DecrementItem("a")
	if store.HasItem("a") {
		t.Fatalf("decrementing a quantity-1 line must remove it")
	}

	store.AddItem(testProduct("a", 500))
	store.SetQuantity("a", 0)
	if store.HasItem("a") {
		t.Fatalf("setting quantity 0 must remove the line")
	}

	store.AddItem(testProduct("a", 500))
	store.SetQuantity("a", -3)
	if store.HasItem("a") {
		t.Fatalf("negative quantity must remove the line")
	}
}

func TestTotals(t *testing.T) {
	store := New(&stubStorage{}, discardLogger())
	store.AddItem(testProduct("a", 500))
	store.AddItem(testProduct("a", 500))
	store.AddItem(testProduct("b", 300))
	store.SetQuantity("b", 3)
	store.IncrementItem("a")
	store.DecrementItem("a")

	if got := store.TotalItems(); got != 5 {
		t.Fatalf("expected 5 items, got %d", got)
	}
	if got := store.TotalPrice(); got != 2*500+3*300 {
		t.Fatalf("expected total 1900, got %d", got)
	}
	if got := store.ItemQuantity("b"); got != 3 {
		t.Fatalf("expected quantity 3 for b, got %d", got)
	}
}

func TestMutationsOnAbsentID_NoOp(t *testing.T) {
	storage := &stubStorage{}
	store := New(storage, discardLogger())
	store.AddItem(testProduct("a", 500))
	saves := storage.saveCalls

	store.RemoveItem("ghost")
	store.SetQuantity("ghost", 5)
	store.IncrementItem("ghost")
	store.DecrementItem("ghost")

	if storage.saveCalls != saves {
		t.Fatalf("no-op mutations must not persist, got %d extra saves", storage.saveCalls-saves)
	}
	if store.TotalItems() != 1 {
		t.Fatalf("cart changed by no-op mutations")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	storage := &stubStorage{}
	store := New(storage, discardLogger())
	store.AddItem(testProduct("a", 500))
	store.AddItem(testProduct("b", 300))
	store.SetQuantity("b", 4)

	reloaded := New(storage, discardLogger())
	items := reloaded.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 lines after reload, got %d", len(items))
	}
	if items[0].ID != "a" || items[0].Quantity != 1 || items[0].Price != 500 {
		t.Fatalf("line a mismatch after reload: %+v", items[0])
	}
	if items[1].ID != "b" || items[1].Quantity != 4 || items[1].Price != 300 {
		t.Fatalf("line b mismatch after reload: %+v", items[1])
	}
}

func TestCorruptStorageYieldsEmptyCart(t *testing.T) {
	store := New(&stubStorage{loadErr: errors.New("corrupt entry")}, discardLogger())
	if store.TotalItems() != 0 {
		t.Fatalf("corrupt storage must yield an empty cart")
	}
	// The store keeps operating in memory.
	store.AddItem(testProduct("a", 500))
	if store.TotalItems() != 1 {
		t.Fatalf("store unusable after load failure")
	}
}

func TestSaveFailureKeepsInMemoryCart(t *testing.T) {
	store := New(&stubStorage{saveErr: errors.New("quota exceeded")}, discardLogger())
	store.AddItem(testProduct("a", 500))
	if store.TotalItems() != 1 {
		t.Fatalf("save failure must not lose the in-memory mutation")
	}
}

func TestSubscribe_NotifiedWithPostWriteSnapshot(t *testing.T) {
	storage := &stubStorage{}
	store := New(storage, discardLogger())

	var got []domain.CartLine
	var persistedAtNotify int
	store.Subscribe(func(items []domain.CartLine) {
		got = items
		persistedAtNotify = storage.saveCalls
	})

	store.AddItem(testProduct("a", 500))
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("listener saw wrong snapshot: %+v", got)
	}
	if persistedAtNotify != 1 {
		t.Fatalf("notification must observe the post-write state, saves=%d", persistedAtNotify)
	}

	// Snapshot is a copy: mutating it must not leak into the store.
	got[0].Quantity = 99
	if store.ItemQuantity("a") != 1 {
		t.Fatalf("listener snapshot leaked into the store")
	}
}

func TestSubscribe_ListenerCanReadStore(t *testing.T) {
	store := New(&stubStorage{}, discardLogger())
	var total int64
	store.Subscribe(func([]domain.CartLine) {
		total = store.TotalPrice()
	})
	store.AddItem(testProduct("a", 500))
	if total != 500 {
		t.Fatalf("listener re-read got %d", total)
	}
}

func TestUnsubscribe(t *testing.T) {
	store := New(&stubStorage{}, discardLogger())
	calls := 0
	unsubscribe := store.Subscribe(func([]domain.CartLine) { calls++ })
	store.AddItem(testProduct("a", 500))
	unsubscribe()
	store.AddItem(testProduct("b", 300))
	if calls != 1 {
		t.Fatalf("expected 1 notification after unsubscribe, got %d", calls)
	}
}

func TestClear_EmptiesAndNotifies(t *testing.T) {
	storage := &stubStorage{}
	store := New(storage, discardLogger())
	store.AddItem(testProduct("a", 500))

	notified := false
	store.Subscribe(func(items []domain.CartLine) {
		notified = len(items) == 0
	})
	store.Clear()

	if store.TotalItems() != 0 {
		t.Fatalf("clear left %d items", store.TotalItems())
	}
	if !notified {
		t.Fatalf("clear must notify with the empty snapshot")
	}
	if len(storage.lines) != 0 {
		t.Fatalf("clear must persist the empty cart")
	}
}
