package repo

import (
	"sync"

	"github.com/Skotchmaster/tasks_api/internal/util"
)

// table is an id-keyed in-memory store. Ids come from a counter that is
// never rewound, so deleted ids are not handed out again.
type table[T any] struct {
	mu     sync.RWMutex
	lastID int64
	order  []int64
	rows   map[int64]T
	setID  func(*T, int64)
}

func newTable[T any](setID func(*T, int64)) *table[T] {
	return &table[T]{rows: make(map[int64]T), setID: setID}
}

// insert runs check against every stored row and then stores rec under the
// next id, all under one write lock.
func (t *table[T]) insert(rec *T, check func(existing *T) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if check != nil {
		for _, id := range t.order {
			row := t.rows[id]
			if err := check(&row); err != nil {
				return err
			}
		}
	}

	t.lastID++
	t.setID(rec, t.lastID)
	t.rows[t.lastID] = *rec
	t.order = append(t.order, t.lastID)
	return nil
}

func (t *table[T]) list(match func(*T) bool, offset, limit int) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		row := t.rows[id]
		if match == nil || match(&row) {
			out = append(out, row)
		}
	}
	return util.Paginate(out, offset, limit)
}

func (t *table[T]) get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) update(id int64, apply func(*T)) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	apply(&row)
	t.setID(&row, id)
	t.rows[id] = row
	return row, true
}

func (t *table[T]) remove(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}
