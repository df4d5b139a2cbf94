package store

import "time"

// idAllocator hands out unique, monotonically increasing project ids. Ids are
// seeded from the unix-milli clock so they stay in the same range as existing
// records, and bumped past both the last id handed out and the highest id in
// the collection. Callers must hold the collection lock.
type idAllocator struct {
	lastID int64
}

func (a *idAllocator) next(existing []int64) int64 {
	id := time.Now().UnixMilli()
	if id <= a.lastID {
		id = a.lastID + 1
	}
	for _, e := range existing {
		if e >= id {
			id = e + 1
		}
	}
	a.lastID = id
	return id
}
