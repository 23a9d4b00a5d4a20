package cache

// entry is a node of the recency list. It carries the key so the map slot
// can be dropped on eviction.
type entry[K comparable, V any] struct {
	key   K
	value V
	prev  *entry[K, V]
	next  *entry[K, V]
}

// lruList is a doubly-linked list ordered by use: head is the most recently
// used entry, tail the least. Not thread-safe.
type lruList[K comparable, V any] struct {
	head *entry[K, V]
	tail *entry[K, V]
	len  int
}

// pushFront inserts e as the most recently used entry.
func (l *lruList[K, V]) pushFront(e *entry[K, V]) {
	e.prev = nil
	e.next = l.head
	if l.head != nil {
		l.head.prev = e
	}
	l.head = e
	if l.tail == nil {
		l.tail = e
	}
	l.len++
}

// moveToFront marks e as the most recently used entry.
func (l *lruList[K, V]) moveToFront(e *entry[K, V]) {
	if e == l.head {
		return
	}
	l.unlink(e)
	l.pushFront(e)
}

// popBack removes and returns the least recently used entry, or nil.
func (l *lruList[K, V]) popBack() *entry[K, V] {
	e := l.tail
	if e != nil {
		l.unlink(e)
	}
	return e
}

func (l *lruList[K, V]) unlink(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev = nil
	e.next = nil
	l.len--
}
