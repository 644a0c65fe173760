package memory

import (
	"container/list"
	"sync"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/forumvote/internal/core/domain"
	"github.com/vncsmyrnk/forumvote/internal/core/ports"
)

// PageStore keeps open pages in memory. When more than capacity pages are
// open, the least recently used one is dropped.
type PageStore struct {
	mu       sync.Mutex
	capacity int
	idx      map[uuid.UUID]*entry
	order    *list.List
}

type entry struct {
	page *ports.Page
	el   *list.Element
}

func NewPageStore(capacity int) *PageStore {
	return &PageStore{
		capacity: capacity,
		idx:      make(map[uuid.UUID]*entry),
		order:    list.New(),
	}
}

func (s *PageStore) Create(thread domain.Thread) (*ports.Page, error) {
	page := &ports.Page{
		ID:      uuid.New(),
		Thread:  thread,
		Widgets: widgetsOf(thread),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := &entry{page: page}
	e.el = s.order.PushFront(e)
	s.idx[page.ID] = e

	for s.capacity > 0 && len(s.idx) > s.capacity {
		old := s.order.Remove(s.order.Back()).(*entry)
		delete(s.idx, old.page.ID)
	}

	return snapshot(page), nil
}

func (s *PageStore) Get(id uuid.UUID) (*ports.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return snapshot(e.page), nil
}

func (s *PageStore) Widget(id uuid.UUID, key string) (domain.VoteWidget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id)
	if err != nil {
		return domain.VoteWidget{}, err
	}
	w, ok := e.page.Widgets[key]
	if !ok {
		return domain.VoteWidget{}, domain.ErrWidgetNotFound
	}
	return w, nil
}

func (s *PageStore) Update(id uuid.UUID, key string, fn func(domain.VoteWidget) domain.VoteWidget) (domain.VoteWidget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id)
	if err != nil {
		return domain.VoteWidget{}, err
	}
	w, ok := e.page.Widgets[key]
	if !ok {
		return domain.VoteWidget{}, domain.ErrWidgetNotFound
	}

	w = fn(w)
	e.page.Widgets[key] = w
	return w, nil
}

func (s *PageStore) Replace(id uuid.UUID, thread domain.Thread) (*ports.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	e.page.Thread = thread
	e.page.Widgets = widgetsOf(thread)
	return snapshot(e.page), nil
}

func (s *PageStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.idx[id]
	if !ok {
		return domain.ErrPageNotFound
	}
	s.order.Remove(e.el)
	delete(s.idx, id)
	return nil
}

func (s *PageStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.idx)
}

// lookup must be called with mu held.
func (s *PageStore) lookup(id uuid.UUID) (*entry, error) {
	e, ok := s.idx[id]
	if !ok {
		return nil, domain.ErrPageNotFound
	}
	s.order.MoveToFront(e.el)
	return e, nil
}

func widgetsOf(thread domain.Thread) map[string]domain.VoteWidget {
	widgets := make(map[string]domain.VoteWidget)
	for _, w := range thread.Widgets() {
		widgets[w.Key()] = w
	}
	return widgets
}

func snapshot(p *ports.Page) *ports.Page {
	widgets := make(map[string]domain.VoteWidget, len(p.Widgets))
	for k, w := range p.Widgets {
		widgets[k] = w
	}
	return &ports.Page{
		ID:      p.ID,
		Thread:  p.Thread,
		Widgets: widgets,
	}
}
