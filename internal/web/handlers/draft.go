package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kozaktomas/photo-report/internal/report"
)

// DraftPage is a single report page held in a draft, addressable by ID.
type DraftPage struct {
	ID string
	report.Page
}

// Draft is the in-progress report of one browser session.
type Draft struct {
	Meta      report.Meta
	Pages     []DraftPage
	UpdatedAt time.Time
}

// DraftStore keeps one draft per session. All access goes through its
// methods; it never hands out pointers into its own state.
type DraftStore struct {
	drafts map[string]*Draft
	mu     sync.RWMutex
}

// NewDraftStore creates an empty draft store.
func NewDraftStore() *DraftStore {
	return &DraftStore{
		drafts: make(map[string]*Draft),
	}
}

// getOrCreate returns the draft for a session, creating it if needed.
// Callers must hold the write lock.
func (s *DraftStore) getOrCreate(sessionID string) *Draft {
	draft, ok := s.drafts[sessionID]
	if !ok {
		draft = &Draft{UpdatedAt: time.Now()}
		s.drafts[sessionID] = draft
	}
	return draft
}

// SetMeta stores the report metadata for a session.
func (s *DraftStore) SetMeta(sessionID string, meta report.Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft := s.getOrCreate(sessionID)
	draft.Meta = meta
	draft.UpdatedAt = time.Now()
}

// Meta returns the report metadata of a session's draft.
func (s *DraftStore) Meta(sessionID string) (report.Meta, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[sessionID]
	if !ok {
		return report.Meta{}, false
	}
	return draft.Meta, true
}

// AddPage appends a page to a session's draft and assigns it an ID.
func (s *DraftStore) AddPage(sessionID string, page report.Page) DraftPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft := s.getOrCreate(sessionID)
	dp := DraftPage{
		ID:   uuid.New().String(),
		Page: page,
	}
	draft.Pages = append(draft.Pages, dp)
	draft.UpdatedAt = time.Now()
	return dp
}

// UpdatePage replaces the title and description of a page and, when
// images is non-nil, its images. Returns false if the page does not exist.
func (s *DraftStore) UpdatePage(sessionID, pageID, title, description string, images [][]byte) (DraftPage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[sessionID]
	if !ok {
		return DraftPage{}, false
	}
	for i := range draft.Pages {
		if draft.Pages[i].ID != pageID {
			continue
		}
		draft.Pages[i].Title = title
		draft.Pages[i].Description = description
		if images != nil {
			draft.Pages[i].Images = images
		}
		draft.UpdatedAt = time.Now()
		return draft.Pages[i], true
	}
	return DraftPage{}, false
}

// RemovePage deletes a page from a session's draft.
// Returns false if the page does not exist.
func (s *DraftStore) RemovePage(sessionID, pageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[sessionID]
	if !ok {
		return false
	}
	for i := range draft.Pages {
		if draft.Pages[i].ID == pageID {
			draft.Pages = append(draft.Pages[:i], draft.Pages[i+1:]...)
			draft.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// GetPage returns a page of a session's draft by ID.
func (s *DraftStore) GetPage(sessionID, pageID string) (DraftPage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[sessionID]
	if !ok {
		return DraftPage{}, false
	}
	for i := range draft.Pages {
		if draft.Pages[i].ID == pageID {
			return draft.Pages[i], true
		}
	}
	return DraftPage{}, false
}

// ListPages returns all pages of a session's draft in insertion order.
func (s *DraftStore) ListPages(sessionID string) []DraftPage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[sessionID]
	if !ok {
		return nil
	}
	pages := make([]DraftPage, len(draft.Pages))
	copy(pages, draft.Pages)
	return pages
}

// Pages returns the draft's pages stripped of IDs, ready for rendering.
func (s *DraftStore) Pages(sessionID string) []report.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[sessionID]
	if !ok {
		return nil
	}
	pages := make([]report.Page, 0, len(draft.Pages))
	for _, dp := range draft.Pages {
		pages = append(pages, dp.Page)
	}
	return pages
}

// UpdatedAt returns the time of the last change to a session's draft.
func (s *DraftStore) UpdatedAt(sessionID string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[sessionID]
	if !ok {
		return time.Time{}, false
	}
	return draft.UpdatedAt, true
}

// Delete removes a session's draft entirely. Used both by the clear
// endpoint and by session expiry so drafts do not outlive their sessions.
func (s *DraftStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
}
