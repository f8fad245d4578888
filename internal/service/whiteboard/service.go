package whiteboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taskora/taskora-backend-go/internal/domain/whiteboard"
)

// AutosaveDebounce is how long a document's autosave is held open for
// further strokes before the latest snapshot is written.
const AutosaveDebounce = 3 * time.Second

// pendingSave is the newest autosave for one document. A new autosave
// replaces the snapshot and re-arms the timer while it is still armed; once
// the timer fires, the fired callback owns this entry.
type pendingSave struct {
	timer    *time.Timer
	snapshot whiteboard.Whiteboard
}

type WhiteboardServiceImpl struct {
	whiteboard.WhiteboardRepository

	debounce time.Duration

	mu      sync.Mutex
	pending map[string]*pendingSave
	wg      sync.WaitGroup
	stopped bool
}

func NewWhiteboardService(repo whiteboard.WhiteboardRepository) whiteboard.WhiteboardService {
	return &WhiteboardServiceImpl{
		WhiteboardRepository: repo,
		debounce:             AutosaveDebounce,
		pending:              make(map[string]*pendingSave),
	}
}

func decodedSnapshot(req whiteboard.SaveWhiteboardRequest) ([]byte, error) {
	raw, err := req.DecodeSnapshot()
	if err != nil {
		return nil, err
	}
	if len(raw) > whiteboard.MaxSnapshotBytes {
		return nil, whiteboard.ErrSnapshotTooLarge
	}
	return raw, nil
}

// Create implements whiteboard.WhiteboardService.
func (s *WhiteboardServiceImpl) Create(ctx context.Context, ownerID string, req whiteboard.SaveWhiteboardRequest) (whiteboard.WhiteboardResponse, error) {
	raw, err := decodedSnapshot(req)
	if err != nil {
		return whiteboard.WhiteboardResponse{}, err
	}

	created, err := s.WhiteboardRepository.Create(ctx, whiteboard.Whiteboard{
		OwnerID:  ownerID,
		Name:     req.Name,
		Snapshot: raw,
		MimeType: req.MimeType,
		IsShared: req.IsShared,
	})
	if err != nil {
		return whiteboard.WhiteboardResponse{}, err
	}
	return created.ToResponse(true), nil
}

// Get implements whiteboard.WhiteboardService. The snapshot comes back
// exactly as stored; reloads render pixel-identical content.
func (s *WhiteboardServiceImpl) Get(ctx context.Context, id string, callerID string) (whiteboard.WhiteboardResponse, error) {
	w, err := s.GetByID(ctx, id)
	if err != nil {
		return whiteboard.WhiteboardResponse{}, err
	}
	if !w.VisibleTo(callerID) {
		return whiteboard.WhiteboardResponse{}, whiteboard.ErrWhiteboardNotFound
	}
	return w.ToResponse(true), nil
}

// List implements whiteboard.WhiteboardService.
func (s *WhiteboardServiceImpl) List(ctx context.Context, callerID string) ([]whiteboard.WhiteboardResponse, error) {
	boards, err := s.ListVisible(ctx, callerID)
	if err != nil {
		return nil, err
	}

	responses := make([]whiteboard.WhiteboardResponse, 0, len(boards))
	for _, w := range boards {
		responses = append(responses, w.ToResponse(false))
	}
	return responses, nil
}

func (s *WhiteboardServiceImpl) authorizeWrite(ctx context.Context, id string, callerID string) (whiteboard.Whiteboard, error) {
	w, err := s.GetByID(ctx, id)
	if err != nil {
		return whiteboard.Whiteboard{}, err
	}
	if w.OwnerID != callerID {
		return whiteboard.Whiteboard{}, whiteboard.ErrNotWhiteboardOwner
	}
	return w, nil
}

// Save implements whiteboard.WhiteboardService. An explicit save cancels any
// pending autosave for the document; the explicit snapshot is newer.
func (s *WhiteboardServiceImpl) Save(ctx context.Context, id string, callerID string, req whiteboard.SaveWhiteboardRequest) (whiteboard.WhiteboardResponse, error) {
	raw, err := decodedSnapshot(req)
	if err != nil {
		return whiteboard.WhiteboardResponse{}, err
	}

	w, err := s.authorizeWrite(ctx, id, callerID)
	if err != nil {
		return whiteboard.WhiteboardResponse{}, err
	}

	s.cancelPending(id)

	w.Name = req.Name
	w.Snapshot = raw
	w.MimeType = req.MimeType
	w.IsShared = req.IsShared

	if err := s.Update(ctx, w); err != nil {
		return whiteboard.WhiteboardResponse{}, err
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return whiteboard.WhiteboardResponse{}, err
	}
	return updated.ToResponse(true), nil
}

// Autosave implements whiteboard.WhiteboardService. Rapid strokes coalesce:
// each call replaces the document's pending snapshot and re-arms its timer,
// so only the latest state within the window hits the database.
func (s *WhiteboardServiceImpl) Autosave(ctx context.Context, id string, callerID string, req whiteboard.SaveWhiteboardRequest) error {
	raw, err := decodedSnapshot(req)
	if err != nil {
		return err
	}

	w, err := s.authorizeWrite(ctx, id, callerID)
	if err != nil {
		return err
	}

	w.Name = req.Name
	w.Snapshot = raw
	w.MimeType = req.MimeType
	w.IsShared = req.IsShared

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		// Late autosave during shutdown writes through synchronously.
		return s.Update(ctx, w)
	}

	// Only re-arm a timer that has not fired yet. A fired timer's callback
	// may already be waiting on the lock; Reset on it would make the
	// callback run against a re-armed entry and double-account the
	// WaitGroup. The fired callback owns the old entry; park a fresh one.
	if p, ok := s.pending[id]; ok && p.timer.Stop() {
		p.snapshot = w
		p.timer.Reset(s.debounce)
		return nil
	}

	p := &pendingSave{snapshot: w}
	s.wg.Add(1)
	p.timer = time.AfterFunc(s.debounce, func() {
		defer s.wg.Done()
		s.flush(id, p)
	})
	s.pending[id] = p
	return nil
}

// flush writes p's snapshot if p is still the document's pending entry. A
// fire that lost the lock to a newer autosave finds itself superseded and
// writes nothing; the newer entry carries the newer state.
func (s *WhiteboardServiceImpl) flush(id string, p *pendingSave) {
	s.mu.Lock()
	if s.pending[id] != p {
		s.mu.Unlock()
		return
	}
	delete(s.pending, id)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Update(ctx, p.snapshot); err != nil {
		slog.Error("whiteboard autosave failed", "whiteboard_id", id, "error", err)
	}
}

// cancelPending drops a pending autosave without writing it. Callers hold
// newer state. Safe to call with no pending entry.
func (s *WhiteboardServiceImpl) cancelPending(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[id]
	if !ok {
		return
	}
	delete(s.pending, id)
	if p.timer.Stop() {
		s.wg.Done()
	}
}

// Delete implements whiteboard.WhiteboardService.
func (s *WhiteboardServiceImpl) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.authorizeWrite(ctx, id, callerID); err != nil {
		return err
	}
	s.cancelPending(id)
	return s.WhiteboardRepository.Delete(ctx, id)
}

// Stop flushes every pending autosave synchronously.
func (s *WhiteboardServiceImpl) Stop() {
	s.mu.Lock()
	s.stopped = true
	claimed := make(map[string]*pendingSave, len(s.pending))
	for id, p := range s.pending {
		if p.timer.Stop() {
			claimed[id] = p
		}
		// A fired timer's goroutine owns its flush.
	}
	s.mu.Unlock()

	for id, p := range claimed {
		s.flush(id, p)
		s.wg.Done()
	}
	s.wg.Wait()
}
