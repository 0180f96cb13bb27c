package store

import (
	"context"
	"sort"
	"sync"

	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/entity"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkgerror"
)

// InMemoryStore keeps sessions and their uploads in process memory.
// Descriptors live exactly as long as their session; nothing is persisted.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionRecord
}

type sessionRecord struct {
	mu      sync.RWMutex
	session entity.Session
	uploads map[string]*uploadRecord
}

type uploadRecord struct {
	mu      sync.RWMutex
	meta    entity.UploadMeta
	columns []entity.ColumnDescriptor
	records []entity.Record
	sealed  bool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string]*sessionRecord),
	}
}

func (s *InMemoryStore) CreateSession(ctx context.Context, session entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return pkgerror.NewBusiness("session already exists", pkgerror.CodeConflict)
	}

	s.sessions[session.ID] = &sessionRecord{
		session: session,
		uploads: make(map[string]*uploadRecord),
	}

	return nil
}

func (s *InMemoryStore) GetSession(ctx context.Context, sessionID string) (entity.Session, []entity.UploadMeta, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return entity.Session{}, nil, err
	}

	sess.mu.RLock()
	defer sess.mu.RUnlock()

	metas := make([]entity.UploadMeta, 0, len(sess.uploads))
	for _, up := range sess.uploads {
		up.mu.RLock()
		metas = append(metas, up.meta)
		up.mu.RUnlock()
	}

	sort.Slice(metas, func(i, j int) bool {
		if metas[i].UploadedAt != metas[j].UploadedAt {
			return metas[i].UploadedAt < metas[j].UploadedAt
		}
		return metas[i].ID < metas[j].ID
	})

	return sess.session, metas, nil
}

// DeleteSession discards the session and every descriptor in it.
func (s *InMemoryStore) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sessionID]; !exists {
		return pkgerror.ErrNotFound
	}

	delete(s.sessions, sessionID)

	return nil
}

// SetActiveUpload switches which upload feeds the column-selection step.
// An empty uploadID clears the active upload.
func (s *InMemoryStore) SetActiveUpload(ctx context.Context, sessionID, uploadID string) error {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if uploadID != "" {
		if _, exists := sess.uploads[uploadID]; !exists {
			return pkgerror.ErrNotFound
		}
	}

	sess.session.ActiveUploadID = uploadID

	return nil
}

func (s *InMemoryStore) CreateUpload(ctx context.Context, meta entity.UploadMeta) error {
	sess, err := s.getSession(meta.SessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if _, exists := sess.uploads[meta.ID]; exists {
		return pkgerror.NewBusiness("upload already exists", pkgerror.CodeConflict)
	}

	sess.uploads[meta.ID] = &uploadRecord{
		meta: meta,
	}

	return nil
}

func (s *InMemoryStore) UpdateMeta(ctx context.Context, sessionID, uploadID string, fn func(meta *entity.UploadMeta)) error {
	up, err := s.getUpload(sessionID, uploadID)
	if err != nil {
		return err
	}

	up.mu.Lock()
	defer up.mu.Unlock()

	fn(&up.meta)

	return nil
}

// SaveResults stores the parsed columns and records of an upload. Results
// are write-once: a second call is a conflict, which keeps stored
// descriptors immutable.
func (s *InMemoryStore) SaveResults(ctx context.Context, sessionID, uploadID string, columns []entity.ColumnDescriptor, records []entity.Record) error {
	up, err := s.getUpload(sessionID, uploadID)
	if err != nil {
		return err
	}

	up.mu.Lock()
	defer up.mu.Unlock()

	if up.sealed {
		return pkgerror.NewBusiness("upload results already stored", pkgerror.CodeConflict)
	}

	up.columns = columns
	up.records = records
	up.sealed = true

	return nil
}

func (s *InMemoryStore) GetUpload(ctx context.Context, sessionID, uploadID string) (entity.UploadMeta, []entity.ColumnDescriptor, error) {
	up, err := s.getUpload(sessionID, uploadID)
	if err != nil {
		return entity.UploadMeta{}, nil, err
	}

	up.mu.RLock()
	defer up.mu.RUnlock()

	return up.meta, up.columns, nil
}

func (s *InMemoryStore) GetRecords(ctx context.Context, sessionID, uploadID string) (entity.UploadMeta, []entity.ColumnDescriptor, []entity.Record, error) {
	up, err := s.getUpload(sessionID, uploadID)
	if err != nil {
		return entity.UploadMeta{}, nil, nil, err
	}

	up.mu.RLock()
	defer up.mu.RUnlock()

	return up.meta, up.columns, up.records, nil
}

func (s *InMemoryStore) getSession(sessionID string) (*sessionRecord, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, pkgerror.ErrNotFound
	}

	return sess, nil
}

func (s *InMemoryStore) getUpload(sessionID, uploadID string) (*uploadRecord, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.RLock()
	up, ok := sess.uploads[uploadID]
	sess.mu.RUnlock()
	if !ok {
		return nil, pkgerror.ErrNotFound
	}

	return up, nil
}
