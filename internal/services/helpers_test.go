package services

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"sakanly_backend/internal/email"
	"sakanly_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.PropertyImage{},
		&models.PropertyFavorite{},
		&models.WishlistItem{},
		&models.Testimonial{},
		&models.Agency{},
	))
	return db
}

// fakeStore is an in-memory Storage for service tests.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Save(ctx context.Context, id string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[id] = data
	return nil
}

func (s *fakeStore) Get(ctx context.Context, id string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[id]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeStore) DeleteMany(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *fakeStore) Exists(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[id]
	return ok, nil
}

func (s *fakeStore) GetURL(ctx context.Context, id string) (string, error) {
	return "https://media.test/" + id, nil
}

func (s *fakeStore) deletedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

// recordMailer captures outbound messages instead of sending them.
type recordMailer struct {
	mu   sync.Mutex
	sent []*email.Message
	fail bool
}

func (m *recordMailer) Send(msg *email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return io.ErrClosedPipe
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordMailer) messages() []*email.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*email.Message(nil), m.sent...)
}

// fakeAssistant replays scripted completions and records the prompts it saw.
type fakeAssistant struct {
	mu        sync.Mutex
	responses []string
	calls     int
	systems   []string
	users     []string
}

func (a *fakeAssistant) Complete(ctx context.Context, system, user string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.systems = append(a.systems, system)
	a.users = append(a.users, user)
	resp := ""
	if a.calls < len(a.responses) {
		resp = a.responses[a.calls]
	}
	a.calls++
	return resp, nil
}
