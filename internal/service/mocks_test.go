package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bigkaa/fichas-admin/internal/domain/model"
	"github.com/bigkaa/fichas-admin/internal/domain/schema"
	"github.com/bigkaa/fichas-admin/internal/repository"
	"github.com/bigkaa/fichas-admin/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Mock RecordRepository ---

// mockRecordRepo — мок RecordRepository, хранит записи в памяти.
type mockRecordRepo struct {
	mu       sync.Mutex
	nextID   int64
	rows     map[string]map[int64][]repository.Column
	inserted int

	insertErr error
	deleteErr error
	countErr  map[string]error
	listFn    func(p repository.ListParams) (*model.RecordPage, error)
}

func newMockRecordRepo() *mockRecordRepo {
	return &mockRecordRepo{rows: make(map[string]map[int64][]repository.Column)}
}

func (m *mockRecordRepo) Insert(_ context.Context, c schema.Category, cols []repository.Column) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	m.nextID++
	if m.rows[c.Table] == nil {
		m.rows[c.Table] = make(map[int64][]repository.Column)
	}
	m.rows[c.Table][m.nextID] = cols
	m.inserted++
	return m.nextID, nil
}

func (m *mockRecordRepo) List(_ context.Context, _ schema.Category, p repository.ListParams) (*model.RecordPage, error) {
	if m.listFn != nil {
		return m.listFn(p)
	}
	return &model.RecordPage{Items: []model.Record{}}, nil
}

func (m *mockRecordRepo) GetByID(_ context.Context, c schema.Category, id int64) (*model.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cols, ok := m.rows[c.Table][id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rec := &model.Record{ID: id, Values: make(map[string]*string)}
	for _, col := range cols {
		switch v := col.Value.(type) {
		case *string:
			rec.Values[col.Name] = v
		case int64:
			if col.Name == "usuario_id" {
				rec.UsuarioID = &v
			}
		}
	}
	return rec, nil
}

func (m *mockRecordRepo) GetFile(ctx context.Context, c schema.Category, id int64) (*string, error) {
	rec, err := m.GetByID(ctx, c, id)
	if err != nil {
		return nil, err
	}
	f, ok := c.FileField()
	if !ok {
		return nil, nil
	}
	return rec.Values[f.Name], nil
}

func (m *mockRecordRepo) Delete(_ context.Context, c schema.Category, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	if _, ok := m.rows[c.Table][id]; !ok {
		return 0, nil
	}
	delete(m.rows[c.Table], id)
	return 1, nil
}

func (m *mockRecordRepo) Count(_ context.Context, table string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.countErr[table]; err != nil {
		return 0, err
	}
	return int64(len(m.rows[table])), nil
}

// --- Mock NewsRepository ---

// mockNewsRepo — мок NewsRepository в памяти, время создания монотонно растёт.
type mockNewsRepo struct {
	mu        sync.Mutex
	items     []*model.NewsItem
	nextID    int64
	clock     time.Time
	insertErr error
	countErr  error
}

func newMockNewsRepo() *mockNewsRepo {
	return &mockNewsRepo{clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *mockNewsRepo) Insert(_ context.Context, n *model.NewsItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.nextID++
	m.clock = m.clock.Add(time.Minute)
	n.ID = m.nextID
	n.FechaCreacion = m.clock
	cp := *n
	m.items = append(m.items, &cp)
	return nil
}

func (m *mockNewsRepo) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return 0, m.countErr
	}
	return int64(len(m.items)), nil
}

func (m *mockNewsRepo) Oldest(_ context.Context) (*model.NewsItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) == 0 {
		return nil, repository.ErrNotFound
	}
	oldest := m.items[0]
	for _, it := range m.items[1:] {
		if it.FechaCreacion.Before(oldest.FechaCreacion) {
			oldest = it
		}
	}
	cp := *oldest
	return &cp, nil
}

func (m *mockNewsRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockNewsRepo) ListRecent(_ context.Context, limit int) ([]*model.NewsItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.NewsItem, len(m.items))
	copy(out, m.items)
	sort.Slice(out, func(i, j int) bool { return out[i].FechaCreacion.After(out[j].FechaCreacion) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- Mock AccountRepository ---

// mockAccountRepo — мок AccountRepository в памяти.
type mockAccountRepo struct {
	mu        sync.Mutex
	accounts  map[string]*model.Account
	nextID    int64
	createErr error
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{accounts: make(map[string]*model.Account)}
}

func (m *mockAccountRepo) Create(_ context.Context, a *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	a.ID = m.nextID
	a.FechaCreacion = time.Now()
	cp := *a
	m.accounts[a.Usuario] = &cp
	return nil
}

func (m *mockAccountRepo) GetByUsuario(_ context.Context, usuario string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[usuario]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockAccountRepo) Exists(_ context.Context, usuario, correo string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Usuario == usuario || strings.EqualFold(a.Correo, correo) {
			return true, nil
		}
	}
	return false, nil
}

// --- Storage helpers ---

// failingStore — Store, у которого Delete всегда завершается ошибкой.
type failingStore struct {
	storage.Store
	deleteErr error
	saveErr   error
}

func (f *failingStore) Save(ctx context.Context, r io.Reader, size int64, name, ct string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	return f.Store.Save(ctx, r, size, name, ct)
}

func (f *failingStore) Delete(_ context.Context, _ string) error {
	return f.deleteErr
}

func newFileStore(t *testing.T) *storage.FileStore {
	t.Helper()
	fs, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return fs
}

// fileCount возвращает количество файлов в директории хранилища.
func fileCount(t *testing.T, fs *storage.FileStore) int {
	t.Helper()
	entries, err := os.ReadDir(fs.DataDir())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	return len(entries)
}

func fileExists(fs *storage.FileStore, name string) bool {
	_, err := os.Stat(fs.DataDir() + string(os.PathSeparator) + name)
	return err == nil
}

func pngUpload(name string) *Upload {
	body := "\x89PNG\r\n\x1a\n" + name
	return &Upload{
		Body:        strings.NewReader(body),
		Size:        int64(len(body)),
		Filename:    name,
		ContentType: "image/png",
	}
}

var errDB = errors.New("connection reset by peer")
