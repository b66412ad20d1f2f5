package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/bigkaa/fichas-admin/internal/domain/schema"
)

func testCategory() schema.Category {
	return schema.Category{
		Table: "laptops",
		Group: "computadores",
		Slug:  "laptops",
		Fields: []schema.Field{
			{Name: "marca", Kind: schema.KindText},
			{Name: "peso", Kind: schema.KindNumber},
			{Name: "imagen", Kind: schema.KindFile},
		},
	}
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestBuildInsert_ColumnsMatchPlaceholders(t *testing.T) {
	cols := []Column{
		{Name: "marca", Value: "HP"},
		{Name: "peso", Value: "1.50"},
		{Name: "imagen", Value: nil},
		{Name: "usuario_id", Value: int64(3)},
	}

	query, args := buildInsert("laptops", cols)

	want := `INSERT INTO "laptops" ("marca", "peso", "imagen", "usuario_id") VALUES ($1, $2, $3, $4) RETURNING id`
	if query != want {
		t.Errorf("query = %q\nожидается %q", query, want)
	}
	if len(args) != len(cols) {
		t.Fatalf("len(args) = %d, ожидается %d", len(args), len(cols))
	}
	for i, c := range cols {
		if args[i] != c.Value {
			t.Errorf("args[%d] = %v, ожидается %v (колонка %s)", i, args[i], c.Value, c.Name)
		}
	}
}

func TestBuildInsert_QuotesIdentifiers(t *testing.T) {
	query, _ := buildInsert(`evil"; DROP TABLE x; --`, []Column{{Name: "a", Value: 1}})
	if !strings.HasPrefix(query, `INSERT INTO "evil""; DROP TABLE x; --"`) {
		t.Errorf("идентификатор не экранирован: %s", query)
	}
}

func TestInsert_Commit(t *testing.T) {
	mock := newMock(t)
	repo := NewRecordRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "laptops" \("marca", "usuario_id"\) VALUES \(\$1, \$2\) RETURNING id`).
		WithArgs("HP", int64(9)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectCommit()

	id, err := repo.Insert(context.Background(), testCategory(), []Column{
		{Name: "marca", Value: "HP"},
		{Name: "usuario_id", Value: int64(9)},
	})
	if err != nil {
		t.Fatalf("Insert() вернул ошибку: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, ожидается 42", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestInsert_RollbackOnError(t *testing.T) {
	mock := newMock(t)
	repo := NewRecordRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "laptops"`).
		WithArgs("HP").
		WillReturnError(&pgconn.PgError{Code: "22003", Message: "numeric field overflow"})
	mock.ExpectRollback()

	_, err := repo.Insert(context.Background(), testCategory(), []Column{{Name: "marca", Value: "HP"}})
	if err == nil {
		t.Fatal("Insert() должен вернуть ошибку")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestInsert_BeginError(t *testing.T) {
	mock := newMock(t)
	repo := NewRecordRepository(mock)

	mock.ExpectBegin().WillReturnError(errors.New("pool closed"))

	if _, err := repo.Insert(context.Background(), testCategory(), []Column{{Name: "marca", Value: "HP"}}); err == nil {
		t.Fatal("Insert() должен вернуть ошибку")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestInsert_NoColumns(t *testing.T) {
	repo := NewRecordRepository(newMock(t))
	if _, err := repo.Insert(context.Background(), testCategory(), nil); err == nil {
		t.Fatal("Insert() без колонок должен вернуть ошибку")
	}
}

func TestDelete_ReturnsRowsAffected(t *testing.T) {
	mock := newMock(t)
	repo := NewRecordRepository(mock)

	mock.ExpectExec(`DELETE FROM "laptops" WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	n, err := repo.Delete(context.Background(), testCategory(), 5)
	if err != nil {
		t.Fatalf("Delete() вернул ошибку: %v", err)
	}
	if n != 0 {
		t.Errorf("RowsAffected = %d, ожидается 0", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCount_UndefinedTable(t *testing.T) {
	mock := newMock(t)
	repo := NewRecordRepository(mock)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "scanners"`).
		WillReturnError(&pgconn.PgError{Code: "42P01", Message: "relation does not exist"})

	_, err := repo.Count(context.Background(), "scanners")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, ожидается ErrNotFound", err)
	}
}

func TestSearchPredicate(t *testing.T) {
	c := testCategory()

	narrow := searchPredicate(c, 3, false)
	want := `(CAST(f.id AS TEXT) ILIKE $3 OR f.fecha_creacion::TEXT ILIKE $3)`
	if narrow != want {
		t.Errorf("narrow = %q\nожидается %q", narrow, want)
	}

	wide := searchPredicate(c, 1, true)
	if !strings.Contains(wide, `f."marca" ILIKE $1`) {
		t.Errorf("wide не содержит текстовое поле: %q", wide)
	}
	if strings.Contains(wide, `"peso"`) || strings.Contains(wide, `"imagen"`) {
		t.Errorf("wide содержит нетекстовые поля: %q", wide)
	}
}

func TestLikePattern(t *testing.T) {
	tests := []struct{ in, want string }{
		{"2024", "%2024%"},
		{"50%", `%50\%%`},
		{"a_b", `%a\_b%`},
		{`c:\x`, `%c:\\x%`},
	}
	for _, tt := range tests {
		if got := likePattern(tt.in); got != tt.want {
			t.Errorf("likePattern(%q) = %q, ожидается %q", tt.in, got, tt.want)
		}
	}
}

func TestProvisioner_EnsureTable(t *testing.T) {
	mock := newMock(t)
	p := NewProvisioner(mock, slog.New(slog.NewTextHandler(io.Discard, nil)))

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "laptops"`).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec(`ALTER TABLE "laptops" ADD COLUMN IF NOT EXISTS "marca" TEXT, ADD COLUMN IF NOT EXISTS "peso" NUMERIC\(10,2\), ADD COLUMN IF NOT EXISTS "imagen" VARCHAR\(255\)`).
		WillReturnResult(pgxmock.NewResult("ALTER TABLE", 0))

	if err := p.EnsureTable(context.Background(), testCategory()); err != nil {
		t.Fatalf("EnsureTable() вернул ошибку: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestProvisioner_EnsureTableError(t *testing.T) {
	mock := newMock(t)
	p := NewProvisioner(mock, slog.New(slog.NewTextHandler(io.Discard, nil)))

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "laptops"`).
		WillReturnError(errors.New("permission denied"))

	if err := p.EnsureTable(context.Background(), testCategory()); err == nil {
		t.Fatal("EnsureTable() должен вернуть ошибку")
	}
}

func TestCreateTableSQL(t *testing.T) {
	sql := createTableSQL(testCategory())

	for _, want := range []string{
		`CREATE TABLE IF NOT EXISTS "laptops"`,
		"id SERIAL PRIMARY KEY",
		"usuario_id INT REFERENCES usuarios_admin(id) ON DELETE SET NULL",
		"fecha_creacion TIMESTAMP DEFAULT CURRENT_TIMESTAMP",
		"fecha_actualizacion TIMESTAMP DEFAULT CURRENT_TIMESTAMP",
		`"marca" TEXT`,
		`"peso" NUMERIC(10,2)`,
		`"imagen" VARCHAR(255)`,
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("createTableSQL не содержит %q:\n%s", want, sql)
		}
	}
}
