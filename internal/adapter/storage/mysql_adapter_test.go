package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/cafe?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	return db
}

func TestInsertAndFindByID(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	if err := adapter.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	collection := "test-" + time.Now().Format("20060102150405")
	defer db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ?`, collection)

	doc, err := adapter.InsertOne(ctx, collection, []byte(`{"name":"Latte","price":3.5}`))
	if err != nil {
		t.Fatalf("InsertOne failed: %v", err)
	}
	if doc.ID == uuid.Nil {
		t.Fatal("expected assigned id")
	}
	if doc.CreatedAt.IsZero() {
		t.Error("expected creation timestamp")
	}

	found, err := adapter.FindByID(ctx, collection, doc.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found == nil {
		t.Fatal("document not found after insert")
	}
	if string(found.Data) != `{"name": "Latte", "price": 3.5}` && string(found.Data) != `{"name":"Latte","price":3.5}` {
		// MySQL normalizes JSON column formatting; accept either form.
		t.Errorf("unexpected body: %s", found.Data)
	}
}

func TestFindByID_Missing(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	if err := adapter.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	found, err := adapter.FindByID(ctx, "menuitem", uuid.New())
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found != nil {
		t.Error("expected nil for a missing document")
	}
}

func TestFindAll_OldestFirst(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	if err := adapter.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	collection := "test-all-" + time.Now().Format("20060102150405")
	defer db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ?`, collection)

	first, err := adapter.InsertOne(ctx, collection, []byte(`{"n":1}`))
	if err != nil {
		t.Fatalf("InsertOne failed: %v", err)
	}
	second, err := adapter.InsertOne(ctx, collection, []byte(`{"n":2}`))
	if err != nil {
		t.Fatalf("InsertOne failed: %v", err)
	}

	docs, err := adapter.FindAll(ctx, collection)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].ID != first.ID || docs[1].ID != second.ID {
		t.Error("expected documents in insertion order")
	}
}
