package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quadviz/quadviz/pkg/treeio"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	doc := NewDocument("demo", &treeio.Document{Width: 85, Height: 105})
	if doc.ID == "" {
		t.Fatal("NewDocument should assign an ID")
	}
	if doc.CreatedAt.IsZero() {
		t.Fatal("NewDocument should assign a timestamp")
	}

	if _, err := s.Get(ctx, doc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get before Put error = %v, want ErrNotFound", err)
	}

	if err := s.Put(ctx, doc); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, doc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "demo" || got.Layout.Width != 85 {
		t.Errorf("Get = %+v", got)
	}

	if err := s.Delete(ctx, doc.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, doc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"third", "first", "second"} {
		doc := NewDocument(name, &treeio.Document{})
		switch name {
		case "first":
			doc.CreatedAt = base
		case "second":
			doc.CreatedAt = base.Add(time.Minute)
		case "third":
			doc.CreatedAt = base.Add(2 * time.Minute)
		}
		if err := s.Put(ctx, doc); err != nil {
			t.Fatalf("put %d: %v", i, err)
		}
	}

	docs, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 3 {
		t.Fatalf("List len = %d, want 3", len(docs))
	}
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if docs[i].Name != w {
			t.Errorf("List[%d] = %s, want %s", i, docs[i].Name, w)
		}
	}
}

func TestDocumentIDsAreUnique(t *testing.T) {
	a := NewDocument("a", nil)
	b := NewDocument("b", nil)
	if a.ID == b.ID {
		t.Error("documents should get distinct IDs")
	}
}
