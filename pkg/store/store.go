// Package store persists named layout documents.
//
// Two backends are provided:
//   - memory: In-memory storage for development and tests
//   - mongo: MongoDB-backed storage for the server
//
// Documents are immutable once stored; re-rendering a layout with other
// options does not change the stored document, only the cached artifacts.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/quadviz/quadviz/pkg/treeio"
)

// ErrNotFound is returned when no document exists under the given ID.
var ErrNotFound = errors.New("not found")

// Document is a stored layout with its identity and creation time.
type Document struct {
	ID        string           `json:"id" bson:"_id"`
	Name      string           `json:"name" bson:"name"`
	Layout    *treeio.Document `json:"layout" bson:"layout"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
}

// NewDocument assigns a fresh ID and timestamp to a layout.
func NewDocument(name string, layout *treeio.Document) *Document {
	return &Document{
		ID:        uuid.NewString(),
		Name:      name,
		Layout:    layout,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the interface for layout document storage backends.
type Store interface {
	// Put stores a document, replacing any existing document with the
	// same ID.
	Put(ctx context.Context, doc *Document) error

	// Get retrieves a document by ID.
	// Returns ErrNotFound if no such document exists.
	Get(ctx context.Context, id string) (*Document, error)

	// List returns all documents ordered by creation time, oldest first.
	List(ctx context.Context) ([]*Document, error)

	// Delete removes a document by ID.
	// Returns ErrNotFound if no such document exists.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
