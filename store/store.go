// Package store keeps documents of one kind in memory, encoded as BSON.
//
// Writes validate the domain document, convert it with the schema codecs and
// marshal the storage form. Reads unmarshal, normalize the BSON containers
// back to plain maps and lists and convert to the domain form. Defaults are
// never applied on read.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/reoring/docskema"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDKey is the root key holding the document identifier.
const IDKey = "_id"

var (
	ErrNotFound    = errors.New("store: document not found")
	ErrDuplicateID = errors.New("store: duplicate _id")
	ErrInvalidID   = errors.New("store: _id must be an ObjectID")
)

// Collection is safe for concurrent use.
type Collection struct {
	schema *docskema.Schema
	log    *slog.Logger

	mu    sync.RWMutex
	docs  map[primitive.ObjectID]bson.Raw
	order []primitive.ObjectID
}

// Option configures a Collection.
type Option func(*Collection)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Collection) {
		if l != nil {
			c.log = l
		}
	}
}

// New returns an empty collection of documents following s.
func New(s *docskema.Schema, opts ...Option) *Collection {
	c := &Collection{
		schema: s,
		log:    slog.New(slog.DiscardHandler),
		docs:   map[primitive.ObjectID]bson.Raw{},
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With("kind", s.Name())
	return c
}

// Schema returns the kind of the stored documents.
func (c *Collection) Schema() *docskema.Schema { return c.schema }

// Insert stores doc and returns its identifier. A missing or null _id is
// generated; doc itself is not modified.
func (c *Collection) Insert(ctx context.Context, doc docskema.Document) (primitive.ObjectID, error) {
	if err := ctx.Err(); err != nil {
		return primitive.NilObjectID, err
	}
	id, raw, err := c.encode(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; ok {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", ErrDuplicateID, id.Hex())
	}
	c.docs[id] = raw
	c.order = append(c.order, id)
	c.log.Debug("insert", "id", id.Hex(), "bytes", len(raw))
	return id, nil
}

// Replace overwrites the document stored under id.
func (c *Collection) Replace(ctx context.Context, id primitive.ObjectID, doc docskema.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	withID := make(docskema.Document, len(doc)+1)
	for k, v := range doc {
		withID[k] = v
	}
	withID[IDKey] = id
	_, raw, err := c.encode(withID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id.Hex())
	}
	c.docs[id] = raw
	c.log.Debug("replace", "id", id.Hex(), "bytes", len(raw))
	return nil
}

// Get loads the document stored under id in its domain form.
func (c *Collection) Get(ctx context.Context, id primitive.ObjectID) (*docskema.Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, ok := c.Raw(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id.Hex())
	}
	c.log.Debug("get", "id", id.Hex())
	return c.decode(raw)
}

// Raw returns the stored BSON bytes of id.
func (c *Collection) Raw(id primitive.ObjectID) (bson.Raw, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	raw, ok := c.docs[id]
	return raw, ok
}

// Delete removes the document stored under id.
func (c *Collection) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id.Hex())
	}
	delete(c.docs, id)
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.log.Debug("delete", "id", id.Hex())
	return nil
}

// Find returns, in insertion order, the documents match accepts. A nil match
// accepts everything.
func (c *Collection) Find(ctx context.Context, match func(*docskema.Doc) bool) ([]*docskema.Doc, error) {
	c.mu.RLock()
	raws := make([]bson.Raw, 0, len(c.order))
	for _, id := range c.order {
		raws = append(raws, c.docs[id])
	}
	c.mu.RUnlock()

	var out []*docskema.Doc
	for _, raw := range raws {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d, err := c.decode(raw)
		if err != nil {
			return nil, err
		}
		if match == nil || match(d) {
			out = append(out, d)
		}
	}
	return out, nil
}

// Len returns the number of stored documents.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

func (c *Collection) encode(doc docskema.Document) (primitive.ObjectID, bson.Raw, error) {
	if err := c.schema.Validate(doc); err != nil {
		c.log.Warn("document rejected", "error", err)
		return primitive.NilObjectID, nil, err
	}
	stored, err := c.schema.ToStorage(doc)
	if err != nil {
		c.log.Warn("storage conversion failed", "error", err)
		return primitive.NilObjectID, nil, err
	}
	var id primitive.ObjectID
	switch v := stored[IDKey].(type) {
	case nil:
		id = primitive.NewObjectID()
		stored[IDKey] = id
	case primitive.ObjectID:
		id = v
	default:
		return primitive.NilObjectID, nil, fmt.Errorf("%w: got %T", ErrInvalidID, v)
	}
	raw, err := bson.Marshal(stored)
	if err != nil {
		return primitive.NilObjectID, nil, fmt.Errorf("store: marshal: %w", err)
	}
	return id, raw, nil
}

func (c *Collection) decode(raw bson.Raw) (*docskema.Doc, error) {
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("store: unmarshal: %w", err)
	}
	doc, err := c.schema.ToDomain(normalizeDoc(m))
	if err != nil {
		return nil, err
	}
	return c.schema.Wrap(doc), nil
}
