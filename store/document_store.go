package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/gcbaptista/go-library/model"
)

func init() {
	// Register the types a JSON-decoded model.Document can hold so Gob can
	// encode them behind interface{} values.
	gob.Register([]interface{}{})
	gob.Register(map[string]interface{}{})
	gob.Register([]string{})
	gob.Register(float64(0))
	gob.Register(false)
}

// DocumentStore holds the items of one collection, keyed by id and kept in
// insertion order.
type DocumentStore struct {
	Mu    sync.RWMutex
	Docs  map[string]model.Document
	Order []string // ids in insertion order
}

// gobDocumentStoreData is a helper struct for Gob encoding/decoding DocumentStore data.
// It excludes the mutex.
type gobDocumentStoreData struct {
	Docs  map[string]model.Document
	Order []string
}


// NewDocumentStore creates an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		Docs:  make(map[string]model.Document),
		Order: make([]string, 0),
	}
}

// Put stores doc under id, replacing any previous item with that id.
// It reports whether the item is new.
func (ds *DocumentStore) Put(id string, doc model.Document) bool {
	ds.Mu.Lock()
	defer ds.Mu.Unlock()

	_, exists := ds.Docs[id]
	ds.Docs[id] = doc
	if !exists {
		ds.Order = append(ds.Order, id)
	}
	return !exists
}

// Get returns a copy of the item with the given id.
func (ds *DocumentStore) Get(id string) (model.Document, bool) {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()

	doc, ok := ds.Docs[id]
	if !ok {
		return nil, false
	}
	return doc.Clone(), true
}

// Delete removes the item with the given id and reports whether it existed.
func (ds *DocumentStore) Delete(id string) bool {
	ds.Mu.Lock()
	defer ds.Mu.Unlock()

	if _, ok := ds.Docs[id]; !ok {
		return false
	}
	delete(ds.Docs, id)
	for i, existing := range ds.Order {
		if existing == id {
			ds.Order = append(ds.Order[:i], ds.Order[i+1:]...)
			break
		}
	}
	return true
}

// All returns copies of every item in insertion order.
func (ds *DocumentStore) All() []model.Document {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()

	docs := make([]model.Document, 0, len(ds.Order))
	for _, id := range ds.Order {
		docs = append(docs, ds.Docs[id].Clone())
	}
	return docs
}

// Len returns the number of stored items.
func (ds *DocumentStore) Len() int {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()
	return len(ds.Docs)
}

// IncrementField adds one to a numeric counter field of the item and returns
// the new value. A missing or non-numeric counter starts from zero.
func (ds *DocumentStore) IncrementField(id, field string) (float64, bool) {
	ds.Mu.Lock()
	defer ds.Mu.Unlock()

	doc, ok := ds.Docs[id]
	if !ok {
		return 0, false
	}

	var current float64
	switch v := doc[field].(type) {
	case float64:
		current = v
	case int:
		current = float64(v)
	case int64:
		current = float64(v)
	}

	updated := doc.Clone()
	updated[field] = current + 1
	ds.Docs[id] = updated
	return current + 1, true
}

// GobEncode implements the gob.GobEncoder interface for DocumentStore.
func (ds *DocumentStore) GobEncode() ([]byte, error) {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()

	// JSON decoding yields []interface{} for arrays; store all-string arrays as []string
	storableDocs := make(map[string]model.Document, len(ds.Docs))
	for id, doc := range ds.Docs {
		storableDoc := make(model.Document, len(doc))
		for k, val := range doc {
			storableDoc[k] = storableValue(val)
		}
		storableDocs[id] = storableDoc
	}

	dataToEncode := gobDocumentStoreData{
		Docs:  storableDocs,
		Order: ds.Order,
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(dataToEncode); err != nil {
		return nil, fmt.Errorf("failed to gob encode document store data: %w", err)
	}
	return buf.Bytes(), nil
}

func storableValue(val interface{}) interface{} {
	interfaceSlice, ok := val.([]interface{})
	if !ok {
		return val
	}
	stringSlice := make([]string, 0, len(interfaceSlice))
	for _, item := range interfaceSlice {
		strItem, isString := item.(string)
		if !isString {
			return val
		}
		stringSlice = append(stringSlice, strItem)
	}
	return stringSlice
}

// GobDecode implements the gob.GobDecoder interface for DocumentStore.
func (ds *DocumentStore) GobDecode(data []byte) error {
	decodedData := gobDocumentStoreData{}

	buf := bytes.NewBuffer(data)
	decoder := gob.NewDecoder(buf)
	if err := decoder.Decode(&decodedData); err != nil {
		return fmt.Errorf("failed to gob decode document store data: %w", err)
	}

	ds.Mu.Lock()
	defer ds.Mu.Unlock()

	ds.Docs = decodedData.Docs
	ds.Order = decodedData.Order

	// Ensure fields are initialized if they were nil after decoding
	if ds.Docs == nil {
		ds.Docs = make(map[string]model.Document)
	}
	if ds.Order == nil {
		ds.Order = make([]string, 0)
	}

	return nil
}
