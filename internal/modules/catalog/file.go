package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Document is the on-disk shape of the static catalog fixture.
type Document struct {
	Products   []Product       `json:"products"`
	Categories []Category      `json:"categories"`
	Families   []VariantFamily `json:"variant_families,omitempty"`
}

type fileRepo struct {
	path string

	once sync.Once
	doc  *Document
	err  error
}

// NewFileRepository reads the catalog from a JSON fixture at path. The file
// is parsed on first use.
func NewFileRepository(path string) Repository { return &fileRepo{path: path} }

func (r *fileRepo) load() (*Document, error) {
	r.once.Do(func() {
		data, err := os.ReadFile(r.path)
		if err != nil {
			r.err = fmt.Errorf("read catalog file: %w", err)
			return
		}
		doc, err := ParseCatalogDocument(data)
		if err != nil {
			r.err = fmt.Errorf("%s: %w", r.path, err)
			return
		}
		r.doc = doc
	})
	return r.doc, r.err
}

// ParseCatalogDocument decodes a catalog fixture. Unknown fields are rejected
// so schema drift in the fixture shows up at load time.
func ParseCatalogDocument(data []byte) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &doc, nil
}

func (r *fileRepo) ListProducts(ctx context.Context) ([]Product, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	return doc.Products, nil
}

func (r *fileRepo) ListCategories(ctx context.Context) ([]Category, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

func (r *fileRepo) ListFamilies(ctx context.Context) ([]VariantFamily, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	return doc.Families, nil
}
