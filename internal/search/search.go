package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/outfitly/storefront/internal/models"
)

// Index is the product search index. Nil *Index means search is disabled.
type Index struct {
	ES    *elasticsearch.Client
	Index string
}

func NewIndex(url, user, password, index string) (*Index, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.Status())
	}

	return &Index{ES: client, Index: index}, nil
}

// IndexProduct upserts one product document keyed by its id.
func (ix *Index) IndexProduct(ctx context.Context, p models.Product) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(p); err != nil {
		return err
	}

	res, err := ix.ES.Index(
		ix.Index,
		&buf,
		ix.ES.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
		ix.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index product %d: %w", p.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index product %d: %s", p.ID, res.Status())
	}
	return nil
}

func (ix *Index) IndexProducts(ctx context.Context, products []models.Product) error {
	for _, p := range products {
		if err := ix.IndexProduct(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Search runs a fuzzy multi-match over name and description.
func (ix *Index) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(ctx),
		ix.ES.Search.WithIndex(ix.Index),
		ix.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	products := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		products[i] = hit.Source
	}
	return r.Hits.Total.Value, products, nil
}
