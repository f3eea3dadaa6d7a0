package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"mangwale-cart/models"
)

// Modules routed to the secondary index. Everything else goes to the primary.
var secondaryModules = map[int64]bool{5: true, 13: true}

// Config holds the OpenSearch connection settings.
type Config struct {
	Addresses      []string
	Username       string
	Password       string
	PrimaryIndex   string
	SecondaryIndex string
}

// Client is a thin wrapper over the OpenSearch API used by the sync and
// resolver services. The sync side writes, the resolver side only reads.
type Client struct {
	os        *opensearch.Client
	primary   string
	secondary string
}

// NewClient builds an OpenSearch client from config.
func NewClient(cfg Config) (*Client, error) {
	osClient, err := opensearch.NewClient(opensearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}
	return &Client{
		os:        osClient,
		primary:   cfg.PrimaryIndex,
		secondary: cfg.SecondaryIndex,
	}, nil
}

// IndexFor returns the target index for a module id.
func (c *Client) IndexFor(moduleID int64) string {
	if secondaryModules[moduleID] {
		return c.secondary
	}
	return c.primary
}

// Indexes returns every index this client writes to.
func (c *Client) Indexes() []string {
	return []string{c.primary, c.secondary}
}

// Upsert writes a document keyed by item id. Indexing the same document twice
// is idempotent.
func (c *Client) Upsert(ctx context.Context, index string, id int64, doc *models.SearchIndexDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document %d: %w", id, err)
	}

	req := opensearchapi.IndexRequest{
		Index:      index,
		DocumentID: strconv.FormatInt(id, 10),
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, c.os)
	if err != nil {
		return fmt.Errorf("failed to index document %d: %w", id, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index returned %s for document %d", res.Status(), id)
	}
	return nil
}

// Delete removes a document. A 404 means the index is already consistent and
// is not an error.
func (c *Client) Delete(ctx context.Context, index string, id int64) error {
	req := opensearchapi.DeleteRequest{
		Index:      index,
		DocumentID: strconv.FormatInt(id, 10),
	}
	res, err := req.Do(ctx, c.os)
	if err != nil {
		return fmt.Errorf("failed to delete document %d: %w", id, err)
	}
	defer res.Body.Close()
	if res.StatusCode == 404 {
		return nil
	}
	if res.IsError() {
		return fmt.Errorf("index returned %s deleting document %d", res.Status(), id)
	}
	return nil
}

// Search runs a fuzzy text query against one index. StoreID and ModuleID in
// the query become hard filters.
func (c *Client) Search(ctx context.Context, index string, query models.SearchQuery) ([]models.SearchHit, error) {
	body, err := json.Marshal(buildQuery(query))
	if err != nil {
		return nil, fmt.Errorf("failed to encode search query: %w", err)
	}

	req := opensearchapi.SearchRequest{
		Index: []string{index},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, c.os)
	if err != nil {
		return nil, fmt.Errorf("failed to search index %s: %w", index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("index returned %s for search", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Score  float64                    `json:"_score"`
				Source models.SearchIndexDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	hits := make([]models.SearchHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, models.SearchHit{Score: h.Score, Document: h.Source})
	}
	return hits, nil
}

func buildQuery(query models.SearchQuery) map[string]interface{} {
	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}

	must := []map[string]interface{}{
		{
			"multi_match": map[string]interface{}{
				"query":     query.Text,
				"fields":    []string{"name^3", "description"},
				"fuzziness": "AUTO",
			},
		},
	}

	var filter []map[string]interface{}
	if query.StoreID != nil {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"store_id": *query.StoreID},
		})
	} else if query.ModuleID != nil {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"module_id": *query.ModuleID},
		})
	}
	filter = append(filter, map[string]interface{}{
		"term": map[string]interface{}{"in_stock": true},
	})

	return map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   must,
				"filter": filter,
			},
		},
	}
}
