// Package search mirrors tasks into an Elasticsearch index and queries it.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/tasks_api/internal/models"
)

type Config struct {
	URL      string
	Username string
	Password string
	Index    string
}

type TaskIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewClient(cfg Config) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	return client, nil
}

func NewTaskIndex(cfg Config) (*TaskIndex, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &TaskIndex{ES: client, Index: cfg.Index}, nil
}

func (i *TaskIndex) Put(ctx context.Context, task models.Task) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(task); err != nil {
		return fmt.Errorf("encode task: %w", err)
	}

	res, err := i.ES.Index(
		i.Index,
		&buf,
		i.ES.Index.WithContext(ctx),
		i.ES.Index.WithDocumentID(strconv.FormatInt(task.ID, 10)),
		i.ES.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("index task %d: %w", task.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index task %d: %s", task.ID, responseError(res.Status(), res.Body))
	}
	return nil
}

func (i *TaskIndex) Remove(ctx context.Context, id int64) error {
	res, err := i.ES.Delete(
		i.Index,
		strconv.FormatInt(id, 10),
		i.ES.Delete.WithContext(ctx),
		i.ES.Delete.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	defer res.Body.Close()
	// a document that was never indexed is already gone
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete task %d: %s", id, responseError(res.Status(), res.Body))
	}
	return nil
}

func (i *TaskIndex) Search(ctx context.Context, query string, from, size int) (int64, []models.Task, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"sort": []any{"_score", map[string]any{"id": "asc"}},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := i.ES.Search(
		i.ES.Search.WithContext(ctx),
		i.ES.Search.WithIndex(i.Index),
		i.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", responseError(res.Status(), res.Body))
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Task `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("decode search response: %w", err)
	}

	tasks := make([]models.Task, len(r.Hits.Hits))
	for n, hit := range r.Hits.Hits {
		tasks[n] = hit.Source
	}
	return r.Hits.Total.Value, tasks, nil
}

func responseError(status string, body io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(body, 1024))
	return status + " " + string(b)
}
