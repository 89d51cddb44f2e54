package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/status"
)

// ErrDimensionMismatch reports that the query vector size differs from the
// collection's configured size.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

const dimensionErrorMarker = "Vector dimension error"

// Hit is one nearest-neighbor result, most similar first.
type Hit struct {
	Score float32
	Text  string
}

// Searcher runs a nearest-neighbor query.
type Searcher interface {
	Search(ctx context.Context, vector []float32, limit int) ([]Hit, error)
}

type Config struct {
	Host       string
	Port       int
	APIKey     string
	UseTLS     bool
	Collection string
}

// Qdrant searches a single collection over gRPC. Point payloads must carry
// the snippet under the "text" key.
type Qdrant struct {
	client     *qdrant.Client
	collection string
}

func NewQdrant(cfg Config) (*Qdrant, error) {
	if cfg.Host == "" {
		return nil, errors.New("qdrant: host is required")
	}
	if cfg.Collection == "" {
		return nil, errors.New("qdrant: collection is required")
	}
	c, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: connect %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return &Qdrant{client: c, collection: cfg.Collection}, nil
}

func (q *Qdrant) Search(ctx context.Context, vector []float32, limit int) ([]Hit, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, classify(err)
	}
	hits := make([]Hit, 0, len(points))
	for _, p := range points {
		hits = append(hits, Hit{Score: p.GetScore(), Text: p.GetPayload()["text"].GetStringValue()})
	}
	return hits, nil
}

func (q *Qdrant) Close() error { return q.client.Close() }

func classify(err error) error {
	msg := err.Error()
	if st, ok := status.FromError(err); ok {
		msg = st.Message()
	}
	if strings.Contains(msg, dimensionErrorMarker) {
		return fmt.Errorf("%w: %s", ErrDimensionMismatch, msg)
	}
	return fmt.Errorf("qdrant query: %w", err)
}
