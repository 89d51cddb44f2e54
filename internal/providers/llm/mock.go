package llm

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// MockClient is used for local runs without provider credentials. It answers
// the three prompt shapes the pipeline sends with deterministic output.
type MockClient struct{}

func (m *MockClient) Generate(ctx context.Context, req Request) (string, error) {
	p := req.Prompt
	switch {
	case strings.Contains(p, "Classify this golf-related query"):
		return mockRoute(quotedQuery(p)), nil
	case strings.Contains(req.System, "shot planner"):
		return `{"distance": "unknown", "intent": "achieve", "shape": "unknown", "club": "unknown"}`, nil
	case strings.Contains(p, "Here is the tool result:"):
		body := p[strings.Index(p, "Here is the tool result:")+len("Here is the tool result:"):]
		if i := strings.Index(body, "Please summarize"); i >= 0 {
			body = body[:i]
		}
		return strings.TrimSpace(body), nil
	}
	return strings.TrimSpace(p), nil
}

func quotedQuery(p string) string {
	i := strings.LastIndex(p, `Query: "`)
	if i < 0 {
		return p
	}
	q := p[i+len(`Query: "`):]
	if j := strings.LastIndex(q, `"`); j >= 0 {
		q = q[:j]
	}
	return q
}

func mockRoute(q string) string {
	q = strings.ToLower(q)
	switch {
	case strings.Contains(q, "stat") || strings.Contains(q, " vs") || strings.Contains(q, "compare"):
		return "get_pro_stats"
	case strings.Contains(q, "course"):
		return "course_insights"
	case strings.Contains(q, "club") || strings.Contains(q, "shot") || strings.Contains(q, "slice") || strings.Contains(q, "hook"):
		return "get_shot_recommendations"
	}
	return "search_golfpedia"
}

// MockEmbedder hashes text into a fixed-size unit vector.
type MockEmbedder struct {
	Dim int
}

const defaultMockDim = 384

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	dim := m.Dim
	if dim <= 0 {
		dim = defaultMockDim
	}
	vec := make([]float32, dim)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(w))
		vec[h.Sum32()%uint32(dim)] += 1
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec, nil
	}
	n := float32(math.Sqrt(norm))
	for i := range vec {
		vec[i] /= n
	}
	return vec, nil
}
