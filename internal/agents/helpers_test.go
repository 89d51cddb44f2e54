package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/models"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/tools"
)

var testDescriptions = map[models.ToolID]string{
	models.ToolProStats:            "if it compares or asks about player stats",
	models.ToolCourseInsights:      "if it's asking about a specific golf course",
	models.ToolShotRecommendations: "if it's asking about club selection, shot technique, or avoiding certain shot patterns",
	models.ToolSearchGolfpedia:     "for all other general golf knowledge",
}

// fakeTool returns out or err and counts calls.
type fakeTool struct {
	id    models.ToolID
	out   string
	err   error
	calls int
}

func (f *fakeTool) ID() models.ToolID { return f.id }

func (f *fakeTool) Execute(context.Context, string) (string, error) {
	f.calls++
	return f.out, f.err
}

func testRegistryWith(t *testing.T, override map[models.ToolID]*fakeTool, policies map[models.ToolID]tools.FailurePolicy) *tools.Registry {
	t.Helper()
	var entries []tools.Entry
	for _, id := range models.AllToolIDs() {
		ft, ok := override[id]
		if !ok {
			ft = &fakeTool{id: id, out: string(id) + " result"}
		}
		entries = append(entries, tools.Entry{ID: id, Tool: ft, Description: testDescriptions[id], OnFailure: policies[id]})
	}
	r, err := tools.NewRegistry(entries...)
	require.NoError(t, err)
	return r
}

func testRegistry(t *testing.T) *tools.Registry {
	return testRegistryWith(t, nil, nil)
}
