package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/models"
)

// Tool answers one category of golf query from the raw query text.
// "No results" outcomes are returned as text, not errors.
type Tool interface {
	ID() models.ToolID
	Execute(ctx context.Context, query string) (string, error)
}

// FailurePolicy tells the executor what to do with a failed invocation.
type FailurePolicy int

const (
	// Abort ends the request.
	Abort FailurePolicy = iota
	// DegradeToText continues the pipeline with the error's fallback text.
	DegradeToText
)

func (p FailurePolicy) String() string {
	if p == DegradeToText {
		return "degrade"
	}
	return "abort"
}

type Entry struct {
	ID          models.ToolID
	Tool        Tool
	Description string
	OnFailure   FailurePolicy
}

// Registry is an ordered, read-only mapping from tool id to entry.
// It is safe for concurrent use once constructed.
type Registry struct {
	order []models.ToolID
	tools map[models.ToolID]Entry
}

// NewRegistry builds a registry from entries in order. Every id in
// models.AllToolIDs must be present exactly once.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{tools: make(map[models.ToolID]Entry, len(entries))}
	for _, e := range entries {
		if !e.ID.Valid() {
			return nil, fmt.Errorf("register %q: %w", e.ID, models.ErrUnknownTool)
		}
		if e.Tool == nil {
			return nil, fmt.Errorf("register %q: nil tool", e.ID)
		}
		if e.Tool.ID() != e.ID {
			return nil, fmt.Errorf("register %q: tool reports id %q", e.ID, e.Tool.ID())
		}
		if _, dup := r.tools[e.ID]; dup {
			return nil, fmt.Errorf("register %q: duplicate entry", e.ID)
		}
		r.tools[e.ID] = e
		r.order = append(r.order, e.ID)
	}
	var missing []string
	for _, id := range models.AllToolIDs() {
		if _, ok := r.tools[id]; !ok {
			missing = append(missing, string(id))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("registry missing tools: %s", strings.Join(missing, ", "))
	}
	return r, nil
}

// Get returns the entry for id, if registered.
func (r *Registry) Get(id models.ToolID) (Entry, bool) {
	e, ok := r.tools[id]
	return e, ok
}

// Lookup is Get with a models.ErrUnknownTool error on miss.
func (r *Registry) Lookup(id models.ToolID) (Entry, error) {
	e, ok := r.Get(id)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", models.ErrUnknownTool, string(id))
	}
	return e, nil
}

// Entries returns a copy of the entries in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tools[id])
	}
	return out
}

// IsUnknownTool reports whether err came from a registry miss.
func IsUnknownTool(err error) bool {
	return errors.Is(err, models.ErrUnknownTool)
}
