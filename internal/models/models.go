package models

import "errors"

// ToolID names one of the registered tools. The set is closed; see AllToolIDs.
type ToolID string

const (
	ToolProStats            ToolID = "get_pro_stats"
	ToolCourseInsights      ToolID = "course_insights"
	ToolShotRecommendations ToolID = "get_shot_recommendations"
	ToolSearchGolfpedia     ToolID = "search_golfpedia"
)

// ErrUnknownTool is returned when a label does not name a known tool.
var ErrUnknownTool = errors.New("no such tool")

// AllToolIDs returns every tool id in canonical order.
func AllToolIDs() []ToolID {
	return []ToolID{ToolProStats, ToolCourseInsights, ToolShotRecommendations, ToolSearchGolfpedia}
}

// Valid reports whether id belongs to the closed set.
func (id ToolID) Valid() bool {
	switch id {
	case ToolProStats, ToolCourseInsights, ToolShotRecommendations, ToolSearchGolfpedia:
		return true
	}
	return false
}

func (id ToolID) String() string { return string(id) }

type Stage string

const (
	StageStart        Stage = "START"
	StageRouted       Stage = "ROUTED"
	StageToolExecuted Stage = "TOOL_EXECUTED"
	StageSummarized   Stage = "SUMMARIZED"
	StageFailed       Stage = "FAILED"
)

// Terminal reports whether no further transition is possible.
func (s Stage) Terminal() bool {
	return s == StageSummarized || s == StageFailed
}

// PipelineState is owned by a single in-flight request and discarded afterwards.
type PipelineState struct {
	RequestID     string  `json:"request_id,omitempty"`
	Query         string  `json:"query"`
	Stage         Stage   `json:"stage"`
	ToolID        ToolID  `json:"tool_id,omitempty"`
	ToolResult    *string `json:"tool_result,omitempty"`
	FinalResponse *string `json:"final_response,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// NewPipelineState returns a state in START for query.
func NewPipelineState(requestID, query string) *PipelineState {
	return &PipelineState{RequestID: requestID, Query: query, Stage: StageStart}
}

// Result is one tool invocation as seen by the pipeline. Degraded is set when
// Output is fallback text standing in for a failed call.
type Result struct {
	ToolID   ToolID `json:"tool_id"`
	Output   string `json:"output"`
	Degraded bool   `json:"degraded,omitempty"`
}
