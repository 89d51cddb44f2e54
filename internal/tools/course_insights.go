package tools

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/models"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/providers/golfcourse"
)

// CourseAPI is the subset of the course client the tool needs.
type CourseAPI interface {
	Search(ctx context.Context, query string) ([]golfcourse.CourseSummary, error)
	Course(ctx context.Context, id string) (*golfcourse.Course, error)
}

// CourseInsightsTool looks up a course and reports the first available tee.
// Failures carry readable fallback text.
type CourseInsightsTool struct {
	API CourseAPI
}

func (t *CourseInsightsTool) ID() models.ToolID { return models.ToolCourseInsights }

func (t *CourseInsightsTool) Execute(ctx context.Context, query string) (string, error) {
	log := zerolog.Ctx(ctx).With().Str("tool", string(t.ID())).Logger()
	log.Debug().Str("query", query).Msg("tool called")

	notFound := fmt.Sprintf("No courses found for query '%s'.", query)
	if strings.TrimSpace(query) == "" {
		return notFound, nil
	}

	courses, err := t.API.Search(ctx, query)
	if err != nil {
		return "", t.classify(log, err)
	}
	log.Debug().Int("courses", len(courses)).Msg("course search returned")
	if len(courses) == 0 {
		return notFound, nil
	}

	for _, meta := range courses {
		course, err := t.API.Course(ctx, meta.ID.String())
		if err != nil {
			return "", t.classify(log, err)
		}
		tees := course.Tees.All()
		log.Debug().Str("course_id", meta.ID.String()).Int("tees", len(tees)).Msg("course detail returned")
		if len(tees) == 0 {
			continue
		}
		return formatCourse(meta, course, tees[0]), nil
	}
	return fmt.Sprintf("No tee data available for any course found for query '%s'.", query), nil
}

func formatCourse(meta golfcourse.CourseSummary, course *golfcourse.Course, tee golfcourse.Tee) string {
	address := "Address not available"
	if course.Location != nil && course.Location.Address != "" {
		address = course.Location.Address
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s (ID: %s)\n", meta.ClubName, meta.CourseName, meta.ID)
	fmt.Fprintf(&b, "Location: %s\n", address)
	fmt.Fprintf(&b, "Rating: %s | Slope: %s\n", tee.CourseRating.Or("N/A"), tee.SlopeRating.Or("N/A"))
	fmt.Fprintf(&b, "Yards: %s | Par: %s\n", tee.TotalYards.Or("N/A"), tee.ParTotal.Or("N/A"))
	b.WriteString("Hardest Hole: TBD\n")
	return b.String()
}

func (t *CourseInsightsTool) classify(log zerolog.Logger, err error) *Error {
	var (
		statusErr *golfcourse.StatusError
		decodeErr *golfcourse.DecodeError
		urlErr    *url.Error
	)
	var te *Error
	switch {
	case errors.As(err, &decodeErr):
		te = newError(t.ID(), KindMalformed, err)
		te.Fallback = "An unexpected error occurred: Invalid JSON"
	case errors.As(err, &statusErr), errors.As(err, &urlErr):
		te = newError(t.ID(), KindTransport, err)
		te.Fallback = fmt.Sprintf("API request failed: %v", err)
	default:
		te = newError(t.ID(), KindUnexpected, err)
		te.Fallback = fmt.Sprintf("An unexpected error occurred: %v", err)
	}
	log.Error().Err(err).Str("kind", string(te.Kind)).Msg("course lookup failed")
	return te
}
