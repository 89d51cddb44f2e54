package golfcourse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchAndCourse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Key k", r.Header.Get("Authorization"))
		assert.Equal(t, "pebble beach", r.URL.Query().Get("search_query"))
		_, _ = w.Write([]byte(`{"courses":[{"id":42,"course_name":"Links","club_name":"Pebble"}]}`))
	})
	mux.HandleFunc("/courses/42", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"course":{"id":42,"location":{"address":"Somewhere"},"tees":{"male":[{"tee_name":"Blue","course_rating":"75.5","slope_rating":144,"total_yards":6828,"par_total":72}],"female":[{"tee_name":"Red"}]}}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New("k", srv.URL, time.Second)
	courses, err := c.Search(context.Background(), "pebble beach")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "42", courses[0].ID.String())

	course, err := c.Course(context.Background(), "42")
	require.NoError(t, err)
	tees := course.Tees.All()
	require.Len(t, tees, 2)
	assert.Equal(t, "Blue", tees[0].TeeName.String())
	assert.Equal(t, "75.5", tees[0].CourseRating.String())
	assert.Equal(t, "144", tees[0].SlopeRating.String())
	assert.Equal(t, "N/A", tees[1].ParTotal.Or("N/A"))
	assert.Equal(t, "Somewhere", course.Location.Address)
}

func TestCourseIgnoresOddlyTypedNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"course":{"id":"abc","club_name":7,"course_name":{"en":"Links"},"location":{"address":"Somewhere"},"tees":{"male":[{"tee_name":1,"par_total":72}]}}}`))
	}))
	defer srv.Close()

	course, err := New("k", srv.URL, time.Second).Course(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "Somewhere", course.Location.Address)
	tees := course.Tees.All()
	require.Len(t, tees, 1)
	assert.Equal(t, "1", tees[0].TeeName.String())
	assert.Equal(t, "72", tees[0].ParTotal.String())
}

func TestErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search" {
			_, _ = w.Write([]byte(`<html>`))
			return
		}
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New("k", srv.URL, time.Second)
	_, err := c.Search(context.Background(), "x")
	var de *DecodeError
	assert.ErrorAs(t, err, &de)

	_, err = c.Course(context.Background(), "1")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.Contains(t, se.Error(), "429 Too Many Requests")
	assert.Contains(t, se.Error(), "quota exceeded")
}

func TestValueUnmarshal(t *testing.T) {
	var v struct {
		A, B, C Value
	}
	require.NoError(t, json.Unmarshal([]byte(`{"A":"x","B":12.5,"C":null}`), &v))
	assert.Equal(t, Value("x"), v.A)
	assert.Equal(t, Value("12.5"), v.B)
	assert.Equal(t, "dflt", v.C.Or("dflt"))
}
