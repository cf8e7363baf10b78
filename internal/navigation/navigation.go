package navigation

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Screen identifies which orchestrator a route mounts
type Screen string

const (
	ScreenDashboard   Screen = "dashboard"
	ScreenJobsList    Screen = "jobs"
	ScreenJobDetails  Screen = "job_details"
	ScreenConnections Screen = "connections"
	ScreenNotFound    Screen = "not_found"
)

// Tab is the highlighted navigation tab
type Tab string

const (
	TabDashboard   Tab = "dashboard"
	TabJobs        Tab = "jobs"
	TabConnections Tab = "connections"
)

const (
	patternDashboard   = "/"
	patternJobs        = "/jobs"
	patternJobDetails  = "/jobs/{id:[0-9]+}"
	patternConnections = "/connections"
)

// Selection is the outcome of resolving a route path
type Selection struct {
	Screen Screen `json:"screen"`
	JobID  int64  `json:"job_id,omitempty"`
	Tab    Tab    `json:"tab"`
	Route  string `json:"route"`
}

var routes = func() *chi.Mux {
	noop := func(http.ResponseWriter, *http.Request) {}

	r := chi.NewRouter()
	r.Get(patternDashboard, noop)
	r.Get(patternJobs, noop)
	r.Get(patternJobDetails, noop)
	r.Get(patternConnections, noop)
	return r
}()

// Select resolves path to the screen it mounts. Query strings and a trailing
// slash are ignored; anything unknown selects ScreenNotFound.
func Select(path string) Selection {
	route := Normalize(path)
	notFound := Selection{Screen: ScreenNotFound, Tab: TabDashboard, Route: route}

	rctx := chi.NewRouteContext()
	if !routes.Match(rctx, http.MethodGet, route) {
		return notFound
	}

	switch rctx.RoutePattern() {
	case patternDashboard:
		return Selection{Screen: ScreenDashboard, Tab: TabDashboard, Route: route}
	case patternJobs:
		return Selection{Screen: ScreenJobsList, Tab: TabJobs, Route: route}
	case patternJobDetails:
		id, err := strconv.ParseInt(rctx.URLParam("id"), 10, 64)
		if err != nil {
			return notFound
		}
		return Selection{Screen: ScreenJobDetails, JobID: id, Tab: TabJobs, Route: route}
	case patternConnections:
		return Selection{Screen: ScreenConnections, Tab: TabConnections, Route: route}
	}

	return notFound
}

// Normalize strips the query string, fragment and trailing slash from path
func Normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}
