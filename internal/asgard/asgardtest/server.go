// Package asgardtest provides a scripted Asgard deployment API for tests.
package asgardtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/yz4230/asgard-console/internal/entity"
)

// Request is a request the fake server received.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   string
}

type Server struct {
	*httptest.Server

	mu          sync.Mutex
	requests    []Request
	deployments map[string][]*entity.Deployment
	shows       map[string]int
	prepared    map[string]string
	images      []entity.Image
	startID     string
	rejection   json.RawMessage
	failures    map[string]int
}

// NewServer starts a fake server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	s := &Server{
		deployments: map[string][]*entity.Deployment{},
		shows:       map[string]int{},
		prepared:    map[string]string{},
		failures:    map[string]int{},
		startID:     "1",
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(s.record)

	e.GET("/deployment/show/:file", s.show)
	e.GET("/deployment/cancel/:file", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{})
	})
	e.POST("/deployment/proceed", s.judge)
	e.POST("/deployment/rollback", s.judge)
	e.GET("/deployment/prepare/:cluster", s.prepare)
	e.POST("/deployment/start", s.start)
	e.GET("/deployment/allAmis/", func(c echo.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return c.JSON(http.StatusOK, s.images)
	})

	s.Server = httptest.NewServer(e)
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the root to configure clients with.
func (s *Server) BaseURL() string { return s.URL + "/" }

// QueueDeployment scripts the snapshots returned for id, one per show request.
// The last snapshot keeps being returned once the queue is drained.
func (s *Server) QueueDeployment(id string, snapshots ...*entity.Deployment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deployments[id] = append(s.deployments[id], snapshots...)
}

// FailShows makes the next n show requests for id answer 503.
func (s *Server) FailShows(id string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[id] = n
}

// Shows returns how many show requests were received for id.
func (s *Server) Shows(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shows[id]
}

// SetPrepared sets the raw prepare response for a cluster.
func (s *Server) SetPrepared(cluster, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prepared[cluster] = body
}

func (s *Server) SetImages(images []entity.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = images
}

// SetStartID sets the id handed out for the next started deployment.
func (s *Server) SetStartID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startID = id
}

// RejectStart makes start answer 422 with the given validationErrors.
func (s *Server) RejectStart(validationErrors any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejection, _ = json.Marshal(validationErrors)
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request matching method and path.
func (s *Server) LastRequest(method, path string) (Request, bool) {
	reqs := s.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].Path == path {
			return reqs[i], true
		}
	}
	return Request{}, false
}

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		body, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(strings.NewReader(string(body)))
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: req.Method,
			Path:   req.URL.Path,
			Query:  req.URL.RawQuery,
			Body:   string(body),
		})
		s.mu.Unlock()
		return next(c)
	}
}

func (s *Server) show(c echo.Context) error {
	id := strings.TrimSuffix(c.Param("file"), ".json")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.shows[id]++
	if s.failures[id] > 0 {
		s.failures[id]--
		return c.String(http.StatusServiceUnavailable, "unavailable")
	}
	queue := s.deployments[id]
	if len(queue) == 0 {
		return c.String(http.StatusNotFound, "no deployment "+id)
	}
	d := queue[0]
	if len(queue) > 1 {
		s.deployments[id] = queue[1:]
	}
	return c.JSON(http.StatusOK, d)
}

func (s *Server) judge(c echo.Context) error {
	var body struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	if err := c.Bind(&body); err != nil || body.ID == "" {
		return c.NoContent(http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, map[string]any{})
}

func (s *Server) prepare(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.prepared[c.Param("cluster")]
	if !ok {
		return c.String(http.StatusNotFound, "no cluster "+c.Param("cluster"))
	}
	return c.JSONBlob(http.StatusOK, []byte(body))
}

func (s *Server) start(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rejection != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]json.RawMessage{"validationErrors": s.rejection})
	}
	return c.JSON(http.StatusOK, map[string]string{"deploymentId": s.startID})
}
