package asgard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/imroc/req/v3"
	"github.com/rs/zerolog"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/utils"
)

// Deployment templates known to the server. The console passes them through as is.
const (
	TemplateCreateAndCleanUpPreviousAsg = "CreateAndCleanUpPreviousAsg"
	TemplateCreateJudgeAndCleanUp       = "CreateJudgeAndCleanUp"
)

// errorSnippetLimit caps how much of an error body ends up in an APIError.
const errorSnippetLimit = 512

// Client talks to the deployment endpoints of an Asgard server.
type Client interface {
	ShowDeployment(ctx context.Context, id string) (*entity.Deployment, error)
	CancelDeployment(ctx context.Context, id string) error
	JudgeDeployment(ctx context.Context, judgment entity.Judgment, id, token string) error
	PrepareDeployment(ctx context.Context, clusterName, templateName string) (*entity.PreparedDeployment, error)
	StartDeployment(ctx context.Context, request *entity.DeploymentRequest) (string, error)
	ListImages(ctx context.Context) ([]entity.Image, error)
}

type Config struct {
	// BaseURL is the region root of the server, e.g. http://asgard:8080/us-east-1/.
	BaseURL string
	Timeout time.Duration
	Logger  zerolog.Logger
}

type clientImpl struct {
	baseURL string
	http    *req.Client
	log     zerolog.Logger
}

func NewClient(cfg Config) Client {
	c := req.C().
		SetUserAgent("asgard-console").
		SetCommonHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	return &clientImpl{
		baseURL: utils.EnsureSuffix(cfg.BaseURL, "/"),
		http:    c,
		log:     cfg.Logger,
	}
}

// ShowDeployment implements Client.
func (c *clientImpl) ShowDeployment(ctx context.Context, id string) (*entity.Deployment, error) {
	resp, err := c.send(ctx, http.MethodGet, "deployment/show/"+url.PathEscape(id)+".json", nil)
	if err != nil {
		return nil, err
	}
	var d entity.Deployment
	if err := json.Unmarshal(resp.Bytes(), &d); err != nil {
		return nil, fmt.Errorf("decode deployment %s: %w", id, err)
	}
	return &d, nil
}

// CancelDeployment implements Client. The response body is ignored.
func (c *clientImpl) CancelDeployment(ctx context.Context, id string) error {
	_, err := c.send(ctx, http.MethodGet, "deployment/cancel/"+url.PathEscape(id)+".json", nil)
	return err
}

type judgmentBody struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// JudgeDeployment implements Client. The token is not checked here; the server
// rejects stale ones.
func (c *clientImpl) JudgeDeployment(ctx context.Context, judgment entity.Judgment, id, token string) error {
	if judgment != entity.JudgmentProceed && judgment != entity.JudgmentRollback {
		return fmt.Errorf("%w: judgment %q", entity.ErrInvalid, judgment)
	}
	_, err := c.send(ctx, http.MethodPost, "deployment/"+string(judgment), &judgmentBody{ID: id, Token: token})
	return err
}

// PrepareDeployment implements Client.
func (c *clientImpl) PrepareDeployment(ctx context.Context, clusterName, templateName string) (*entity.PreparedDeployment, error) {
	query := url.Values{}
	query.Set("includeEnvironment", "true")
	query.Set("deploymentTemplateName", templateName)
	path := "deployment/prepare/" + url.PathEscape(clusterName) + "?" + query.Encode()

	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var p entity.PreparedDeployment
	if err := json.Unmarshal(resp.Bytes(), &p); err != nil {
		return nil, fmt.Errorf("decode prepared deployment for %s: %w", clusterName, err)
	}
	return &p, nil
}

type startResponse struct {
	DeploymentID     json.RawMessage `json:"deploymentId"`
	ValidationErrors json.RawMessage `json:"validationErrors"`
}

// StartDeployment implements Client. A 422 answer becomes *entity.ValidationError.
func (c *clientImpl) StartDeployment(ctx context.Context, request *entity.DeploymentRequest) (string, error) {
	resp, err := c.send(ctx, http.MethodPost, "deployment/start", request)
	if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity {
		var body startResponse
		if jsonErr := json.Unmarshal(resp.Bytes(), &body); jsonErr == nil && len(body.ValidationErrors) > 0 {
			return "", &entity.ValidationError{Details: body.ValidationErrors}
		}
	}
	if err != nil {
		return "", err
	}

	var body startResponse
	if err := json.Unmarshal(resp.Bytes(), &body); err != nil {
		return "", fmt.Errorf("decode start response: %w", err)
	}
	id, err := rawID(body.DeploymentID)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListImages implements Client.
func (c *clientImpl) ListImages(ctx context.Context) ([]entity.Image, error) {
	resp, err := c.send(ctx, http.MethodGet, "deployment/allAmis/", nil)
	if err != nil {
		return nil, err
	}
	var images []entity.Image
	if err := json.Unmarshal(resp.Bytes(), &images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	return images, nil
}

// send issues one request. Non-2xx answers are returned together with an *entity.APIError
// so callers can still look at the response.
func (c *clientImpl) send(ctx context.Context, method, path string, body any) (*req.Response, error) {
	u := c.baseURL + path
	r := c.http.R().SetContext(ctx)
	if body != nil {
		r.SetBodyJsonMarshal(body)
	}

	start := time.Now()
	resp, err := r.Send(method, u)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, u, err)
	}
	c.log.Debug().
		Str("method", method).
		Str("url", u).
		Int("status", resp.StatusCode).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("asgard request")

	if !resp.IsSuccessState() {
		snippet := resp.String()
		if len(snippet) > errorSnippetLimit {
			snippet = snippet[:errorSnippetLimit]
		}
		return resp, &entity.APIError{Method: method, URL: u, StatusCode: resp.StatusCode, Body: snippet}
	}
	return resp, nil
}

// rawID accepts the deployment id as a JSON string or number.
func rawID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", fmt.Errorf("%w: start response without deploymentId", entity.ErrInternal)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("decode deploymentId: %w", err)
	}
	return n.String(), nil
}
