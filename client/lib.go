// Package client implements a wrapper for the REST and WebSocket API of a Sirius node.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ReneKroon/ttlcache/v2"
	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"github.com/iotaledger/hive.go/logger"
)

var (
	// ErrBadRequest defines the "bad request" error.
	ErrBadRequest = errors.New("bad request")
	// ErrInternalServerError defines the "internal server error" error.
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound defines the "not found" error.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized defines the "unauthorized" error.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict defines the "conflict" error.
	ErrConflict = errors.New("conflict")
	// ErrUnknownError defines the "unknown error" error.
	ErrUnknownError = errors.New("unknown error")
)

const (
	contentTypeJSON = "application/json"

	// DefaultTimeout replaces a non-positive timeout passed to NewRestyTransport.
	DefaultTimeout = 10 * time.Second
)

// region Transport ////////////////////////////////////////////////////////////////////////////////////////////////////

// Transport sends a request to a node and returns the body of a successful reply. A non-2xx reply is reported as an
// error wrapping one of the HTTP sentinel errors of this package.
type Transport interface {
	Send(ctx context.Context, method string, path string, body interface{}) ([]byte, error)
}

// RestyTransport is a Transport over a resty client.
type RestyTransport struct {
	client *resty.Client
}

// NewRestyTransport returns a RestyTransport for the node at baseURL.
func NewRestyTransport(baseURL string, timeout time.Duration) *RestyTransport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &RestyTransport{
		client: resty.New().SetHostURL(baseURL).SetTimeout(timeout).SetHeader("Accept", contentTypeJSON),
	}
}

// BaseURL returns the url of the node.
func (r *RestyTransport) BaseURL() string {
	return r.client.HostURL
}

// Send sends a request and returns the body of the reply.
func (r *RestyTransport) Send(ctx context.Context, method string, path string, body interface{}) ([]byte, error) {
	request := r.client.R().SetContext(ctx)
	if body != nil {
		request.SetHeader("Content-Type", contentTypeJSON).SetBody(body)
	}

	response, err := request.Execute(method, path)
	if err != nil {
		return nil, errors.Errorf("failed to send %s request to %s: %w", method, path, err)
	}

	return interpretBody(response.StatusCode(), path, response.Body())
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func interpretBody(statusCode int, path string, body []byte) ([]byte, error) {
	if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		return body, nil
	}

	errRes := &errorResponse{}
	if err := json.Unmarshal(body, errRes); err != nil || errRes.Message == "" {
		errRes.Message = string(body)
	}

	switch statusCode {
	case http.StatusInternalServerError:
		return nil, errors.Errorf("%w: %s", ErrInternalServerError, errRes.Message)
	case http.StatusNotFound:
		return nil, errors.Errorf("%w: %s", ErrNotFound, path)
	case http.StatusBadRequest:
		return nil, errors.Errorf("%w: %s", ErrBadRequest, errRes.Message)
	case http.StatusUnauthorized:
		return nil, errors.Errorf("%w: %s", ErrUnauthorized, errRes.Message)
	case http.StatusConflict:
		return nil, errors.Errorf("%w: %s", ErrConflict, errRes.Message)
	}

	return nil, errors.Errorf("%w: status %d: %s", ErrUnknownError, statusCode, errRes.Message)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region SiriusAPI ////////////////////////////////////////////////////////////////////////////////////////////////////

// Option configures a SiriusAPI.
type Option func(api *SiriusAPI)

// WithLogger sets the logger of the SiriusAPI.
func WithLogger(log *logger.Logger) Option {
	return func(api *SiriusAPI) {
		api.log = log
	}
}

// WithMetrics sets the metrics the SiriusAPI reports to.
func WithMetrics(metrics *Metrics) Option {
	return func(api *SiriusAPI) {
		api.metrics = metrics
	}
}

// WithCacheTTL sets how long the generation hash and the network type are cached. Zero caches them forever.
func WithCacheTTL(ttl time.Duration) Option {
	return func(api *SiriusAPI) {
		api.cacheTTL = ttl
	}
}

// SiriusAPI is an API wrapper over the web API of a Sirius node.
type SiriusAPI struct {
	transport Transport
	cache     *ttlcache.Cache
	cacheTTL  time.Duration
	metrics   *Metrics
	log       *logger.Logger
}

// NewSiriusAPI returns a new *SiriusAPI that talks to the node through transport.
func NewSiriusAPI(transport Transport, opts ...Option) (*SiriusAPI, error) {
	api := &SiriusAPI{
		transport: transport,
		cache:     ttlcache.NewCache(),
	}
	for _, opt := range opts {
		opt(api)
	}

	if api.cacheTTL > 0 {
		if err := api.cache.SetTTL(api.cacheTTL); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	api.cache.SkipTTLExtensionOnHit(true)

	return api, nil
}

// NewSiriusAPIFromURL returns a new *SiriusAPI using a RestyTransport for the node at baseURL.
func NewSiriusAPIFromURL(baseURL string, opts ...Option) (*SiriusAPI, error) {
	return NewSiriusAPI(NewRestyTransport(baseURL, DefaultTimeout), opts...)
}

// Close releases the cache of the API.
func (api *SiriusAPI) Close() {
	if err := api.cache.Close(); err != nil && api.log != nil {
		api.log.Errorw("Failed to close API cache", "err", err)
	}
}

// do sends a request to route, formatted with routeArgs, and decodes the reply into resObj. Metrics are labelled with the
// unformatted route.
func (api *SiriusAPI) do(ctx context.Context, method string, route string, reqObj interface{}, resObj interface{}, routeArgs ...interface{}) error {
	path := route
	if len(routeArgs) > 0 {
		path = fmt.Sprintf(route, routeArgs...)
	}

	body, err := api.transport.Send(ctx, method, path, reqObj)
	api.metrics.countRequest(route, err)
	if err != nil {
		if api.log != nil {
			api.log.Debugw("Request failed", "method", method, "path", path, "err", err)
		}
		return err
	}

	if resObj == nil {
		return nil
	}

	if err = json.Unmarshal(body, resObj); err != nil {
		return errors.Errorf("failed to decode reply of %s: %w", path, err)
	}

	return nil
}

// cached returns the value stored under key or stores and returns the result of load.
func (api *SiriusAPI) cached(key string, load func() (interface{}, error)) (interface{}, error) {
	value, err := api.cache.Get(key)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, ttlcache.ErrNotFound) {
		return nil, errors.WithStack(err)
	}

	if value, err = load(); err != nil {
		return nil, err
	}
	if err = api.cache.Set(key, value); err != nil {
		return nil, errors.WithStack(err)
	}

	return value, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
