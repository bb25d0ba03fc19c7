// Package identity verifies access tokens against the external identity
// provider's introspection endpoint.
package identity

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/Zedster07/StreetBaller/internal/domain/user"
	"github.com/Zedster07/StreetBaller/internal/platform/logging"
	"github.com/Zedster07/StreetBaller/internal/platform/resilience"
	"github.com/Zedster07/StreetBaller/internal/usecase"
)

var errIntrospectTransient = crerr.New("identity introspection transient failure")

const (
	defaultTimeout        = 5 * time.Second
	defaultCacheTTL       = 30 * time.Second
	defaultCacheEntries   = 4096
	defaultIntrospectPath = "/v1/auth/introspect"
)

type ClientConfig struct {
	BaseURL        string
	IntrospectPath string
	AdminKey       string
	Timeout        time.Duration
	CacheTTL       time.Duration
	CacheEntries   int
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client calls the provider's token introspection endpoint and caches
// positive verdicts for a short TTL so hot tokens do not hit the network
// on every request.
type Client struct {
	http           *fasthttp.Client
	introspectURL  string
	adminKey       string
	timeout        time.Duration
	cache          *principalCache
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	logger         *logging.Logger
}

func NewClient(cfg ClientConfig, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	path := cfg.IntrospectPath
	if path == "" {
		path = defaultIntrospectPath
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	maxEntries := cfg.CacheEntries
	if maxEntries <= 0 {
		maxEntries = defaultCacheEntries
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		introspectURL:  buildURL(cfg.BaseURL, path),
		adminKey:       cfg.AdminKey,
		timeout:        timeout,
		cache:          newPrincipalCache(ttl, maxEntries),
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		logger:         logger,
	}
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// VerifyAccessToken resolves the principal behind an opaque access token.
// Inactive or unknown tokens map to usecase.ErrUnauthorized; provider
// outages map to usecase.ErrDependencyUnavailable so callers can answer 503.
func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: missing access token", usecase.ErrUnauthorized)
	}
	if err := ctx.Err(); err != nil {
		return user.Principal{}, err
	}

	cacheKey := hashToken(token)
	if principal, ok := c.cache.Get(cacheKey); ok {
		return principal, nil
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "identity circuit breaker rejected request", "state", c.breaker.State())
			return user.Principal{}, fmt.Errorf("%w: identity provider circuit open", usecase.ErrDependencyUnavailable)
		}
	}

	principal, err := c.introspect(ctx, token)
	if c.circuitEnabled {
		if isCircuitFailure(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		if isCircuitFailure(err) {
			c.logger.WarnContext(ctx, "identity introspection unavailable", "error", err)
			return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return user.Principal{}, err
	}

	c.cache.Set(cacheKey, principal)

	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)

	payload, err := sonic.Marshal(map[string]string{"token": token})
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "marshal introspect request")
	}
	_, _ = body.Write(payload)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.introspectURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("x-admin-key", c.adminKey)
	req.SetBody(body.B)

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		return user.Principal{}, crerr.Wrapf(errIntrospectTransient, "call introspect endpoint: %v", err)
	}

	switch status := resp.StatusCode(); {
	case status == fasthttp.StatusOK:
	case status == fasthttp.StatusUnauthorized:
		return user.Principal{}, fmt.Errorf("%w: token rejected by identity provider", usecase.ErrUnauthorized)
	default:
		// Forbidden here means our admin key is bad, not the caller's
		// token, so it counts as a provider failure.
		return user.Principal{}, crerr.Wrapf(errIntrospectTransient, "introspect endpoint returned status %d", status)
	}

	var parsed introspectResponse
	if err := sonic.Unmarshal(resp.Body(), &parsed); err != nil {
		return user.Principal{}, crerr.Wrapf(errIntrospectTransient, "decode introspect response: %v", err)
	}
	if !parsed.Active || parsed.UserID == "" {
		return user.Principal{}, fmt.Errorf("%w: token is not active", usecase.ErrUnauthorized)
	}

	return user.Principal{
		UserID: parsed.UserID,
		Email:  parsed.Email,
	}, nil
}
