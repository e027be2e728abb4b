package wcl

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/getsentry/sentry-go"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"wow_check/cache"
	"wow_check/metrics"
	"wow_check/share"
	"wow_check/wcl/oauth"
)

const (
	maxRetries = 3
	retryDelay = 3 * time.Second

	DefaultAPIURL   = "https://www.warcraftlogs.com/api/v2/client"
	DefaultTokenURL = "https://www.warcraftlogs.com/oauth/token"
)

type Options struct {
	ClientID     string
	ClientSecret string
	APIURL       string // empty = DefaultAPIURL
	TokenURL     string // empty = DefaultTokenURL
	NoCache      bool
}

// Client executes GraphQL queries against the analytics service. Responses
// are cached on disk keyed by the rendered query text; reports are immutable
// upstream so entries never expire.
type Client struct {
	oauth   *oauth.Client
	apiURL  string
	noCache bool
}

func New(opt Options) *Client {
	if opt.APIURL == "" {
		opt.APIURL = DefaultAPIURL
	}
	if opt.TokenURL == "" {
		opt.TokenURL = DefaultTokenURL
	}

	return &Client{
		oauth:   oauth.New(opt.ClientID, opt.ClientSecret, opt.TokenURL),
		apiURL:  opt.APIURL,
		noCache: opt.NoCache,
	}
}

var (
	strBufPool = sync.Pool{
		New: func() interface{} {
			sb := new(strings.Builder)
			sb.Grow(16 * 1024)
			return sb
		},
	}
	bytBufPool = sync.Pool{
		New: func() interface{} {
			buf := new(bytes.Buffer)
			buf.Grow(16 * 1024)
			return buf
		},
	}
)

func (c *Client) query(ctx context.Context, tmpl *template.Template, tmplData interface{}, respData interface{}) error {
	name := strings.TrimSuffix(tmpl.Name(), ".tmpl")

	sb := strBufPool.Get().(*strings.Builder)
	defer strBufPool.Put(sb)

	sb.Reset()
	if err := tmpl.Execute(sb, tmplData); err != nil {
		return errors.WithStack(err)
	}
	queryString := sb.String()

	if !c.noCache {
		if cache.Response(name, queryString, respData, false) {
			metrics.CacheHits.Inc()
			return nil
		}
		metrics.CacheMisses.Inc()
	}

	var err error
	for i := 0; i < maxRetries; i++ {
		err = c.queryOnce(ctx, name, queryString, respData)

		if err == nil {
			break
		}
		if share.IsContextClosedError(err) {
			return err
		}
		if i+1 < maxRetries {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
			}
		}
	}
	if err != nil {
		metrics.APIErrors.WithLabelValues(name).Inc()
		return err
	}

	if !c.noCache {
		cache.Response(name, queryString, respData, true)
	}

	return nil
}

func (c *Client) queryOnce(ctx context.Context, name string, queryString string, respData interface{}) error {
	metrics.APIQueries.WithLabelValues(name).Inc()

	queryData := struct {
		Query string `json:"query"`
	}{
		Query: queryString,
	}

	buf := bytBufPool.Get().(*bytes.Buffer)
	defer bytBufPool.Put(buf)

	buf.Reset()
	if err := jsoniter.NewEncoder(buf).Encode(&queryData); err != nil {
		return errors.WithStack(err)
	}

	req, err := c.oauth.NewRequest(ctx, "POST", c.apiURL, buf)
	if err != nil {
		if !share.IsContextClosedError(err) {
			sentry.CaptureException(err)
			log.Warn().Err(err).Str("query", name).Msg("token request failed")
		}
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		if !share.IsContextClosedError(err) {
			sentry.CaptureException(err)
			log.Warn().Err(err).Str("query", name).Msg("api request failed")
		}
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.oauth.Reset()
	}
	if resp.StatusCode != http.StatusOK {
		log.Warn().Str("query", name).Str("status", resp.Status).Msg("api request rejected")
		return errors.Errorf("api status %s", resp.Status)
	}

	body := bytBufPool.Get().(*bytes.Buffer)
	defer bytBufPool.Put(body)

	body.Reset()
	if _, err := body.ReadFrom(resp.Body); err != nil {
		return errors.WithStack(err)
	}

	// Rate limits and query mistakes come back as 200 with an errors array.
	var probe struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := jsoniter.Unmarshal(body.Bytes(), &probe); err == nil && len(probe.Errors) > 0 {
		log.Warn().Str("query", name).Str("message", probe.Errors[0].Message).Msg("api returned an error")
		return errors.Errorf("api error: %s", probe.Errors[0].Message)
	}

	if err := jsoniter.Unmarshal(body.Bytes(), respData); err != nil {
		sentry.CaptureException(err)
		return errors.WithStack(err)
	}

	return nil
}

////////////////////////////////////////////////////////////////////////////////////////////////////

func (c *Client) ReportFights(ctx context.Context, vars ReportFightsVars) (*ReportFightsResponse, error) {
	var resp ReportFightsResponse
	if err := c.query(ctx, tmplReportFights, &vars, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ReportRoster(ctx context.Context, vars ReportRosterVars) (*ReportRosterResponse, error) {
	var resp ReportRosterResponse
	if err := c.query(ctx, tmplReportRoster, &vars, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ReportEvents(ctx context.Context, vars ReportEventsVars) (*ReportEventsResponse, error) {
	var resp ReportEventsResponse
	if err := c.query(ctx, tmplReportEvents, &vars, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ReportTable(ctx context.Context, vars ReportTableVars) (*ReportTableResponse, error) {
	var resp ReportTableResponse
	if err := c.query(ctx, tmplReportTable, &vars, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ReportActors(ctx context.Context, vars ReportActorsVars) (*ReportActorsResponse, error) {
	var resp ReportActorsResponse
	if err := c.query(ctx, tmplReportActors, &vars, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
