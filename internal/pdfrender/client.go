package pdfrender

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/batiplan/batiplan/internal/conf"
)

// ErrUnavailable marks a failed renderer health check. Generation is never
// attempted once the check fails, and no retry happens.
var ErrUnavailable = errors.New("pdf renderer unavailable")

// Client talks to the remote HTML to PDF service (Gotenberg compatible).
type Client struct {
	rc *resty.Client
}

func NewClient(cfg conf.Renderer) *Client {
	rc := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	return &Client{rc: rc}
}

func (c *Client) request(ctx context.Context, method, path string, callback func(req *resty.Request)) (*resty.Response, error) {
	req := c.rc.R().SetContext(ctx)
	if callback != nil {
		callback(req)
	}
	res, err := req.Execute(method, path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return res, nil
}

type healthResp struct {
	Status string `json:"status"`
}

// Health probes the service. Any transport error, non-200 or a reported
// status other than "up" makes the renderer unavailable.
func (c *Client) Health(ctx context.Context) error {
	var hr healthResp
	res, err := c.request(ctx, http.MethodGet, "/health", func(req *resty.Request) {
		req.SetResult(&hr)
	})
	if err != nil {
		return errors.Wrapf(ErrUnavailable, "health check: %s", err.Error())
	}
	if res.StatusCode() != http.StatusOK {
		return errors.Wrapf(ErrUnavailable, "health check status %d", res.StatusCode())
	}
	if hr.Status != "" && hr.Status != "up" {
		return errors.Wrapf(ErrUnavailable, "health status %q", hr.Status)
	}
	return nil
}

// RenderHTML hands the document to the chromium conversion route and returns
// the PDF byte stream. Landscape A4, matching the planning grid layout.
func (c *Client) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	res, err := c.request(ctx, http.MethodPost, "/forms/chromium/convert/html", func(req *resty.Request) {
		req.SetFileReader("files", "index.html", strings.NewReader(html)).
			SetFormData(map[string]string{
				"paperWidth":   "11.7",
				"paperHeight":  "8.27",
				"marginTop":    "0.3",
				"marginBottom": "0.3",
			})
	})
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, errors.Errorf("pdf generation failed: status %d: %s", res.StatusCode(), res.String())
	}
	return res.Body(), nil
}
