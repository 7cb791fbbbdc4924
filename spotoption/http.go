package spotoption

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/healthimation/go-glitch/glitch"
)

// Error codes
const (
	ErrorRequestCreation  = "CANT_CREATE_REQUEST"
	ErrorDecodingResponse = "ERROR_DECODING_RESPONSE"
)

// Transport posts form-encoded requests to the SpotOption endpoint.
//
// Implementations return ERROR_CONNECTION_FAILURE when the endpoint cannot be
// reached. Any HTTP response, including 4xx and 5xx, is returned as status and
// body without an error: the vendor reports failures inside the body.
type Transport interface {
	PostForm(ctx context.Context, endpoint string, form url.Values, headers http.Header) (int, []byte, glitch.DataError)
}

// BeforeFunc runs before a request is sent.
type BeforeFunc func(ctx context.Context, r *http.Request) context.Context

// AfterFunc runs once a request completes; resp is nil on connection failure.
type AfterFunc func(ctx context.Context, r *http.Request, resp *http.Response) context.Context

type httpTransport struct {
	client     *http.Client
	beforeFunc BeforeFunc
	afterFunc  AfterFunc
}

// NewTransport creates a Transport backed by net/http. A nil httpClient gets a
// client using http.DefaultTransport and the given timeout.
func NewTransport(httpClient *http.Client, timeout time.Duration, beforeFunc BeforeFunc, afterFunc AfterFunc) Transport {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: http.DefaultTransport,
		}
	}
	return &httpTransport{client: httpClient, beforeFunc: beforeFunc, afterFunc: afterFunc}
}

func (t *httpTransport) PostForm(ctx context.Context, endpoint string, form url.Values, headers http.Header) (int, []byte, glitch.DataError) {
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, nil, glitch.NewDataError(err, ErrorRequestCreation, "Error creating request object")
	}

	req.Header = headers.Clone()
	if req.Header == nil {
		req.Header = http.Header{}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if t.beforeFunc != nil {
		ctx = t.beforeFunc(ctx, req)
	}

	resp, err := t.client.Do(req)

	if t.afterFunc != nil {
		t.afterFunc(ctx, req, resp)
	}

	if err != nil {
		return 0, nil, glitch.NewDataError(err, ErrorConnectionFailure, "Could not make the request")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	ret, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, glitch.NewDataError(err, ErrorDecodingResponse, "Could not read response body")
	}

	return resp.StatusCode, ret, nil
}
