package resthttp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const headerKeyRequestID = "X-Request-Id"

var runOnce sync.Once
var restyClient *resty.Client

// Client shared resty client
func Client() *resty.Client {
	runOnce.Do(func() {
		restyClient = resty.New().
			SetHeader("Content-Type", "application/json").
			SetHeader("Charset", "utf-8").
			SetTimeout(10 * time.Second)
	})

	return restyClient
}

// Request new resty request
func Request(ctx context.Context) *resty.Request {
	return Client().R().SetContext(ctx)
}

// WithToken resty request carrying a bearer token; an empty token
// sends a plain request
func WithToken(ctx context.Context, token string) *resty.Request {
	r := Request(ctx)
	if token != "" {
		r = r.SetAuthToken(token)
	}

	return r
}

// WithRequestID resty request with request id
func WithRequestID(ctx context.Context, requestID string) *resty.Request {
	return Request(ctx).SetHeader(headerKeyRequestID, requestID)
}

// Execute do network request
func Execute(request *resty.Request, method, url string, body interface{}, resp interface{}) (int, error) {
	logrus.Debugln("request:", method, url)

	if body != nil {
		request = request.SetBody(body)
	}

	r, err := request.Execute(strings.ToUpper(method), url)
	if err != nil {
		return r.StatusCode(), err
	}

	logrus.Debugln("response status:", r.Status())

	return r.StatusCode(), ParseResponse(r, resp)
}

// ParseResponse decode the response body into obj; a non-2xx status
// surfaces the raw body as the error
func ParseResponse(r *resty.Response, obj interface{}) error {
	if !r.IsSuccess() {
		return errors.New(string(r.Body()))
	}

	if obj != nil {
		return json.Unmarshal(r.Body(), obj)
	}

	return nil
}
