package uniprot

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestServer(handler http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(handler)
}

func TestClientDo(t *testing.T) {
	Convey("Given a client with a captured logger", t, func() {
		var logs bytes.Buffer
		client := NewClient(log.New(&logs))
		ctx := context.Background()

		Convey("When the upstream answers with JSON", func() {
			body := map[string]any{
				"primaryAccession": "P01308",
				"sequence":         map[string]any{"length": float64(110)},
				"keywords":         []any{"Hormone", "Secreted"},
			}
			srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(body)
			})
			defer srv.Close()

			result := client.Do(ctx, Request{URL: srv.URL + "/uniprotkb/P01308"})

			Convey("It should return the decoded body unchanged", func() {
				So(result.OK(), ShouldBeTrue)
				So(result.IsText, ShouldBeFalse)
				So(result.Data, ShouldResemble, any(body))
			})
		})

		Convey("When the upstream answers with a non-2xx status", func() {
			for _, status := range []int{400, 404, 429, 500, 503} {
				srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(status)
					_, _ = io.WriteString(w, "upstream said no")
				})

				var result Result
				So(func() { result = client.Do(ctx, Request{URL: srv.URL}) }, ShouldNotPanic)
				srv.Close()

				So(result.Absent(), ShouldBeTrue)
				So(result.Data, ShouldBeNil)
				So(result.Failure.Kind, ShouldEqual, KindHTTPStatus)
				So(result.Failure.StatusCode, ShouldEqual, status)
				So(result.Failure.Body, ShouldEqual, "upstream said no")
			}

			Convey("It should log the status and body", func() {
				So(logs.String(), ShouldContainSubstring, "404")
				So(logs.String(), ShouldContainSubstring, "upstream said no")
			})
		})

		Convey("When the body is not JSON", func() {
			srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, ">sp|P01308|INS_HUMAN\nMALW\n")
			})
			defer srv.Close()

			Convey("JSON format should fail with a decode failure", func() {
				result := client.Do(ctx, Request{URL: srv.URL})
				So(result.Absent(), ShouldBeTrue)
				So(result.Failure.Kind, ShouldEqual, KindDecode)
				So(result.Failure.Retryable(), ShouldBeFalse)
			})

			Convey("JSON-or-text format should fall back to the raw text", func() {
				result := client.Do(ctx, Request{URL: srv.URL, Format: FormatJSONOrText})
				So(result.OK(), ShouldBeTrue)
				So(result.IsText, ShouldBeTrue)
				So(result.Text, ShouldEqual, ">sp|P01308|INS_HUMAN\nMALW\n")
			})

			Convey("Text format should return the raw text", func() {
				result := client.Do(ctx, Request{URL: srv.URL, Format: FormatText})
				So(result.OK(), ShouldBeTrue)
				So(result.Text, ShouldEqual, ">sp|P01308|INS_HUMAN\nMALW\n")
			})
		})

		Convey("When the upstream cannot be reached", func() {
			srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {})
			url := srv.URL
			srv.Close()

			result := client.Do(ctx, Request{URL: url})

			Convey("It should return a transport failure", func() {
				So(result.Absent(), ShouldBeTrue)
				So(result.Failure.Kind, ShouldEqual, KindTransport)
				So(result.Failure.Retryable(), ShouldBeTrue)
				So(logs.String(), ShouldContainSubstring, "request error")
			})
		})

		Convey("When the upstream is slower than the timeout", func() {
			release := make(chan struct{})
			srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-release:
				case <-r.Context().Done():
				}
			})
			defer srv.Close()
			defer close(release)

			result := client.Do(ctx, Request{URL: srv.URL, Timeout: 50 * time.Millisecond})

			Convey("It should return a transport failure", func() {
				So(result.Absent(), ShouldBeTrue)
				So(result.Failure.Kind, ShouldEqual, KindTransport)
			})
		})

		Convey("When sending query parameters, headers and a body", func() {
			var (
				gotQuery   map[string][]string
				gotHeaders http.Header
				gotMethod  string
				gotBody    map[string]any
			)
			srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query()
				gotHeaders = r.Header.Clone()
				gotMethod = r.Method
				_ = json.NewDecoder(r.Body).Decode(&gotBody)
				_, _ = io.WriteString(w, `{"ok":true}`)
			})
			defer srv.Close()

			result := client.Do(ctx, Request{
				URL:     srv.URL + "/search",
				Method:  http.MethodPost,
				Query:   map[string]any{"query": "insulin", "size": 5, "skip": nil},
				Headers: map[string]string{"accept": "text/plain", "X-Trace": "abc"},
				Body:    map[string]any{"ids": "P01308"},
			})

			Convey("They should reach the upstream", func() {
				So(result.OK(), ShouldBeTrue)
				So(gotMethod, ShouldEqual, http.MethodPost)
				So(gotQuery["query"], ShouldResemble, []string{"insulin"})
				So(gotQuery["size"], ShouldResemble, []string{"5"})
				So(gotQuery, ShouldNotContainKey, "skip")
				So(gotBody, ShouldResemble, map[string]any{"ids": "P01308"})
			})

			Convey("Caller headers should override the defaults", func() {
				So(gotHeaders.Get("Accept"), ShouldEqual, "text/plain")
				So(gotHeaders.Get("X-Trace"), ShouldEqual, "abc")
				So(gotHeaders.Get("User-Agent"), ShouldEqual, DefaultUserAgent)
			})
		})

		Convey("When repeating an identical request", func() {
			srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"results":[{"primaryAccession":"P01308"}]}`)
			})
			defer srv.Close()

			first := client.Do(ctx, Request{URL: srv.URL})
			second := client.Do(ctx, Request{URL: srv.URL})

			Convey("It should produce identical results", func() {
				So(second, ShouldResemble, first)
			})
		})
	})
}

func TestClientHeaders(t *testing.T) {
	Convey("Given a client with a custom user agent", t, func() {
		client := NewClient(nil, WithUserAgent("test-agent/2.0"), WithTimeout(time.Second))

		Convey("Default headers should be present", func() {
			headers := client.Headers(nil)
			So(headers["User-Agent"], ShouldEqual, "test-agent/2.0")
			So(headers["Accept"], ShouldEqual, "application/json")
		})

		Convey("Caller values should win on collision", func() {
			headers := client.Headers(map[string]string{"user-agent": "override"})
			So(headers["User-Agent"], ShouldEqual, "override")
			So(len(headers), ShouldEqual, 2)
		})
	})
}

func TestFailure(t *testing.T) {
	Convey("Given classified failures", t, func() {
		Convey("Server errors and throttling should be retryable", func() {
			So((&Failure{Kind: KindHTTPStatus, StatusCode: 502}).Retryable(), ShouldBeTrue)
			So((&Failure{Kind: KindHTTPStatus, StatusCode: 429}).Retryable(), ShouldBeTrue)
			So((&Failure{Kind: KindHTTPStatus, StatusCode: 404}).Retryable(), ShouldBeFalse)
			So(ShapeFailure("results").Retryable(), ShouldBeFalse)
		})

		Convey("Failures should be recoverable from an error chain", func() {
			err := Result{Failure: ShapeFailure("results")}.Err()
			f, ok := AsFailure(err)
			So(ok, ShouldBeTrue)
			So(f.Kind, ShouldEqual, KindShape)
			So(err.Error(), ShouldContainSubstring, "results")
		})

		Convey("Policies should parse", func() {
			p, err := ParsePolicy("")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, PolicyDowngrade)

			p, err = ParsePolicy("surface")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, PolicySurface)

			_, err = ParsePolicy("retry")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestClientWithHTTPClient(t *testing.T) {
	Convey("Given a client built on a short-timeout http.Client", t, func() {
		release := make(chan struct{})
		srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		})
		defer srv.Close()
		defer close(release)

		client := NewClient(nil, WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))

		Convey("The injected transport timeout should yield a transport failure", func() {
			result := client.Do(context.Background(), Request{URL: srv.URL})
			So(result.Absent(), ShouldBeTrue)
			So(result.Failure.Kind, ShouldEqual, KindTransport)
		})
	})
}

func TestClientGetWithBody(t *testing.T) {
	Convey("Given a GET request carrying a body", t, func() {
		var (
			gotMethod string
			gotBody   map[string]any
		)
		srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_, _ = io.WriteString(w, `{}`)
		})
		defer srv.Close()

		result := NewClient(nil).Do(context.Background(), Request{
			URL:  srv.URL,
			Body: map[string]any{"ids": "P01308"},
		})

		Convey("The body should reach the upstream", func() {
			So(result.OK(), ShouldBeTrue)
			So(gotMethod, ShouldEqual, http.MethodGet)
			So(gotBody, ShouldResemble, map[string]any{"ids": "P01308"})
		})
	})
}
