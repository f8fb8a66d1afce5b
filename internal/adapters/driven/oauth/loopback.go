package oauth

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// redirectPath is where the provider sends the browser back to.
const redirectPath = "/callback"

var (
	errStateMismatch = errors.New("state mismatch in authorization redirect")
	errMissingCode   = errors.New("no authorization code in redirect")
)

// redirectResult is the outcome of one authorization redirect.
type redirectResult struct {
	code string
	err  error
}

// loopbackReceiver accepts a single authorization redirect on 127.0.0.1.
// Only the first redirect counts; later ones still get a page but are ignored.
type loopbackReceiver struct {
	state    string
	listener net.Listener
	server   *http.Server
	once     sync.Once
	result   chan redirectResult
}

// listenLoopback starts a receiver on a free loopback port.
func listenLoopback(state string) (*loopbackReceiver, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("listen for redirect: %w", err)
	}

	r := &loopbackReceiver{
		state:    state,
		listener: ln,
		result:   make(chan redirectResult, 1),
	}
	r.server = &http.Server{Handler: r, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := r.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.deliver(redirectResult{err: err})
		}
	}()
	return r, nil
}

// RedirectURL is the redirect URI to register in the authorization request.
func (r *loopbackReceiver) RedirectURL() string {
	return (&url.URL{Scheme: "http", Host: r.listener.Addr().String(), Path: redirectPath}).String()
}

func (r *loopbackReceiver) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != redirectPath {
		http.NotFound(w, req)
		return
	}

	res := parseRedirect(req.URL.Query(), r.state)
	r.deliver(res)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if res.err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = resultPage.Execute(w, pageData{Title: "Authorization failed", Message: res.err.Error()})
		return
	}
	_ = resultPage.Execute(w, pageData{
		Title:   "Authorization complete",
		Message: "You can close this tab and return to your terminal.",
	})
}

func (r *loopbackReceiver) deliver(res redirectResult) {
	r.once.Do(func() { r.result <- res })
}

// Wait blocks until the redirect arrives or ctx ends.
func (r *loopbackReceiver) Wait(ctx context.Context) (string, error) {
	select {
	case res := <-r.result:
		return res.code, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close stops accepting redirects.
func (r *loopbackReceiver) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return r.server.Shutdown(ctx)
}

// parseRedirect validates the redirect query against the expected state.
func parseRedirect(q url.Values, state string) redirectResult {
	if code := q.Get("error"); code != "" {
		if desc := q.Get("error_description"); desc != "" {
			return redirectResult{err: fmt.Errorf("%w: %s: %s", ErrAccessDenied, code, desc)}
		}
		return redirectResult{err: fmt.Errorf("%w: %s", ErrAccessDenied, code)}
	}
	if q.Get("state") != state {
		return redirectResult{err: errStateMismatch}
	}
	code := q.Get("code")
	if code == "" {
		return redirectResult{err: errMissingCode}
	}
	return redirectResult{code: code}
}

type pageData struct {
	Title   string
	Message string
}

var resultPage = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>toolbridge</title></head>
<body style="font-family: sans-serif; text-align: center; margin-top: 15vh">
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
</body>
</html>
`))
