package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/elizafairlady/layers/layerview"
	"github.com/elizafairlady/layers/store"
	"github.com/elizafairlady/layers/ui/connect"
	"github.com/elizafairlady/layers/ui/proto"
	"github.com/elizafairlady/layers/ui/theme"
	"github.com/elizafairlady/layers/ui/view"
)

func newServer(t *testing.T, opts Options) (*httptest.Server, *connect.Host) {
	t.Helper()
	h := connect.New(store.New(store.Initial()), layerview.Page(""))
	srv := httptest.NewServer(Handler(h, opts))
	t.Cleanup(func() {
		srv.Close()
		h.Close()
	})
	return srv, h
}

// noRedirect keeps the 303 visible to the test.
func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

func get(t *testing.T, u string) (int, string) {
	t.Helper()
	resp, err := http.Get(u)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func post(t *testing.T, srv *httptest.Server, id string) *http.Response {
	t.Helper()
	c := srv.Client()
	c.CheckRedirect = noRedirect
	resp, err := c.PostForm(srv.URL+"/actions", url.Values{"id": {id}})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	return resp
}

func TestPageRendersTree(t *testing.T) {
	srv, _ := newServer(t, Options{Title: "Layers"})

	status, body := get(t, srv.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	for _, want := range []string{
		"<title>Layers</title>",
		`<h1 id="title">Hello Host</h1>`,
		`<ul id="layers">`,
		`value="layer/B"`,
		`style="color:#4682b4"`,
		`data-href="ona.io"`,
		`class="label" style="background-color:#ff0000;color:#ffffff">A</div>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q:\n%s", want, body)
		}
	}
}

func TestPageDefaultTitle(t *testing.T) {
	srv, _ := newServer(t, Options{})
	_, body := get(t, srv.URL+"/")
	if !strings.Contains(body, "<title>Hello Host</title>") {
		t.Errorf("page missing default title:\n%s", body)
	}
}

func TestPostActionSelects(t *testing.T) {
	srv, h := newServer(t, Options{})

	resp := post(t, srv, "layer/C")
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/" {
		t.Fatalf("status = %d location = %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	if got := h.Store().GetState().ActiveLayer; got != "C" {
		t.Errorf("ActiveLayer = %q", got)
	}
	_, body := get(t, srv.URL+"/")
	if !strings.Contains(body, `class="layer active"`) || !strings.Contains(body, "background-color:#ffa500;color:#000000") {
		t.Errorf("page not updated:\n%s", body)
	}

	post(t, srv, "layer/C")
	_, body = get(t, srv.URL+"/")
	if strings.Contains(body, `class="label"`) {
		t.Errorf("label still shown after deselect:\n%s", body)
	}
	if !strings.Contains(body, `<div id="map"></div>`) {
		t.Errorf("empty label container missing:\n%s", body)
	}
}

func TestPostActionUnknown(t *testing.T) {
	srv, h := newServer(t, Options{})
	resp := post(t, srv, "layer/Z")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if got := h.Store().GetState().ActiveLayer; got != "A" {
		t.Errorf("state changed: %q", got)
	}
}

func TestTreeEndpoint(t *testing.T) {
	srv, h := newServer(t, Options{})
	status, body := get(t, srv.URL+"/tree")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body != h.TreeText() {
		t.Errorf("tree = %q", body)
	}
	if _, err := proto.ParseTree(body); err != nil {
		t.Errorf("ParseTree: %v", err)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newServer(t, Options{})
	if status, _ := get(t, srv.URL+"/metrics"); status != http.StatusNotFound {
		t.Errorf("metrics without gatherer: status = %d", status)
	}

	reg := prometheus.NewRegistry()
	st := store.New(store.Initial(), store.WithMiddleware(store.Metrics(reg)))
	h := connect.New(st, layerview.Page(""))
	defer h.Close()
	msrv := httptest.NewServer(Handler(h, Options{Gatherer: reg}))
	defer msrv.Close()

	post(t, msrv, "layer/B")
	status, body := get(t, msrv.URL+"/metrics")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(body, `layers_dispatch_total{action="switch"} 1`) {
		t.Errorf("metrics missing dispatch count:\n%s", body)
	}
}

func TestTreeEscapes(t *testing.T) {
	root := view.VBox("root",
		view.TextNode("t", `<script>alert("x")</script>`),
		view.Label("l", "A&B", `red;background:url(x)`),
	)
	var b strings.Builder
	if err := Tree(view.Serialize(root, 1), theme.Default()).Render(context.Background(), &b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if strings.Contains(out, "<script>") {
		t.Errorf("text not escaped: %s", out)
	}
	if !strings.Contains(out, "A&amp;B") {
		t.Errorf("label not escaped: %s", out)
	}
	// Unknown colors fall back to the theme instead of reaching CSS.
	if strings.Contains(out, "url(") || !strings.Contains(out, "background-color:#ffffea") {
		t.Errorf("color not sanitized: %s", out)
	}
	if err := Tree(nil, theme.Default()).Render(context.Background(), &b); err != nil {
		t.Errorf("nil tree: %v", err)
	}
}
