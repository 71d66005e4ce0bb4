package preview

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/conneroisu/reelsmith/internal/project"
	"github.com/conneroisu/reelsmith/internal/scene"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func newTestServer(t *testing.T) (*Server, *project.Manager, *httptest.Server) {
	t.Helper()
	m, err := project.NewManager(afero.NewMemMapFs(), "/work", project.WithWorkers(2))
	require.NoError(t, err)

	s := NewServer(m, nil, nil)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Hub().Shutdown(ctx)
		srv.Close()
	})
	return s, m, srv
}

func buildDemo(t *testing.T, m *project.Manager) *project.Result {
	t.Helper()
	ctx := context.Background()
	_, err := m.Create(ctx, "demo", project.Options{Theme: "education"})
	require.NoError(t, err)

	nodes, err := scene.ParseScenes([]any{
		map[string]any{
			"type": "TitleScene", "startFrame": 0, "durationInFrames": 90,
			"config": map[string]any{"text": "Intro"},
		},
		map[string]any{
			"type": "SplitScreen", "startFrame": 90, "durationInFrames": 120,
			"left":  map[string]any{"type": "CodeBlock", "config": map[string]any{"code": "go test ./..."}},
			"right": map[string]any{"type": "Terminal"},
		},
	}, m.Slots())
	require.NoError(t, err)

	result, err := m.BuildFromScenes(ctx, "demo", nodes, "")
	require.NoError(t, err)
	return result
}

func getPage(t *testing.T, url string) (*html.Node, int) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	doc, err := html.Parse(resp.Body)
	require.NoError(t, err)
	return doc, resp.StatusCode
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func byID(root *html.Node, id string) *html.Node {
	found := findAll(root, func(n *html.Node) bool { return attr(n, "id") == id })
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

func hasClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func TestIndexListsProjects(t *testing.T) {
	_, m, srv := newTestServer(t)

	doc, status := getPage(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, byID(doc, "projects"))

	for _, name := range []string{"beta", "alpha"} {
		_, err := m.Create(context.Background(), name, project.Options{})
		require.NoError(t, err)
	}

	doc, status = getPage(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	list := byID(doc, "projects")
	require.NotNil(t, list)

	links := findAll(list, func(n *html.Node) bool { return n.Data == "a" })
	require.Len(t, links, 2)
	assert.Equal(t, "/projects/alpha", attr(links[0], "href"))
	assert.Equal(t, "/projects/beta", attr(links[1], "href"))
}

func TestStoryboardBeforeBuild(t *testing.T) {
	_, m, srv := newTestServer(t)
	_, err := m.Create(context.Background(), "fresh", project.Options{FPS: 60})
	require.NoError(t, err)

	doc, status := getPage(t, srv.URL+"/projects/fresh")
	assert.Equal(t, http.StatusOK, status)

	require.NotNil(t, byID(doc, "project"))
	assert.Equal(t, "fresh", text(byID(doc, "project")))
	assert.Contains(t, text(byID(doc, "settings")), "1920x1080 at 60 fps")
	assert.Contains(t, text(byID(doc, "build")), "No build")
	assert.Nil(t, byID(doc, "timeline"))
}

func TestStoryboardShowsPublishedBuild(t *testing.T) {
	s, m, srv := newTestServer(t)
	result := buildDemo(t, m)
	s.Publish(context.Background(), result)

	doc, status := getPage(t, srv.URL+"/projects/demo")
	assert.Equal(t, http.StatusOK, status)

	assert.Contains(t, text(byID(doc, "build")), result.BuildID)
	assert.Contains(t, text(byID(doc, "settings")), "education")

	timeline := byID(doc, "timeline")
	require.NotNil(t, timeline)
	var types []string
	for _, n := range findAll(timeline, hasClass("scene")) {
		types = append(types, attr(n, "data-type"))
	}
	assert.Equal(t, []string{"TitleScene", "SplitScreen"}, types)

	failures := findAll(doc, hasClass("failure"))
	require.Len(t, failures, 1)
	assert.Contains(t, text(failures[0]), "Terminal")

	var files []string
	for _, n := range findAll(doc, hasClass("component")) {
		files = append(files, text(n))
	}
	assert.Contains(t, files, "TitleScene.tsx")
	assert.Contains(t, files, "CodeBlock.tsx")
}

func TestUnknownProjectIsNotFound(t *testing.T) {
	_, _, srv := newTestServer(t)

	for _, path := range []string{"/projects/ghost", "/api/projects/ghost"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestProjectJSON(t *testing.T) {
	s, m, srv := newTestServer(t)
	result := buildDemo(t, m)
	s.Publish(context.Background(), result)

	resp, err := http.Get(srv.URL + "/api/projects/demo")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body struct {
		Project struct {
			Name  string `json:"name"`
			Theme string `json:"theme"`
		} `json:"project"`
		Build struct {
			BuildID     string `json:"build_id"`
			TotalFrames int    `json:"total_frames"`
		} `json:"build"`
		Composition map[string]any `json:"composition"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "demo", body.Project.Name)
	assert.Equal(t, "education", body.Project.Theme)
	assert.Equal(t, result.BuildID, body.Build.BuildID)
	assert.Equal(t, 210, body.Build.TotalFrames)
	assert.EqualValues(t, 210, body.Composition["duration_frames"])
}

func TestHealthz(t *testing.T) {
	_, _, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestPublishNotifiesPages(t *testing.T) {
	s, m, srv := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()
	require.Eventually(t, func() bool { return s.Hub().ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	result := buildDemo(t, m)
	s.Publish(ctx, result)

	type event struct {
		Type    string     `json:"type"`
		Project string     `json:"project"`
		Payload BuildEvent `json:"payload"`
	}

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	var got event
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "build", got.Type)
	assert.Equal(t, "demo", got.Project)
	assert.Equal(t, result.BuildID, got.Payload.BuildID)
	assert.Equal(t, 210, got.Payload.TotalFrames)
	require.Len(t, got.Payload.Failures, 1)
	assert.Equal(t, "Terminal", got.Payload.Failures[0].Component)

	s.PublishFailure(ctx, "demo", assert.AnError)
	_, data, err = conn.Read(ctx)
	require.NoError(t, err)
	got = event{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "build_failed", got.Type)
	assert.Equal(t, assert.AnError.Error(), got.Payload.Error)
}

func TestAddr(t *testing.T) {
	assert.Equal(t, "localhost:8091", Addr("localhost", 8091))
	assert.Equal(t, "[::1]:80", Addr("::1", 80))
}
