package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"voxca/internal/core"
	"voxca/internal/gallery"
	"voxca/internal/infra"
	"voxca/internal/palette"
	"voxca/internal/runner"
	"voxca/internal/scene"
)

type fakeQueue struct {
	mu   sync.Mutex
	jobs []core.ConfigJob
}

func (q *fakeQueue) Enqueue(job core.ConfigJob) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return len(q.jobs) - 1, nil
}

func (q *fakeQueue) Snapshot() runner.Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	return runner.Snapshot{State: runner.Launching, Queue: append([]core.ConfigJob(nil), q.jobs...)}
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeQueue) {
	t.Helper()
	root := t.TempDir()
	write := func(i int, boardText string) {
		dir := filepath.Join(root, "result_"+strconv.Itoa(i))
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.txt"), []byte("x_size=2\ny_size=2\nz_size=2\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "board.txt"), []byte(boardText), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "time.txt"), []byte("ReadConfig=3\n"), 0o644))
	}
	write(0, "2x2x2\n0,1,2,3,4,5,6,7,")
	write(1, "2x2x2\n0,1,2,3,4")

	g := gallery.New(root, palette.New(3, 0))
	require.NoError(t, g.Load())
	q := &fakeQueue{}
	srv := httptest.NewServer(NewRouter(&Server{Queue: q, Gallery: g, Log: infra.NopLogger()}))
	t.Cleanup(srv.Close)
	return srv, q
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestSubmitJobPreservesFieldOrder(t *testing.T) {
	srv, q := newTestServer(t)

	body := "z_size=3&x_size=4&=ignored&MC_kt=0.5&note=a+b%26c"
	resp, err := http.Post(srv.URL+"/jobs", "application/x-www-form-urlencoded", strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var payload struct {
		ID       string `json:"id"`
		Position int    `json:"position"`
	}
	decode(t, resp, &payload)
	require.Equal(t, 0, payload.Position)

	require.Len(t, q.jobs, 1)
	require.Equal(t, payload.ID, q.jobs[0].ID)
	require.Equal(t, []core.Field{
		{Key: "z_size", Value: "3"},
		{Key: "x_size", Value: "4"},
		{Key: "MC_kt", Value: "0.5"},
		{Key: "note", Value: "a b&c"},
	}, q.jobs[0].Fields)
}

func TestSubmitJobRejections(t *testing.T) {
	srv, q := newTestServer(t)

	resp, err := http.Post(srv.URL+"/jobs", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/jobs", "application/x-www-form-urlencoded", strings.NewReader("=only"))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	for _, body := range []string{"a=1%0Ab", "a%3Db=1", "a%0D=1"} {
		resp, err = http.Post(srv.URL+"/jobs", "application/x-www-form-urlencoded", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}

	require.Empty(t, q.jobs)
}

func TestListJobs(t *testing.T) {
	srv, q := newTestServer(t)
	_, _ = q.Enqueue(core.NewConfigJob([]core.Field{{Key: "x_size", Value: "5"}}))

	resp, err := http.Get(srv.URL + "/jobs")
	require.NoError(t, err)
	var payload struct {
		State string `json:"state"`
		Queue []struct {
			ID      string   `json:"id"`
			Summary []string `json:"summary"`
		} `json:"queue"`
		Failures []any `json:"failures"`
	}
	decode(t, resp, &payload)
	require.Equal(t, "launching", payload.State)
	require.Len(t, payload.Queue, 1)
	require.Equal(t, "Board: 5xx,  random seeds", payload.Queue[0].Summary[0])
	require.NotNil(t, payload.Failures)
}

func TestResultViews(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/results")
	require.NoError(t, err)
	var list struct {
		Items []struct {
			Index   int      `json:"index"`
			Summary []string `json:"summary"`
		} `json:"items"`
	}
	decode(t, resp, &list)
	require.Len(t, list.Items, 2)
	require.Equal(t, 1, list.Items[1].Index)

	resp, err = http.Get(srv.URL + "/results/0")
	require.NoError(t, err)
	var detail map[string]json.RawMessage
	decode(t, resp, &detail)
	require.Contains(t, string(detail["timings"]), "ReadConfig")

	resp, err = http.Get(srv.URL + "/results/0/board")
	require.NoError(t, err)
	var b struct {
		Dims   core.Dims `json:"dims"`
		States []int     `json:"states"`
	}
	decode(t, resp, &b)
	require.Equal(t, core.Dims{X: 2, Y: 2, Z: 2}, b.Dims)
	require.Len(t, b.States, 8)

	resp, err = http.Get(srv.URL + "/results/0/scene")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var frame scene.Frame
	decode(t, resp, &frame)
	require.Len(t, frame.Cubes, 8)
	require.Equal(t, core.Vec3{X: 4, Y: 4, Z: 4}, frame.Eye)
}

func TestResultErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := map[string]int{
		"/results/1/scene": http.StatusUnprocessableEntity,
		"/results/9/board": http.StatusNotFound,
		"/results/x/board": http.StatusBadRequest,
		"/results/-1":      http.StatusBadRequest,
	}
	for path, want := range cases {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, want, resp.StatusCode, path)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, path := range []string{"/healthz", "/metrics", "/form"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
