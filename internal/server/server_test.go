package server

import (
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/shineycanvas/internal/command"
	"github.com/example/shineycanvas/internal/editor"
	"github.com/example/shineycanvas/internal/scene"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	c := scene.NewCanvas(0, 0)
	ed := editor.New(editor.WithWorkspace(editor.WorkspaceOptions{Width: 90, Height: 120, Fill: "white"}))
	ed.Init(c, editor.FixedContainer{Width: 200, Height: 200})
	t.Cleanup(ed.Dispose)
	opts = append([]Option{WithAccessLog(false)}, opts...)
	return New(command.New(ed, c), opts...)
}

type commandResult struct {
	Executed int      `json:"executed"`
	Output   []string `json:"output"`
	Revision uint64   `json:"revision"`
	Error    string   `json:"error"`
	Line     int      `json:"line"`
}

func post(t *testing.T, s *Server, body string) (int, commandResult) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/commands", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/plain")
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("POST /commands: %v", err)
	}
	defer resp.Body.Close()
	var res commandResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.StatusCode, res
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(b), "alive") {
		t.Fatalf("status %d body %s", resp.StatusCode, b)
	}
}

func TestCommands(t *testing.T) {
	changes := 0
	s := newTestServer(t, WithOnChange(func() { changes++ }))
	code, res := post(t, s, "# page\nadd circle\n\nfill #ff0000\n")
	if code != http.StatusOK {
		t.Fatalf("status %d: %+v", code, res)
	}
	if res.Executed != 2 || len(res.Output) == 0 || res.Error != "" {
		t.Fatalf("result %+v", res)
	}
	if changes != 1 {
		t.Fatalf("onChange called %d times", changes)
	}

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/state", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var st command.State
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatal(err)
	}
	if len(st.Objects) != 2 || st.Objects[1].Kind != string(scene.KindCircle) {
		t.Fatalf("objects %+v", st.Objects)
	}
	if !st.Objects[1].Selected || st.Objects[1].Fill != "#ff0000" || st.Active.Fill != "#ff0000" {
		t.Fatalf("circle %+v active %+v", st.Objects[1], st.Active)
	}
	if st.Revision != res.Revision {
		t.Errorf("revision %d, command reported %d", st.Revision, res.Revision)
	}
}

func TestCommandsStopAtError(t *testing.T) {
	s := newTestServer(t)
	code, res := post(t, s, "add square\nfill nonsense\nadd circle\n")
	if code != http.StatusBadRequest {
		t.Fatalf("status %d", code)
	}
	if res.Executed != 1 || res.Line != 2 || res.Error == "" {
		t.Fatalf("result %+v", res)
	}
	if n := len(s.session.State().Objects); n != 2 {
		t.Fatalf("lines after the error ran: %d objects", n)
	}
}

func TestCommandsLineTooLong(t *testing.T) {
	s := newTestServer(t)
	code, res := post(t, s, "add square\nadd "+strings.Repeat("x", 70*1024)+"\nadd circle\n")
	if code != http.StatusBadRequest {
		t.Fatalf("status %d: %+v", code, res)
	}
	if res.Executed != 1 || res.Line != 2 || !strings.Contains(res.Error, "too long") {
		t.Fatalf("result %+v", res)
	}
}

func TestCommandsEmptyBody(t *testing.T) {
	s := newTestServer(t)
	code, res := post(t, s, "  \n")
	if code != http.StatusBadRequest || res.Error != "body required" {
		t.Fatalf("status %d result %+v", code, res)
	}
}

func TestRender(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/render.png", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type %q", ct)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 90 || b.Dy() != 120 {
		t.Fatalf("page size %v", b)
	}
}
