package composer

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newHandlerApp(t *testing.T, poster *fakePoster) (*fiber.App, chan string) {
	t.Helper()
	svc, finished := newTestService(t, poster)
	app := fiber.New()
	RegisterRoutes(app.Group("/composer"), svc)
	return app, finished
}

func TestComposerStateHandler(t *testing.T) {
	app, _ := newHandlerApp(t, &fakePoster{})

	req := httptest.NewRequest(http.MethodGet, "/composer/s1", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("state status: %v", err)
	}

	var st State
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st != (State{}) {
		t.Fatalf("expected zero draft")
	}
}

func TestComposerTextHandler(t *testing.T) {
	app, _ := newHandlerApp(t, &fakePoster{})

	payload, _ := json.Marshal(map[string]string{"text": "hola"})
	req := httptest.NewRequest(http.MethodPut, "/composer/s1/text", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("text status: %v", err)
	}

	var st State
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Text != "hola" {
		t.Fatalf("expected text set, got %+v", st)
	}
}

func TestComposerAttachImageHandler(t *testing.T) {
	app, _ := newHandlerApp(t, &fakePoster{})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "photo.jpg")
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	_, _ = part.Write([]byte("jpeg-bytes"))
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/composer/s1/image", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("attach status: %v", err)
	}

	var st State
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.ImageRef == "" {
		t.Fatalf("expected image ref set")
	}
}

func TestComposerAttachMissingPart(t *testing.T) {
	app, _ := newHandlerApp(t, &fakePoster{})

	req := httptest.NewRequest(http.MethodPost, "/composer/s1/file", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}

func TestComposerPublishHandler(t *testing.T) {
	app, finished := newHandlerApp(t, &fakePoster{})

	payload, _ := json.Marshal(map[string]string{"text": "hola"})
	req := httptest.NewRequest(http.MethodPut, "/composer/s1/text", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if _, err := app.Test(req); err != nil {
		t.Fatalf("text: %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/composer/s1/publish", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusAccepted {
		t.Fatalf("publish status: %v", err)
	}
	waitFinished(t, finished)
}

func TestComposerPublishConflict(t *testing.T) {
	poster := &fakePoster{block: make(chan struct{})}
	app, finished := newHandlerApp(t, poster)

	payload, _ := json.Marshal(map[string]string{"text": "hola"})
	req := httptest.NewRequest(http.MethodPut, "/composer/s1/text", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if _, err := app.Test(req); err != nil {
		t.Fatalf("text: %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/composer/s1/publish", nil)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("publish: %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/composer/s1/publish", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected conflict while in flight")
	}

	close(poster.block)
	waitFinished(t, finished)
}
