package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/gravatar/internal/domain"
	"github.com/totegamma/gravatar/internal/infra/repository"
	"github.com/totegamma/gravatar/internal/usecase"
)

// --- mocks ---

type mockChecker struct {
	exists bool
}

func (m *mockChecker) Check(ctx context.Context, rawURL string) (bool, error) {
	return m.exists, nil
}

const (
	testBase = "https://secure.gravatar.com/avatar/"
	testHash = "98c28fcbe1e816f8e64ff24302298e81"
)

func newTestServer(exists bool) *echo.Echo {
	presets := repository.NewMemoryPresetRepository(map[string]map[string]any{
		"thumb": {"size": 32, "default": "identicon"},
	})
	avatarUC := usecase.NewAvatarUsecase(presets, &mockChecker{exists: exists}, testBase)

	h := NewHandler(avatarUC)
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)
	return res
}

// --- tests ---

func TestHandleAvatar(t *testing.T) {
	e := newTestServer(false)

	res := serve(e, http.MethodGet, "/avatar/lars@legestue.net?preset=thumb&r=G", "")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", res.Code, res.Body.String())
	}

	var avatar struct {
		Email string `json:"email"`
		Hash  string `json:"hash"`
		URL   string `json:"url"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &avatar); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if avatar.Hash != testHash {
		t.Fatalf("expected hash %s got %s", testHash, avatar.Hash)
	}
	want := testBase + testHash + "?d=identicon&s=32&r=G"
	if avatar.URL != want {
		t.Fatalf("expected %s got %s", want, avatar.URL)
	}
}

func TestHandleAvatarDecimalSize(t *testing.T) {
	e := newTestServer(false)

	cases := map[string]string{
		"/avatar/lars@legestue.net?s=010":  testBase + testHash + "?s=10",
		"/avatar/lars@legestue.net?s=0x10": testBase + testHash + "?",
	}
	for target, want := range cases {
		res := serve(e, http.MethodGet, target, "")
		if res.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", target, res.Code)
		}
		var avatar struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal(res.Body.Bytes(), &avatar); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if avatar.URL != want {
			t.Fatalf("%s: expected %s got %s", target, want, avatar.URL)
		}
	}
}

func TestHandleAvatarHTML(t *testing.T) {
	e := newTestServer(false)

	res := serve(e, http.MethodGet, "/avatar/lars%40legestue.net/html", "")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", res.Code, res.Body.String())
	}
	want := `<img src="` + testBase + testHash + `?s=80" width="80" height="80" />`
	if res.Body.String() != want {
		t.Fatalf("expected %s got %s", want, res.Body.String())
	}
	if !strings.HasPrefix(res.Header().Get(echo.HeaderContentType), echo.MIMETextHTML) {
		t.Fatalf("unexpected content type %s", res.Header().Get(echo.HeaderContentType))
	}
}

func TestHandleAvatarErrors(t *testing.T) {
	e := newTestServer(false)

	cases := map[string]int{
		"/avatar/not-an-email":                        http.StatusBadRequest,
		"/avatar/lars@legestue.net?preset=missing":    http.StatusNotFound,
		"/avatar/lars@legestue.net?s=abc":             http.StatusOK,
		"/avatar/not-an-email/exists":                 http.StatusBadRequest,
		"/avatar/lars@legestue.net/html?preset=other": http.StatusNotFound,
	}
	for target, code := range cases {
		res := serve(e, http.MethodGet, target, "")
		if res.Code != code {
			t.Fatalf("%s: expected %d got %d", target, code, res.Code)
		}
	}
}

func TestHandleAvatarExists(t *testing.T) {
	for _, exists := range []bool{true, false} {
		e := newTestServer(exists)
		res := serve(e, http.MethodGet, "/avatar/lars@legestue.net/exists", "")
		if res.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", res.Code)
		}
		var body struct {
			Exists bool `json:"exists"`
		}
		if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if body.Exists != exists {
			t.Fatalf("expected exists=%v got %v", exists, body.Exists)
		}
	}
}

func TestHandlePresets(t *testing.T) {
	e := newTestServer(false)

	res := serve(e, http.MethodPut, "/presets/card", `{"options":{"size":256,"rating":"R"}}`)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", res.Code, res.Body.String())
	}

	res = serve(e, http.MethodGet, "/presets/card", "")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.Code)
	}
	var preset domain.Preset
	if err := json.Unmarshal(res.Body.Bytes(), &preset); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if preset.Options["rating"] != "R" {
		t.Fatalf("unexpected preset %+v", preset)
	}

	res = serve(e, http.MethodPut, "/presets/bad", `{"options":{"colour":"red"}}`)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", res.Code)
	}

	res = serve(e, http.MethodDelete, "/presets/card", "")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.Code)
	}
	res = serve(e, http.MethodGet, "/presets/card", "")
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", res.Code)
	}
}
