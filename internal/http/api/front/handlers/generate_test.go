package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/waveup-app/waveup-api/internal/auth"
	"github.com/waveup-app/waveup-api/internal/config"
	"github.com/waveup-app/waveup-api/internal/entitlement"
	"github.com/waveup-app/waveup-api/internal/ideas"
	"github.com/waveup-app/waveup-api/internal/security"
	"github.com/waveup-app/waveup-api/internal/store"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type fakeGenerator struct {
	count int
	err   error
}

func (g *fakeGenerator) GenerateIdeas(_ context.Context, topic string, _ int) ([]ideas.Idea, error) {
	if g.err != nil {
		return nil, g.err
	}
	out := make([]ideas.Idea, g.count)
	for i := range out {
		out[i] = ideas.Idea{ID: fmt.Sprintf("idea-%d", i), Title: topic}
	}
	return out, nil
}

type generateEnv struct {
	router *gin.Engine
	token  string
	gate   *security.Gate
}

func newGenerateEnv(t *testing.T, generator ideas.Generator) generateEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clk := &fixedClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	st := store.NewMemoryStore()
	svc := entitlement.NewService(st, clk)
	gate := security.NewGate(st, clk)

	issuer, errIssuer := auth.NewTokenIssuer(config.JWTConfig{Secret: "test-secret", Expiry: time.Hour}, clk)
	if errIssuer != nil {
		t.Fatalf("new issuer: %v", errIssuer)
	}
	token, errToken := issuer.Issue("creator-1", false)
	if errToken != nil {
		t.Fatalf("issue token: %v", errToken)
	}

	router := gin.New()
	handler := NewGenerateHandler(svc, gate, generator)
	router.POST("/v0/ideas/generate", auth.CreatorMiddleware(issuer), handler.Generate)
	return generateEnv{router: router, token: token, gate: gate}
}

func (e generateEnv) post(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v0/ideas/generate", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+e.token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestGenerate_ConsumesQuotaUntilExhausted(t *testing.T) {
	env := newGenerateEnv(t, &fakeGenerator{count: 3})

	for i := 0; i < 3; i++ {
		if w := env.post(`{"topic":"growth hacks"}`); w.Code != http.StatusOK {
			t.Fatalf("call %d: expected 200, got %d: %s", i+1, w.Code, w.Body.String())
		}
	}

	w := env.post(`{"topic":"growth hacks"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 after quota, got %d", w.Code)
	}
	var resp struct {
		Error   string `json:"error"`
		Upgrade string `json:"upgrade"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &resp); errDecode != nil {
		t.Fatalf("decode: %v", errDecode)
	}
	if resp.Error != "quota exceeded" || resp.Upgrade == "" {
		t.Fatalf("expected quota error with upgrade hint, got %+v", resp)
	}
}

func TestGenerate_TruncatesToVisibleCount(t *testing.T) {
	env := newGenerateEnv(t, &fakeGenerator{count: 7})

	w := env.post(`{"topic":"hooks","count":7}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Ideas     []ideas.Idea `json:"ideas"`
		Total     int          `json:"total"`
		Truncated bool         `json:"truncated"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &resp); errDecode != nil {
		t.Fatalf("decode: %v", errDecode)
	}
	if len(resp.Ideas) != 3 || resp.Total != 7 || !resp.Truncated {
		t.Fatalf("expected free tier truncation to 3 of 7, got %d of %d truncated=%v", len(resp.Ideas), resp.Total, resp.Truncated)
	}
}

func TestGenerate_DisabledModuleBlocksBeforeQuota(t *testing.T) {
	env := newGenerateEnv(t, &fakeGenerator{count: 3})
	if errDisable := env.gate.DisableModule(context.Background(), security.ModuleAI); errDisable != nil {
		t.Fatalf("disable: %v", errDisable)
	}

	w := env.post(`{"topic":"hooks"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}

	// The blocked call must not have burned quota.
	if errRelease := env.gate.ReleaseLock(context.Background()); errRelease != nil {
		t.Fatalf("release: %v", errRelease)
	}
	for i := 0; i < 3; i++ {
		if w := env.post(`{"topic":"hooks"}`); w.Code != http.StatusOK {
			t.Fatalf("call %d: expected 200, got %d", i+1, w.Code)
		}
	}
}

func TestGenerate_GeneratorFailureDoesNotRefund(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream down")}
	env := newGenerateEnv(t, gen)

	for i := 0; i < 3; i++ {
		if w := env.post(`{"topic":"hooks"}`); w.Code != http.StatusBadGateway {
			t.Fatalf("call %d: expected 502, got %d", i+1, w.Code)
		}
	}

	// Three failed calls spent the whole free quota.
	gen.err = nil
	gen.count = 3
	if w := env.post(`{"topic":"hooks"}`); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestGenerate_MissingGenerator(t *testing.T) {
	env := newGenerateEnv(t, nil)
	if w := env.post(`{"topic":"hooks"}`); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestGenerate_RequiresAuth(t *testing.T) {
	env := newGenerateEnv(t, &fakeGenerator{count: 3})
	req := httptest.NewRequest(http.MethodPost, "/v0/ideas/generate", strings.NewReader(`{"topic":"hooks"}`))
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
