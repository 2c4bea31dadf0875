package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/models"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/store"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/templates"
	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var testNow = time.Date(2026, 4, 2, 8, 30, 0, 0, time.UTC)

type fakeResearcher struct {
	calls    int
	lastMode models.GenerationMode
}

func (f *fakeResearcher) Aggregate(ctx context.Context, info models.BusinessInfo, mode models.GenerationMode) models.ResearchData {
	f.calls++
	f.lastMode = mode
	return models.ResearchData{
		CompetitorAnalysis: []models.CompetitorInsight{},
		MarketData: []models.MarketInsight{
			{Category: "Market Size", DataPoint: "Global SaaS market", Value: "$232 billion (2024)", Source: "Industry Reports", Confidence: 0.85},
		},
		SocialInsights: []models.SocialInsight{},
		IndustryTrends: []string{info.Industry + ": personalization trend growing"},
	}
}

type fakeGenerator struct {
	err          error
	lastResearch models.ResearchData
}

func (f *fakeGenerator) Assemble(ctx context.Context, info models.BusinessInfo, research models.ResearchData, mode models.GenerationMode) (*models.Avatar, error) {
	f.lastResearch = research
	if f.err != nil {
		return nil, f.err
	}
	return &models.Avatar{
		ID:             "generated-1",
		Name:           info.Niche + " Avatar - 4/2/2026",
		BusinessInfo:   info,
		Narrative:      "Meet Alex.",
		GenerationMode: mode,
		Industry:       info.Industry,
		Tags:           []string{info.Industry, string(info.BusinessType), info.Niche},
	}, nil
}

type testEnv struct {
	router    *gin.Engine
	store     *store.Store
	research  *fakeResearcher
	generator *fakeGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(filepath.Join(t.TempDir(), "avatars.db"), store.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	lib, err := templates.Load()
	require.NoError(t, err)

	ids := 0
	env := &testEnv{store: st, research: &fakeResearcher{}, generator: &fakeGenerator{}}
	srv := NewServer(env.research, env.generator, st, lib, zaptest.NewLogger(t),
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("id-%d", ids)
		}))

	env.router = gin.New()
	env.router.Use(RequestLogger(zaptest.NewLogger(t)))
	srv.Register(env.router)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func saasInfo() models.BusinessInfo {
	return models.BusinessInfo{
		Industry:     "SaaS",
		Niche:        "Project Management",
		BusinessType: models.BusinessTypeB2B,
		Competitors:  []string{"https://asana.com"},
	}
}

func seedAvatar(t *testing.T, e *testEnv, id, name, industry, createdAt string) *models.Avatar {
	t.Helper()
	a := &models.Avatar{
		ID:        id,
		Name:      name,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		BusinessInfo: models.BusinessInfo{
			Industry: industry, Niche: "Niche", BusinessType: models.BusinessTypeB2C,
		},
		Narrative:         "Seeded.",
		OverallConfidence: 0.7,
		GenerationMode:    models.ModeQuick,
		Industry:          industry,
		Tags:              []string{industry},
	}
	require.NoError(t, e.store.Save(context.Background(), a))
	return a
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	w, _ := e.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestResearch(t *testing.T) {
	e := newTestEnv(t)

	w, resp := e.do(t, http.MethodPost, "/api/research", gin.H{"businessInfo": saasInfo()})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "2026-04-02T08:30:00.000Z", resp["timestamp"])
	assert.Equal(t, models.ModeComprehensive, e.research.lastMode)

	data := resp["data"].(map[string]any)
	assert.Len(t, data["marketData"], 1)
}

func TestResearchRejectsInvalidBody(t *testing.T) {
	e := newTestEnv(t)

	tests := []struct {
		name string
		body any
	}{
		{"malformed json", "{"},
		{"missing industry", gin.H{"businessInfo": gin.H{"niche": "x", "businessType": "b2b"}}},
		{"bad business type", gin.H{"businessInfo": gin.H{"industry": "x", "niche": "y", "businessType": "b2g"}}},
		{"bad mode", gin.H{"businessInfo": saasInfo(), "mode": "thorough"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := e.do(t, http.MethodPost, "/api/research", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, false, resp["success"])
		})
	}
	assert.Zero(t, e.research.calls)
}

func TestGenerateRunsResearchWhenOmitted(t *testing.T) {
	e := newTestEnv(t)

	w, resp := e.do(t, http.MethodPost, "/api/generate", gin.H{"businessInfo": saasInfo(), "mode": "comprehensive"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, 1, e.research.calls)
	assert.Equal(t, models.ModeComprehensive, e.research.lastMode)
	assert.Len(t, e.generator.lastResearch.MarketData, 1)

	avatar := resp["avatar"].(map[string]any)
	assert.Equal(t, "generated-1", avatar["id"])
	assert.Equal(t, "comprehensive", avatar["generationMode"])
}

func TestGenerateUsesSuppliedResearch(t *testing.T) {
	e := newTestEnv(t)
	research := models.ResearchData{IndustryTrends: []string{"SaaS: video content trend growing"}}

	w, _ := e.do(t, http.MethodPost, "/api/generate", gin.H{"businessInfo": saasInfo(), "researchData": research})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, e.research.calls)
	assert.Equal(t, research.IndustryTrends, e.generator.lastResearch.IndustryTrends)
}

func TestGenerateFailureIsGeneric(t *testing.T) {
	e := newTestEnv(t)
	e.generator.err = errors.New("anthropic model claude invocation failed: 529 overloaded")

	w, resp := e.do(t, http.MethodPost, "/api/generate", gin.H{"businessInfo": saasInfo(), "mode": "quick"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]any{"success": false, "error": "Avatar generation failed"}, resp)
}

func TestAvatarLifecycle(t *testing.T) {
	e := newTestEnv(t)

	// save
	w, resp := e.do(t, http.MethodPost, "/api/avatars", models.Avatar{
		Name:         "Founders",
		BusinessInfo: saasInfo(),
		Industry:     "SaaS",
		Tags:         []string{"SaaS"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Avatar saved successfully", resp["message"])
	saved := resp["avatar"].(map[string]any)
	assert.Equal(t, "id-1", saved["id"])
	assert.Equal(t, "2026-04-02T08:30:00.000Z", saved["createdAt"])

	// get
	w, resp = e.do(t, http.MethodGet, "/api/avatars/id-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Founders", resp["avatar"].(map[string]any)["name"])

	// partial update
	w, resp = e.do(t, http.MethodPut, "/api/avatars/id-1", gin.H{"name": "", "narrative": "Updated story", "isTemplate": true})
	require.Equal(t, http.StatusOK, w.Code)
	updated := resp["avatar"].(map[string]any)
	assert.Equal(t, "Founders", updated["name"])
	assert.Equal(t, "Updated story", updated["narrative"])
	assert.Equal(t, true, updated["isTemplate"])

	// delete
	w, _ = e.do(t, http.MethodDelete, "/api/avatars/id-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = e.do(t, http.MethodGet, "/api/avatars/id-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Avatar not found", resp["error"])
}

func TestUpdateMissingAvatar(t *testing.T) {
	e := newTestEnv(t)
	w, resp := e.do(t, http.MethodPut, "/api/avatars/ghost", gin.H{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Avatar not found", resp["error"])
}

func TestListAvatars(t *testing.T) {
	e := newTestEnv(t)
	seedAvatar(t, e, "a", "Yoga Fans", "Health & Wellness", "2026-01-01T00:00:00.000Z")
	seedAvatar(t, e, "b", "Dev Leads", "SaaS", "2026-02-01T00:00:00.000Z")

	w, resp := e.do(t, http.MethodGet, "/api/avatars", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, resp["count"])
	avatars := resp["avatars"].([]any)
	assert.Equal(t, "b", avatars[0].(map[string]any)["id"])

	_, resp = e.do(t, http.MethodGet, "/api/avatars?search=YOGA", nil)
	assert.EqualValues(t, 1, resp["count"])

	_, resp = e.do(t, http.MethodGet, "/api/avatars?isTemplate=true", nil)
	assert.EqualValues(t, 0, resp["count"])
	assert.Equal(t, []any{}, resp["avatars"])

	_, resp = e.do(t, http.MethodGet, "/api/avatars?industry=SaaS&isTemplate=false", nil)
	assert.EqualValues(t, 1, resp["count"])
}

func TestDuplicateAvatar(t *testing.T) {
	e := newTestEnv(t)
	orig := seedAvatar(t, e, "orig", "Original", "SaaS", "2026-01-01T00:00:00.000Z")

	w, resp := e.do(t, http.MethodPost, "/api/avatars/orig/duplicate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dupID := resp["avatar"].(map[string]any)["id"].(string)
	assert.Equal(t, "id-1", dupID)

	dup, err := e.store.Get(context.Background(), dupID)
	require.NoError(t, err)
	assert.Equal(t, "2026-04-02T08:30:00.000Z", dup.CreatedAt)
	assert.Equal(t, dup.CreatedAt, dup.UpdatedAt)
	if diff := cmp.Diff(orig, dup, cmpopts.IgnoreFields(models.Avatar{}, "ID", "CreatedAt", "UpdatedAt")); diff != "" {
		t.Errorf("duplicate differs (-orig +dup):\n%s", diff)
	}

	w, _ = e.do(t, http.MethodPost, "/api/avatars/ghost/duplicate", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompareAvatars(t *testing.T) {
	e := newTestEnv(t)
	for _, id := range []string{"a", "b", "c", "d"} {
		seedAvatar(t, e, id, "Avatar "+id, "SaaS", "2026-01-01T00:00:00.000Z")
	}

	w, resp := e.do(t, http.MethodGet, "/api/avatars/compare?ids=c,a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	avatars := resp["avatars"].([]any)
	require.Len(t, avatars, 2)
	assert.Equal(t, "c", avatars[0].(map[string]any)["id"])

	w, _ = e.do(t, http.MethodGet, "/api/avatars/compare?ids=a,b,c,d", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = e.do(t, http.MethodGet, "/api/avatars/compare", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = e.do(t, http.MethodGet, "/api/avatars/compare?ids=a,zzz", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTemplates(t *testing.T) {
	e := newTestEnv(t)

	_, resp := e.do(t, http.MethodGet, "/api/templates", nil)
	assert.EqualValues(t, 12, resp["count"])

	_, resp = e.do(t, http.MethodGet, "/api/templates?industry=pet", nil)
	assert.EqualValues(t, 1, resp["count"])

	_, resp = e.do(t, http.MethodGet, "/api/templates/industries", nil)
	assert.Len(t, resp["industries"], 12)

	w, resp := e.do(t, http.MethodGet, "/api/templates/saas-b2b", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SaaS - B2B Software", resp["template"].(map[string]any)["name"])

	w, resp = e.do(t, http.MethodGet, "/api/templates/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Template not found", resp["error"])
}
