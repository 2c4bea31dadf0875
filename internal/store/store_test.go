package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var updateTime = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "avatars.db"),
		WithClock(func() time.Time { return updateTime }))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testAvatar(id, name, industry, createdAt string) *models.Avatar {
	hasKids := true
	return &models.Avatar{
		ID:        id,
		Name:      name,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		BusinessInfo: models.BusinessInfo{
			Industry:        industry,
			Niche:           "Fitness",
			BusinessType:    models.BusinessTypeB2C,
			Competitors:     []string{"https://rival.example.com"},
			TargetGeography: []string{"United States"},
		},
		Narrative: "Meet Jordan.",
		Demographics: models.Demographics{
			AgeRange:    models.Range{Min: 25, Max: 45},
			Gender:      "all",
			Locations:   []string{"United States"},
			HasChildren: &hasKids,
			Confidence:  0.7,
		},
		PainPoints: []models.PainPoint{{Description: "No time", Severity: "high", Frequency: "Daily", Source: "Research"}},
		Sources: []models.Source{{
			Type: models.SourceAIInference, Name: "Claude Analysis",
			Reliability: models.ReliabilityMedium, DataPoint: "Avatar generation",
		}},
		OverallConfidence: 0.72,
		GenerationMode:    models.ModeQuick,
		Industry:          industry,
		Tags:              []string{industry, "b2c", "Fitness"},
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	s := openTestStore(t)
	assert.FileExists(t, s.Path())
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	want := testAvatar("a1", "Fitness Avatar - 3/14/2026", "Health & Wellness", "2026-03-14T09:26:53.000Z")
	want.UserID = "user-7"

	require.NoError(t, s.Save(ctx, want))

	got, err := s.Get(ctx, "a1")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveUpserts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	a := testAvatar("a1", "First", "SaaS", "2026-03-14T09:26:53.000Z")
	require.NoError(t, s.Save(ctx, a))

	a.Name = "Renamed"
	a.IsTemplate = true
	require.NoError(t, s.Save(ctx, a))

	all, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Renamed", all[0].Name)
	assert.True(t, all[0].IsTemplate)
}

func TestGetNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	template := testAvatar("t1", "SaaS Starter", "SaaS", "2026-01-01T00:00:00.000Z")
	template.IsTemplate = true
	for _, a := range []*models.Avatar{
		testAvatar("a1", "Yoga Moms", "Health & Wellness", "2026-02-01T00:00:00.000Z"),
		template,
		testAvatar("a2", "Weekend Runners", "Health & Wellness", "2026-03-01T00:00:00.000Z"),
		testAvatar("a3", "100%_Organic", "Food", "2026-01-15T00:00:00.000Z"),
	} {
		require.NoError(t, s.Save(ctx, a))
	}

	ids := func(avatars []models.Avatar) []string {
		out := []string{}
		for _, a := range avatars {
			out = append(out, a.ID)
		}
		return out
	}
	isTemplate, notTemplate := true, false

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"newest first", Filter{}, []string{"a2", "a1", "a3", "t1"}},
		{"industry", Filter{Industry: "Health & Wellness"}, []string{"a2", "a1"}},
		{"templates", Filter{IsTemplate: &isTemplate}, []string{"t1"}},
		{"non templates", Filter{IsTemplate: &notTemplate}, []string{"a2", "a1", "a3"}},
		{"search name case-insensitive", Filter{Search: "yoga"}, []string{"a1"}},
		{"search industry", Filter{Search: "wellness"}, []string{"a2", "a1"}},
		{"search wildcard chars literal", Filter{Search: "%_"}, []string{"a3"}},
		{"combined", Filter{Search: "saas", IsTemplate: &isTemplate}, []string{"t1"}},
		{"no match", Filter{Search: "crypto"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestUpdate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	orig := testAvatar("a1", "Original", "SaaS", "2026-03-14T09:26:53.000Z")
	require.NoError(t, s.Save(ctx, orig))

	narrative := "Meet Sam, a startup founder."
	tags := []string{"founders"}
	sources := []models.Source{}
	updated, err := s.Update(ctx, "a1", models.AvatarUpdate{
		Narrative: &narrative,
		Tags:      &tags,
		Sources:   &sources,
	})
	require.NoError(t, err)

	assert.Equal(t, "Original", updated.Name)
	assert.Equal(t, narrative, updated.Narrative)
	assert.Equal(t, tags, updated.Tags)
	assert.Empty(t, updated.Sources)
	assert.Equal(t, orig.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "2026-05-01T12:00:00.000Z", updated.UpdatedAt)
	assert.Equal(t, orig.Demographics, updated.Demographics)

	reloaded, err := s.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, updated, reloaded)
}

func TestUpdateIgnoresEmptyName(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, testAvatar("a1", "Keep me", "SaaS", "2026-03-14T09:26:53.000Z")))

	empty := ""
	updated, err := s.Update(ctx, "a1", models.AvatarUpdate{Name: &empty})
	require.NoError(t, err)
	assert.Equal(t, "Keep me", updated.Name)
}

func TestUpdateNotFound(t *testing.T) {
	s := openTestStore(t)
	name := "x"
	_, err := s.Update(context.Background(), "missing", models.AvatarUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, testAvatar("a1", "Doomed", "SaaS", "2026-03-14T09:26:53.000Z")))

	require.NoError(t, s.Delete(ctx, "a1"))
	_, err := s.Get(ctx, "a1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.Delete(ctx, "a1"))
}

func TestDuplicateRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	orig := testAvatar("a1", "Original", "SaaS", "2026-03-14T09:26:53.000Z")
	require.NoError(t, s.Save(ctx, orig))

	dup := orig.Duplicate("a2", updateTime)
	require.NoError(t, s.Save(ctx, &dup))

	got, err := s.Get(ctx, "a2")
	require.NoError(t, err)
	if diff := cmp.Diff(orig, got, cmpopts.IgnoreFields(models.Avatar{}, "ID", "CreatedAt", "UpdatedAt")); diff != "" {
		t.Errorf("duplicate differs beyond identity (-orig +dup):\n%s", diff)
	}
	assert.NotEqual(t, orig.CreatedAt, got.CreatedAt)
}
