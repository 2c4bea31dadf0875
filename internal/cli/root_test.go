package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/models"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T) {
	t.Helper()
	flagEnvFile = filepath.Join(t.TempDir(), "missing.env")
	flagVerbose = false
	flagIndustry, flagNiche, flagProduct, flagType = "", "", "", ""
	flagPrice, flagUSP, flagCustomers = "", "", ""
	flagCompetitors, flagGeography = nil, nil
	flagTemplate, flagOutput, flagFilter = "", "", ""
	flagMode = string(models.ModeQuick)
	flagSave = false
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestBusinessInfoFromTemplate(t *testing.T) {
	resetFlags(t)
	lib, err := templates.Load()
	require.NoError(t, err)

	flagTemplate = "health-fitness"
	flagPrice = "$49/month"
	info, mode, err := businessInfo(lib)
	require.NoError(t, err)

	assert.Equal(t, models.ModeQuick, mode)
	assert.Equal(t, "Health & Wellness", info.Industry)
	assert.Equal(t, "Fitness & Personal Training", info.Niche)
	assert.Equal(t, models.BusinessTypeB2C, info.BusinessType)
	assert.Equal(t, "$49/month", info.PricePoint)
}

func TestBusinessInfoErrors(t *testing.T) {
	lib, err := templates.Load()
	require.NoError(t, err)

	tests := []struct {
		name string
		set  func()
	}{
		{"unknown template", func() { flagTemplate = "nope" }},
		{"missing niche", func() { flagIndustry, flagType = "Retail", "b2c" }},
		{"bad type", func() { flagIndustry, flagNiche, flagType = "Retail", "Shoes", "b3b" }},
		{"bad mode", func() { flagIndustry, flagNiche, flagType, flagMode = "Retail", "Shoes", "b2c", "slow" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			tt.set()
			_, _, err := businessInfo(lib)
			assert.Error(t, err)
		})
	}
}

func TestTemplatesCommand(t *testing.T) {
	resetFlags(t)
	out, err := execute(t, "templates", "--industry", "wellness")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "health-fitness")
	assert.NotContains(t, out, "saas-b2b")

	resetFlags(t)
	out, err = execute(t, "templates", "saas-b2b")
	require.NoError(t, err)
	var tmpl models.IndustryTemplate
	require.NoError(t, json.Unmarshal([]byte(out), &tmpl))
	assert.Equal(t, "saas-b2b", tmpl.ID)

	resetFlags(t)
	_, err = execute(t, "templates", "missing")
	assert.Error(t, err)
}

func TestResearchCommandWithoutCompetitors(t *testing.T) {
	resetFlags(t)
	t.Setenv("RESEARCH_CACHE_DIR", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	output := filepath.Join(t.TempDir(), "research.json")

	_, err := execute(t, "research",
		"--industry", "SaaS", "--niche", "Project Management", "--type", "b2b",
		"--output", output)
	require.NoError(t, err)

	raw, err := os.ReadFile(output)
	require.NoError(t, err)
	var data models.ResearchData
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Empty(t, data.CompetitorAnalysis)
	assert.NotEmpty(t, data.MarketData)
	assert.Len(t, data.IndustryTrends, 5)
}

func TestGenerateRequiresAPIKey(t *testing.T) {
	resetFlags(t)
	t.Setenv("MODEL_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := execute(t, "generate", "--template", "ecommerce-fashion")
	assert.Error(t, err)
}
