package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "settings.json"), zap.NewNop())
}

func clearProviderEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LOCAL_LLM_ENDPOINT", "")
	t.Setenv("LOCAL_LLM_MODEL", "")
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "sk-ABCDE...1234", MaskKey("sk-ABCDEFGHIJKL1234"))
	assert.Equal(t, "***", MaskKey("short"))
	assert.Equal(t, "***", MaskKey("123456789012")) // 12 chars: ainda curto
	assert.Equal(t, "***", MaskKey(""))
}

func TestStore_SaveAndLoad(t *testing.T) {
	clearProviderEnv(t)
	s := newTestStore(t)

	doc := Document{
		Provider: "groq",
		Config: ProviderConfig{
			APIKey: "gsk-ABCDEFGHIJKL1234",
			Model:  "llama-3.1-8b-instant",
		},
	}
	require.NoError(t, s.Save(doc))

	loaded := s.Load()
	assert.Equal(t, doc, loaded)
	assert.True(t, loaded.IsConfigured())
}

func TestStore_Load_SeedsFromEnv(t *testing.T) {
	clearProviderEnv(t)

	t.Run("local tem prioridade", func(t *testing.T) {
		t.Setenv("LOCAL_LLM_ENDPOINT", "http://localhost:11434")
		t.Setenv("LOCAL_LLM_MODEL", "mistral")
		t.Setenv("GROQ_API_KEY", "gsk-ignored")

		doc := newTestStore(t).Load()
		assert.Equal(t, "local", doc.Provider)
		assert.Equal(t, "http://localhost:11434", doc.Config.EndpointURL)
		assert.Equal(t, "mistral", doc.Config.Model)
		assert.True(t, doc.IsConfigured())
	})

	t.Run("groq antes de openai", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "gsk-test")
		t.Setenv("OPENAI_API_KEY", "sk-ignored")

		doc := newTestStore(t).Load()
		assert.Equal(t, "groq", doc.Provider)
		assert.Equal(t, "gsk-test", doc.Config.APIKey)
		assert.Equal(t, "llama-3.1-8b-instant", doc.Config.Model)
	})

	t.Run("openai por ultimo", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")

		doc := newTestStore(t).Load()
		assert.Equal(t, "openai", doc.Provider)
		assert.Equal(t, "sk-test", doc.Config.APIKey)
		assert.Equal(t, "gpt-4", doc.Config.Model)
	})

	t.Run("sem credenciais", func(t *testing.T) {
		doc := newTestStore(t).Load()
		assert.Equal(t, "openai", doc.Provider)
		assert.False(t, doc.IsConfigured())
	})
}

func TestStore_Load_PersistedWinsOverEnv(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk-from-env")

	s := newTestStore(t)
	require.NoError(t, s.Save(Document{
		Provider: "anthropic",
		Config:   ProviderConfig{APIKey: "sk-ant-persisted", Model: "claude-3-sonnet-20240229"},
	}))

	doc := s.Load()
	assert.Equal(t, "anthropic", doc.Provider)
	assert.Equal(t, "sk-ant-persisted", doc.Config.APIKey)
}

func TestStore_Load_CorruptFileFallsBackToEnv(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk-test")

	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o644))

	doc := NewStore(path, zap.NewNop()).Load()
	assert.Equal(t, "groq", doc.Provider)
}

func TestStore_Masked(t *testing.T) {
	clearProviderEnv(t)
	s := newTestStore(t)
	require.NoError(t, s.Save(Document{
		Provider: "openai",
		Config:   ProviderConfig{APIKey: "sk-ABCDEFGHIJKL1234", Model: "gpt-4"},
	}))

	masked := s.Masked()
	assert.Equal(t, "sk-ABCDE...1234", masked.Config.APIKey)
	assert.Equal(t, "gpt-4", masked.Config.Model)

	// O documento em disco permanece com a chave completa
	assert.Equal(t, "sk-ABCDEFGHIJKL1234", s.Load().Config.APIKey)
}

func TestDocument_IsConfigured(t *testing.T) {
	assert.False(t, Document{}.IsConfigured())
	assert.False(t, Document{Provider: "openai"}.IsConfigured())
	assert.False(t, Document{Provider: "local"}.IsConfigured())
	assert.True(t, Document{Provider: "openai", Config: ProviderConfig{APIKey: "k"}}.IsConfigured())
	assert.True(t, Document{Provider: "local", Config: ProviderConfig{EndpointURL: "http://x"}}.IsConfigured())
}
