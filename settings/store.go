/*
 * ROSA Agent - AI assistant for Red Hat OpenShift Service on AWS
 * License: MIT
 */
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/manu-joy/rosa-agent/config"
	"github.com/manu-joy/rosa-agent/utils"
	"go.uber.org/zap"
)

// ProviderConfig é a configuração de um provedor LLM persistida em disco.
type ProviderConfig struct {
	APIKey      string `json:"api_key,omitempty"`
	EndpointURL string `json:"endpoint_url,omitempty"`
	Model       string `json:"model"`
}

// Document é o documento de settings completo: o kind do provedor ativo e a
// sua configuração.
type Document struct {
	Provider string         `json:"provider"`
	Config   ProviderConfig `json:"config"`
}

// IsConfigured informa se o documento tem credenciais suficientes para
// construir um cliente. Provedores remotos exigem api_key; o provedor local
// exige endpoint_url.
func (d Document) IsConfigured() bool {
	if d.Provider == "" {
		return false
	}
	if d.Provider == "local" {
		return d.Config.EndpointURL != ""
	}
	return d.Config.APIKey != ""
}

// Store persiste o documento de settings em um arquivo JSON.
//
// O caminho padrão fica em /tmp para que uma instalação sem volume persistente
// volte limpa a cada reinício, recaindo na semeadura por variáveis de
// ambiente.
type Store struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

// NewStore cria um Store no caminho dado. Caminho vazio usa o padrão.
func NewStore(path string, logger *zap.Logger) *Store {
	if path == "" {
		path = config.DefaultSettingsFile
	}
	return &Store{path: path, logger: logger}
}

// Path retorna o caminho do arquivo de settings.
func (s *Store) Path() string {
	return s.path
}

// Load lê o documento do disco. Se o arquivo não existe ou está corrompido, o
// documento é semeado a partir das variáveis de ambiente, na ordem: servidor
// local (LOCAL_LLM_ENDPOINT), Groq (GROQ_API_KEY), OpenAI (OPENAI_API_KEY).
// Sem nenhuma credencial no ambiente, retorna um documento OpenAI vazio, que
// IsConfigured reporta como não configurado.
func (s *Store) Load() Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err == nil {
		var doc Document
		if err := json.Unmarshal(data, &doc); err == nil && doc.Provider != "" {
			return doc
		}
		s.logger.Warn("Arquivo de settings inválido, recaindo no ambiente",
			zap.String("path", s.path))
	}

	return s.seedFromEnv()
}

func (s *Store) seedFromEnv() Document {
	if endpoint := os.Getenv("LOCAL_LLM_ENDPOINT"); endpoint != "" {
		return Document{
			Provider: "local",
			Config: ProviderConfig{
				EndpointURL: endpoint,
				Model:       utils.GetEnvOrDefault("LOCAL_LLM_MODEL", config.DefaultLocalModel),
			},
		}
	}
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		return Document{
			Provider: "groq",
			Config: ProviderConfig{
				APIKey: key,
				Model:  utils.GetEnvOrDefault("GROQ_MODEL", config.DefaultGroqModel),
			},
		}
	}
	return Document{
		Provider: "openai",
		Config: ProviderConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  utils.GetEnvOrDefault("OPENAI_MODEL", config.DefaultOpenAIModel),
		},
	}
}

// Save grava o documento no disco. A escrita é feita em um arquivo temporário
// no mesmo diretório seguida de rename, para que leitores concorrentes nunca
// vejam um documento truncado.
func (s *Store) Save(doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("erro ao serializar settings: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("erro ao criar arquivo temporário: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("erro ao gravar settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("erro ao fechar settings: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("erro ao substituir settings: %w", err)
	}

	s.logger.Info("Settings persistidos",
		zap.String("path", s.path),
		zap.String("provider", doc.Provider))
	return nil
}

// Masked retorna o documento corrente com a api_key mascarada, próprio para
// exposição em respostas HTTP.
func (s *Store) Masked() Document {
	doc := s.Load()
	if doc.Config.APIKey != "" {
		doc.Config.APIKey = MaskKey(doc.Config.APIKey)
	}
	return doc
}

// MaskKey mascara uma chave de API preservando um prefixo e um sufixo curtos
// para identificação. Chaves curtas demais viram "***".
func MaskKey(key string) string {
	if len(key) > 12 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	return "***"
}

// Watch observa o arquivo de settings e invoca onChange com o documento
// recarregado a cada alteração. Observa o diretório pai porque Save substitui
// o arquivo por rename, o que invalidaria um watch direto no inode. Bloqueia
// até o contexto ser cancelado.
func (s *Store) Watch(ctx context.Context, onChange func(Document)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("erro ao criar watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("erro ao observar %s: %w", dir, err)
	}

	s.logger.Info("Observando settings", zap.String("path", s.path))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			s.logger.Debug("Settings alterados em disco", zap.String("op", event.Op.String()))
			onChange(s.Load())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Erro do watcher de settings", zap.Error(err))
		}
	}
}
