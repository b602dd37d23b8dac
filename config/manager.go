/*
 * ROSA Agent - AI assistant for Red Hat OpenShift Service on AWS
 * License: MIT
 */
package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// ConfigManager centraliza o acesso a todas as configurações.
// A ordem de prioridade é: Variáveis de Ambiente > Arquivo .env > Padrões.
type ConfigManager struct {
	mu     sync.RWMutex
	values map[string]interface{}
	logger *zap.Logger
}

// New cria uma nova instância do ConfigManager.
func New(logger *zap.Logger) *ConfigManager {
	return &ConfigManager{
		values: make(map[string]interface{}),
		logger: logger,
	}
}

// Load carrega as configurações de todas as fontes.
func (cm *ConfigManager) Load() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.loadDefaults()
	cm.loadEnvFile()
	cm.loadEnvVars()
}

// loadDefaults carrega os valores padrão.
func (cm *ConfigManager) loadDefaults() {
	cm.values["LLM_PROVIDER"] = DefaultLLMProvider
	cm.values["OPENAI_MODEL"] = DefaultOpenAIModel
	cm.values["GROQ_MODEL"] = DefaultGroqModel
	cm.values["CLAUDEAI_MODEL"] = DefaultClaudeAIModel
	cm.values["LOCAL_LLM_MODEL"] = DefaultLocalModel
	cm.values["SETTINGS_FILE"] = DefaultSettingsFile
	cm.values["ALLOWED_COMMANDS"] = strings.Join(DefaultAllowedPrefixes, ",")
	cm.values["COMMAND_TIMEOUT"] = DefaultCommandTimeout.String()
	cm.values["MAX_RETRIES"] = strconv.Itoa(DefaultMaxAttempts)
	cm.values["INITIAL_BACKOFF"] = DefaultInitialBackoff.String()
	cm.values["PORT"] = strconv.Itoa(DefaultHTTPPort)
}

// loadEnvFile carrega configurações do arquivo .env.
func (cm *ConfigManager) loadEnvFile() {
	envMap, err := godotenv.Read() // Não sobrepõe vars de ambiente existentes
	if err != nil {
		cm.logger.Debug("Arquivo .env não encontrado ou erro na leitura", zap.Error(err))
		return
	}
	for key, value := range envMap {
		cm.values[key] = value
	}
}

// loadEnvVars carrega configurações das variáveis de ambiente do sistema (maior prioridade).
func (cm *ConfigManager) loadEnvVars() {
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			cm.values[pair[0]] = pair[1]
		}
	}
}

// Set injeta um valor, tipicamente de uma flag (maior prioridade).
func (cm *ConfigManager) Set(key string, value interface{}) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.values[key] = value
}

// GetString retorna um valor de configuração como string.
func (cm *ConfigManager) GetString(key string) string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	if val, ok := cm.values[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return ""
}

// GetInt retorna um valor de configuração como int.
func (cm *ConfigManager) GetInt(key string, defaultValue int) int {
	valStr := cm.GetString(key)
	if valStr == "" {
		return defaultValue
	}
	if intVal, err := strconv.Atoi(valStr); err == nil {
		return intVal
	}
	return defaultValue
}

// GetDuration retorna um valor de configuração como time.Duration.
func (cm *ConfigManager) GetDuration(key string, defaultValue time.Duration) time.Duration {
	valStr := cm.GetString(key)
	if valStr == "" {
		return defaultValue
	}
	if durVal, err := time.ParseDuration(valStr); err == nil {
		return durVal
	}
	return defaultValue
}

// GetStringSlice retorna um valor de configuração como lista, separada por vírgulas.
func (cm *ConfigManager) GetStringSlice(key string, defaultValue []string) []string {
	valStr := cm.GetString(key)
	if valStr == "" {
		return defaultValue
	}
	parts := strings.Split(valStr, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
