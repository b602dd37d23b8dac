package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultMaxLogSize = 50 // MB

// InitializeLogger configura e inicializa um logger com base nas variáveis de ambiente.
func InitializeLogger() (*zap.Logger, error) {
	// Definir o nível de log via variável de ambiente, default para Info
	logLevelEnv := strings.ToLower(os.Getenv("LOG_LEVEL"))
	var level zapcore.Level
	switch logLevelEnv {
	case "debug":
		level = zap.DebugLevel
	case "info":
		level = zap.InfoLevel
	case "warn":
		level = zap.WarnLevel
	case "error":
		level = zap.ErrorLevel
	default:
		level = zap.InfoLevel
	}

	// Configuração do encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder // Formato de tempo legível
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	// Determinar o ambiente (development ou production)
	env := strings.ToLower(os.Getenv("ENV"))
	var encoder zapcore.Encoder
	if env == "prod" {
		encoder = zapcore.NewJSONEncoder(encoderConfig) // JSON para Produção
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig) // Console para desenvolvimento
	}

	// Nome do arquivo de log configurável via variável de ambiente
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "rosa-agent.log"
	}

	// Configuração do logger com rotação de logs
	lumberjackLogger := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    getMaxLogSizeFromEnv(), // Tamanho máximo em MB
		MaxBackups: 3,
		MaxAge:     28, // Dias
		Compress:   true,
	}

	// Produção: apenas arquivo. Desenvolvimento: console e arquivo.
	var writeSyncer zapcore.WriteSyncer
	if env == "prod" {
		writeSyncer = zapcore.AddSync(lumberjackLogger)
	} else {
		writeSyncer = zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout), zapcore.AddSync(lumberjackLogger))
	}

	core := zapcore.NewCore(encoder, writeSyncer, level)
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	return logger, nil
}

// getMaxLogSizeFromEnv lê a variável de ambiente LOG_MAX_SIZE e retorna o valor em MB.
// Aceita valores como "50MB", "100KB", "1GB", etc.
func getMaxLogSizeFromEnv() int {
	envValue := os.Getenv("LOG_MAX_SIZE")
	if envValue != "" {
		size, err := parseSize(envValue)
		if err == nil && size > 0 {
			// O lumberjack espera o tamanho em MB
			return int(size / (1024 * 1024))
		}
	}
	return defaultMaxLogSize
}

// parseSize converte uma string de tamanho legível (como "50MB", "100KB", "1GB") para bytes.
func parseSize(sizeStr string) (int64, error) {
	sizeStr = strings.TrimSpace(sizeStr)
	unit := "B"
	var multiplier int64 = 1

	if strings.HasSuffix(sizeStr, "KB") {
		unit = "KB"
		multiplier = 1024
	} else if strings.HasSuffix(sizeStr, "MB") {
		unit = "MB"
		multiplier = 1024 * 1024
	} else if strings.HasSuffix(sizeStr, "GB") {
		unit = "GB"
		multiplier = 1024 * 1024 * 1024
	}

	sizeStr = strings.TrimSuffix(sizeStr, unit)
	sizeStr = strings.TrimSpace(sizeStr)

	size, err := strconv.ParseInt(sizeStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("tamanho inválido: %s", sizeStr)
	}

	return size * multiplier, nil
}
