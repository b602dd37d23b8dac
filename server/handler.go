/*
 * ROSA Agent - AI assistant for Red Hat OpenShift Service on AWS
 * License: MIT
 */
package server

import (
	"encoding/json"
	"net/http"

	"github.com/manu-joy/rosa-agent/cliexec"
	"github.com/manu-joy/rosa-agent/expert"
	"github.com/manu-joy/rosa-agent/gateway"
	"github.com/manu-joy/rosa-agent/llm"
	"github.com/manu-joy/rosa-agent/models"
	"github.com/manu-joy/rosa-agent/settings"
	"go.uber.org/zap"
)

// Handler implements the HTTP API handlers.
type Handler struct {
	gateway  *gateway.Gateway
	expert   *expert.Expert
	llmMgr   *llm.Manager
	store    *settings.Store
	executor *cliexec.Executor
	logger   *zap.Logger
}

// NewHandler creates the API handler with its dependencies.
func NewHandler(gw *gateway.Gateway, exp *expert.Expert, llmMgr *llm.Manager, store *settings.Store, executor *cliexec.Executor, logger *zap.Logger) *Handler {
	return &Handler{
		gateway:  gw,
		expert:   exp,
		llmMgr:   llmMgr,
		store:    store,
		executor: executor,
		logger:   logger,
	}
}

// chatRequest is the POST /api/chat body.
type chatRequest struct {
	Message string `json:"message"`
}

// commandExecuted summarizes a command run during a chat turn.
type commandExecuted struct {
	Command string `json:"command"`
	Success bool   `json:"success"`
	Output  string `json:"output"`
	Error   string `json:"error,omitempty"`
}

// Chat handles POST /api/chat: one conversation turn, optionally with a
// command executed through the gateway before the model responds.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "No message provided",
		})
		return
	}

	client, kind, ok := h.currentProvider()
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "LLM provider not configured. Please configure in settings.",
		})
		return
	}

	// Gateway first: the command result must be in the transcript before the
	// model generates, so the answer reflects real infrastructure state.
	command, result := h.gateway.HandleTurn(r.Context(), req.Message)

	h.expert.Append("user", req.Message)
	if result != nil {
		h.expert.AppendCommandContext(command, *result)
	}

	messages := h.expert.SnapshotWithKnowledge(kind, req.Message)
	response, err := client.SendPrompt(r.Context(), messages, models.DefaultProviderOptions())
	if err != nil {
		h.logger.Error("LLM generation failed", zap.String("provider", kind), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": "Error generating response: " + err.Error(),
		})
		return
	}

	response = llm.SanitizeResponse(response)
	h.expert.Append("assistant", response)

	payload := map[string]interface{}{
		"response": response,
		"success":  true,
	}
	if result != nil {
		payload["command_executed"] = commandExecuted{
			Command: command,
			Success: result.Success,
			Output:  result.Output,
			Error:   result.Error,
		}
	}
	writeJSON(w, http.StatusOK, payload)
}

// currentProvider returns the active LLM client, building it on demand from
// the persisted settings when the server started without credentials.
func (h *Handler) currentProvider() (llm.LLMClient, string, bool) {
	if client, kind, ok := h.llmMgr.Current(); ok {
		return client, kind, true
	}

	doc := h.store.Load()
	if !doc.IsConfigured() {
		return nil, "", false
	}
	if err := h.llmMgr.Configure(doc); err != nil {
		h.logger.Warn("On-demand provider configuration failed", zap.Error(err))
		return nil, "", false
	}
	return h.llmMgr.Current()
}

// executeRequest is the POST /api/execute body.
type executeRequest struct {
	Command string `json:"command"`
}

// Execute handles POST /api/execute: direct command execution outside the
// conversation. Disallowed commands still get a 200 with a structured
// failure result; the allow-list verdict is data, not a transport error.
func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Command == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "No command provided",
		})
		return
	}

	result := h.executor.Execute(r.Context(), req.Command)
	writeJSON(w, http.StatusOK, result)
}

// GetSettings handles GET /api/settings: the persisted document with the API
// key masked.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Masked())
}

// settingsRequest is the POST /api/settings body.
type settingsRequest struct {
	Provider       string                  `json:"provider"`
	Config         settings.ProviderConfig `json:"config"`
	TestConnection bool                    `json:"test_connection"`
}

// UpdateSettings handles POST /api/settings: validates the new provider
// configuration, optionally probes the provider, swaps it in atomically and
// persists the document.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Provider == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "No provider specified",
		})
		return
	}

	doc := settings.Document{Provider: req.Provider, Config: req.Config}

	client, err := h.llmMgr.BuildClient(doc)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if req.TestConnection {
		if !client.ValidateConfig(r.Context()) {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error": "Connection test failed. Please verify your credentials.",
			})
			return
		}
	}

	if err := h.llmMgr.Configure(doc); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if err := h.store.Save(doc); err != nil {
		h.logger.Error("Failed to persist settings", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": "Failed to save settings",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"settings": h.store.Masked(),
	})
}

// ClearConversation handles POST /api/conversation/clear.
func (h *Handler) ClearConversation(w http.ResponseWriter, r *http.Request) {
	h.expert.Clear()
	h.logger.Info("Conversation cleared")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// Health handles GET /api/health: reports the active provider and the
// installed CLI tool versions.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	provider := "not configured"
	if _, kind, ok := h.llmMgr.Current(); ok {
		provider = kind
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"provider":  provider,
		"cli_tools": h.executor.Versions(r.Context()),
	})
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
