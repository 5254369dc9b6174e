// Package httpapi exposes the gateway over HTTP: generation, provider
// management, and portable bundle operations.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/davidbz/hearth/internal/bundle"
	"github.com/davidbz/hearth/internal/config"
	"github.com/davidbz/hearth/internal/domain"
	"github.com/davidbz/hearth/internal/observability"
	"github.com/davidbz/hearth/internal/provider/registry"
)

// Handler handles HTTP requests.
type Handler struct {
	service  *domain.GenerationService
	registry *registry.Registry
	defaults *config.CredentialsConfig
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(
	service *domain.GenerationService,
	reg *registry.Registry,
	defaults *config.CredentialsConfig,
) *Handler {
	return &Handler{
		service:  service,
		registry: reg,
		defaults: defaults,
	}
}

// generateRequest is the request body for POST /v1/generate.
type generateRequest struct {
	Provider    string            `json:"provider"`
	Prompt      string            `json:"prompt"`
	Model       string            `json:"model,omitempty"`
	Parameters  map[string]any    `json:"parameters,omitempty"`
	Credentials map[string]string `json:"credentials,omitempty"`
}

// HandleGenerate processes generation requests.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ctx = observability.WithProvider(ctx, req.Provider)
	logger := observability.FromContext(ctx)
	logger.Info("generation request received",
		observability.String("provider", req.Provider),
		observability.String("model", req.Model))

	creds := h.resolveCredentials(req.Provider, req.Credentials)
	result, err := h.service.Generate(ctx, req.Provider, creds, &domain.GenerationRequest{
		Prompt:     req.Prompt,
		Model:      req.Model,
		Parameters: req.Parameters,
	})
	if err != nil {
		logger.Error("generation failed", observability.Error(err))
		writeError(w, statusFor(err), err.Error())
		return
	}

	logger.Info("generation succeeded",
		observability.Int("text_length", len(result.Text)))
	writeJSON(w, http.StatusOK, result)
}

// HandleListProviders returns summaries of registered providers.
func (h *Handler) HandleListProviders(w http.ResponseWriter, r *http.Request) {
	type providerSummary struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
		Builtin     bool   `json:"builtin"`
	}

	descs := h.registry.List(r.Context())
	summaries := make([]providerSummary, 0, len(descs))
	for _, desc := range descs {
		summaries = append(summaries, providerSummary{
			ID:          desc.ID,
			DisplayName: desc.DisplayName,
			Builtin:     h.registry.IsBuiltin(desc.ID),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"providers": summaries})
}

// HandleRegisterProvider registers a custom declarative provider.
func (h *Handler) HandleRegisterProvider(w http.ResponseWriter, r *http.Request) {
	var desc domain.APIDescription
	if err := json.NewDecoder(r.Body).Decode(&desc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid provider description: "+err.Error())
		return
	}

	if err := h.registry.Register(r.Context(), &desc); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	observability.FromContext(r.Context()).Info("custom provider registered",
		observability.String("provider", desc.ID))
	writeJSON(w, http.StatusCreated, map[string]string{"id": desc.ID})
}

// HandleRemoveProvider removes a custom provider.
func (h *Handler) HandleRemoveProvider(w http.ResponseWriter, r *http.Request) {
	providerID := r.PathValue("id")
	if err := h.registry.Remove(r.Context(), providerID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleValidateBundle parses and validates a portable bundle, returning the
// structural result with any placeholder-credential warnings.
func (h *Handler) HandleValidateBundle(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	cfg, err := bundle.Unmarshal(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, bundle.Validate(cfg))
}

// bundleGenerateRequest is the request body for POST /v1/bundles/generate.
type bundleGenerateRequest struct {
	Bundle *domain.PortableConfig `json:"bundle"`
	Prompt string                 `json:"prompt,omitempty"`
}

// HandleGenerateFromBundle runs a prompt through a client rehydrated from a
// portable bundle.
func (h *Handler) HandleGenerateFromBundle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req bundleGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Bundle != nil {
		ctx = observability.WithProvider(ctx, req.Bundle.ProviderID)
	}

	result, err := h.service.GenerateFromPortableConfig(ctx, req.Bundle, req.Prompt)
	if err != nil {
		observability.FromContext(ctx).Error("bundle generation failed", observability.Error(err))
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// bundleSnippetRequest is the request body for POST /v1/bundles/snippet.
type bundleSnippetRequest struct {
	Bundle *domain.PortableConfig `json:"bundle"`
	Target string                 `json:"target"`
}

// HandleBundleSnippet renders a source-code snippet for the bundle's request.
func (h *Handler) HandleBundleSnippet(w http.ResponseWriter, r *http.Request) {
	var req bundleSnippetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Bundle == nil {
		writeError(w, http.StatusBadRequest, "bundle is required")
		return
	}

	desc, ok := h.registry.Get(r.Context(), req.Bundle.ProviderID)
	if !ok {
		writeError(w, http.StatusNotFound, "provider "+req.Bundle.ProviderID+" not found")
		return
	}

	snippet, err := bundle.EmitSnippet(desc, req.Bundle, req.Target)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"snippet": snippet})
}

// bundleExportRequest is the request body for POST /v1/bundles/export.
type bundleExportRequest struct {
	Provider    string            `json:"provider"`
	Credentials map[string]string `json:"credentials"`
	Model       string            `json:"model,omitempty"`
	Parameters  map[string]any    `json:"parameters,omitempty"`
	Description string            `json:"description,omitempty"`
}

// HandleExportBundle assembles a portable bundle document.
func (h *Handler) HandleExportBundle(w http.ResponseWriter, r *http.Request) {
	var req bundleExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if _, ok := h.registry.Get(r.Context(), req.Provider); !ok {
		writeError(w, http.StatusNotFound, "provider "+req.Provider+" not found")
		return
	}

	cfg := bundle.Export(req.Provider, domain.CredentialSet(req.Credentials), req.Model, req.Parameters, req.Description)
	writeJSON(w, http.StatusOK, cfg)
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// resolveCredentials merges request-supplied credentials over the server-side
// defaults for the provider. Request values always win.
func (h *Handler) resolveCredentials(providerID string, supplied map[string]string) domain.CredentialSet {
	creds := domain.CredentialSet{}
	if h.defaults != nil {
		for k, v := range h.defaults.For(providerID) {
			creds[k] = v
		}
	}
	for k, v := range supplied {
		if v != "" {
			creds[k] = v
		}
	}
	return creds
}

// statusFor maps the error taxonomy to HTTP status codes.
func statusFor(err error) int {
	var (
		unsupported *domain.UnsupportedProviderError
		configErr   *domain.ConfigurationError
		authErr     *domain.AuthenticationError
		rateErr     *domain.RateLimitError
		serverErr   *domain.ServerUnavailableError
		emptyErr    *domain.EmptyResponseError
		transport   *domain.TransportError
	)

	switch {
	case errors.As(err, &unsupported), errors.As(err, &configErr):
		return http.StatusBadRequest
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &rateErr):
		return http.StatusTooManyRequests
	case errors.As(err, &serverErr), errors.As(err, &emptyErr), errors.As(err, &transport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
