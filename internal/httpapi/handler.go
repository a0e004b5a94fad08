// Package httpapi exposes the naming pipeline over HTTP for the web UI.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/nguyentantai21042004/clipnamer/internal/config"
	"github.com/nguyentantai21042004/clipnamer/internal/logger"
	"github.com/nguyentantai21042004/clipnamer/internal/naming"
	"github.com/nguyentantai21042004/clipnamer/internal/processor"
	"github.com/nguyentantai21042004/clipnamer/internal/storage"
)

var errInvalidSettings = errors.New("invalid settings")

// ProviderFactory opens a storage session for the bearer token of a
// request. It returns storage.ErrUnauthenticated when the token is unusable.
type ProviderFactory func(ctx context.Context, token string) (storage.Provider, error)

type Handler struct {
	processor processor.Processor
	providers ProviderFactory
	naming    config.NamingConfig
	logger    logger.Logger
}

func NewHandler(proc processor.Processor, providers ProviderFactory, namingCfg config.NamingConfig, log logger.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{processor: proc, providers: providers, naming: namingCfg, logger: log}
}

func (h *Handler) options(w http.ResponseWriter, _ *http.Request) {
	resp := OptionsResponse{
		CreatorCodes:      h.naming.CreatorCodes,
		DefaultCreator:    h.naming.DefaultCreator,
		StartingSequence:  h.naming.StartingSequence,
		DefaultMultiplier: h.naming.DefaultMultiplier,
	}
	if resp.CreatorCodes == nil {
		resp.CreatorCodes = []string{}
	}
	for _, m := range naming.Multipliers {
		resp.Multipliers = append(resp.Multipliers, MultiplierDTO{Code: m, Label: m.Label()})
	}
	writeSuccess(w, http.StatusOK, "", resp)
}

func (h *Handler) resolveFolder(w http.ResponseWriter, r *http.Request) {
	var req ResolveFolderRequest
	if !h.decode(w, r, &req) {
		return
	}
	id, err := naming.ResolveFolder(req.Reference)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", ResolveFolderResponse{FolderID: id})
}

func (h *Handler) propose(w http.ResponseWriter, r *http.Request) {
	var req ProposeRequest
	if !h.decode(w, r, &req) {
		return
	}
	folderID, settings, provider, ok := h.session(w, r, req.Reference, req.Settings)
	if !ok {
		return
	}

	proposals, err := h.processor.Propose(r.Context(), provider, folderID, processor.ProposeOptions{
		Settings:    settings,
		Multipliers: req.Multipliers,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", ProposeResponse{FolderID: folderID, Settings: settings, Proposals: nonNil(proposals)})
}

func (h *Handler) recompose(w http.ResponseWriter, r *http.Request) {
	var req RecomposeRequest
	if !h.decode(w, r, &req) {
		return
	}
	folderID, settings, provider, ok := h.session(w, r, req.Reference, req.Settings)
	if !ok {
		return
	}

	proposals, err := h.processor.Recompose(r.Context(), provider, folderID, req.Proposals, processor.ProposeOptions{
		Settings:    settings,
		Multipliers: req.Multipliers,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", ProposeResponse{FolderID: folderID, Settings: settings, Proposals: nonNil(proposals)})
}

// rename applies a batch. The response is 200 when everything was renamed
// and 207 when some items failed.
func (h *Handler) rename(w http.ResponseWriter, r *http.Request) {
	var req RenameRequest
	if !h.decode(w, r, &req) {
		return
	}
	provider, err := h.providers(r.Context(), tokenFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	result := h.processor.Rename(r.Context(), provider, req.Renames)
	switch {
	case result.Unauthenticated && result.RenamedCount == 0:
		h.fail(w, r, storage.ErrUnauthenticated)
	case len(result.FailedIDs) > 0:
		writeSuccess(w, http.StatusMultiStatus, "some renames failed", result)
	default:
		writeSuccess(w, http.StatusOK, "", result)
	}
}

// session resolves the folder, fills in default settings and opens the
// storage provider. It writes the error response itself.
func (h *Handler) session(w http.ResponseWriter, r *http.Request, reference string, dto SettingsDTO) (string, naming.Settings, storage.Provider, bool) {
	folderID, err := naming.ResolveFolder(reference)
	if err != nil {
		h.fail(w, r, err)
		return "", naming.Settings{}, nil, false
	}
	settings, err := h.settings(dto)
	if err != nil {
		h.fail(w, r, err)
		return "", naming.Settings{}, nil, false
	}
	provider, err := h.providers(r.Context(), tokenFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return "", naming.Settings{}, nil, false
	}
	return folderID, settings, provider, true
}

func (h *Handler) settings(dto SettingsDTO) (naming.Settings, error) {
	s := naming.Settings{
		CreatorCode:       h.naming.DefaultCreator,
		StartingSequence:  h.naming.StartingSequence,
		DefaultMultiplier: h.naming.DefaultMultiplier,
	}
	if dto.CreatorCode != nil {
		s.CreatorCode = *dto.CreatorCode
	}
	if dto.StartingSequence != 0 {
		s.StartingSequence = dto.StartingSequence
	}
	if dto.DefaultMultiplier != "" {
		s.DefaultMultiplier = dto.DefaultMultiplier
	}

	if err := h.naming.CheckSettings(s); err != nil {
		return s, fmt.Errorf("%w: %v", errInvalidSettings, err)
	}
	return s, nil
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error(), logger.RequestID(r.Context()))
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := mapError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed: %v", err)
	}
	writeError(w, status, code, err.Error(), logger.RequestID(r.Context()))
}

func nonNil(p []processor.Proposal) []processor.Proposal {
	if p == nil {
		return []processor.Proposal{}
	}
	return p
}
