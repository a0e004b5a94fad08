package httpapi

import (
	"github.com/nguyentantai21042004/clipnamer/internal/naming"
	"github.com/nguyentantai21042004/clipnamer/internal/processor"
)

type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ErrorPayload struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorResponse struct {
	Status string       `json:"status"`
	Error  ErrorPayload `json:"error"`
}

type MultiplierDTO struct {
	Code  naming.Multiplier `json:"code"`
	Label string            `json:"label"`
}

type OptionsResponse struct {
	CreatorCodes      []string          `json:"creator_codes"`
	DefaultCreator    string            `json:"default_creator"`
	Multipliers       []MultiplierDTO   `json:"multipliers"`
	StartingSequence  int               `json:"starting_sequence"`
	DefaultMultiplier naming.Multiplier `json:"default_multiplier"`
}

type ResolveFolderRequest struct {
	Reference string `json:"reference"`
}

type ResolveFolderResponse struct {
	FolderID string `json:"folder_id"`
}

// SettingsDTO carries optional per-session settings. Missing fields take
// the configured defaults.
type SettingsDTO struct {
	CreatorCode       *string           `json:"creator_code,omitempty"`
	StartingSequence  int               `json:"starting_sequence,omitempty"`
	DefaultMultiplier naming.Multiplier `json:"default_multiplier,omitempty"`
}

type ProposeRequest struct {
	Reference   string                       `json:"reference"`
	Settings    SettingsDTO                  `json:"settings"`
	Multipliers map[string]naming.Multiplier `json:"multipliers,omitempty"`
}

type RecomposeRequest struct {
	Reference   string                       `json:"reference"`
	Settings    SettingsDTO                  `json:"settings"`
	Multipliers map[string]naming.Multiplier `json:"multipliers,omitempty"`
	Proposals   []processor.Proposal         `json:"proposals"`
}

type ProposeResponse struct {
	FolderID  string               `json:"folder_id"`
	Settings  naming.Settings      `json:"settings"`
	Proposals []processor.Proposal `json:"proposals"`
}

type RenameRequest struct {
	Renames []processor.RenameRequest `json:"renames"`
}
