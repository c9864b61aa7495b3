package settings

import "encoding/json"

type UpsertSettingRequest struct {
	Value json.RawMessage `json:"value" binding:"required"`
}

type SettingResponse struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt string          `json:"updated_at"`
}

type UpsertTablePreferenceRequest struct {
	VisibleColumns []string `json:"visible_columns" binding:"required"`
}

type TablePreferenceResponse struct {
	TableKey       string   `json:"table_key"`
	VisibleColumns []string `json:"visible_columns"`
	UpdatedAt      string   `json:"updated_at"`
}
