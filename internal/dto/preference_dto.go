package dto

type PreferenceResponse struct {
	SortKey       string `json:"sort_key"`
	SortAscending bool   `json:"sort_ascending"`
	SwipeLeft     string `json:"swipe_left"`
	SwipeRight    string `json:"swipe_right"`
	Layout        string `json:"layout"`
	VaultEnabled  bool   `json:"vault_enabled"`
}

// UpdatePreferenceRequest patches the singleton; nil fields keep their
// stored value.
type UpdatePreferenceRequest struct {
	SortKey       *string `json:"sort_key" validate:"omitempty,oneof=created_date edited_date title"`
	SortAscending *bool   `json:"sort_ascending"`
	SwipeLeft     *string `json:"swipe_left" validate:"omitempty,oneof=pin trash none"`
	SwipeRight    *string `json:"swipe_right" validate:"omitempty,oneof=pin trash none"`
	Layout        *string `json:"layout" validate:"omitempty,oneof=list grid"`
}
