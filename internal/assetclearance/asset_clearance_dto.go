package assetclearance

// AssetItem is the structured JSON shape of one clearance row. The packed
// string never crosses the API boundary.
type AssetItem struct {
	Label     string `json:"label" binding:"required"`
	Condition string `json:"condition" binding:"required"`
	Comment   string `json:"comment"`
}

type SubmitAssetClearanceRequest struct {
	Items []AssetItem `json:"items" binding:"required,min=1,dive"`
}

type AssetClearanceResponse struct {
	ID          string      `json:"id"`
	ExitFormID  string      `json:"exit_form_id"`
	Items       []AssetItem `json:"items"`
	ClearedBy   string      `json:"cleared_by"`
	SubmittedAt string      `json:"submitted_at"`
	FormStatus  int         `json:"form_status"`
}
