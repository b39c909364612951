package dto

type WhatsNew struct {
	CurVersion int    `json:"curVersion"`
	HTML       string `json:"html"`
}
