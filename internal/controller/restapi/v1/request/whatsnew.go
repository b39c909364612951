package request

type WhatsNew struct {
	Version string `query:"version"`
	Lang    string `query:"lang"`
}

// UploadChangelog is accepted as urlencoded form or JSON.
type UploadChangelog struct {
	NewCN  string `json:"new_cn" form:"new_cn"`
	NewENG string `json:"new_eng" form:"new_eng"`
}
