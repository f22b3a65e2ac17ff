package api

type ResponseError struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}

type VersionInfo struct {
	Version   string   `json:"version"`
	Label     string   `json:"label"`
	Signature string   `json:"signature"`
	Targets   []string `json:"targets"`
}

type VersionList struct {
	Object string        `json:"object"`
	Data   []VersionInfo `json:"data"`
}

type DetectResponse struct {
	Version    string   `json:"version"`
	Label      string   `json:"label"`
	Signature  string   `json:"signature"`
	HeadOffset int      `json:"head_offset"`
	Targets    []string `json:"targets"`
}
