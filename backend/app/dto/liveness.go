package dto

type StatusResponse struct {
	Status string `json:"status"` // Unknown, Online, Offline
}

type HeartbeatResponse struct {
	ClientID string `json:"client_id"`
	Alive    bool   `json:"alive"`
}

type ClientInfo struct {
	ClientID   string `json:"client_id"`
	Status     string `json:"status"`
	LastSeenMS int64  `json:"last_seen_ms,omitempty"` // age of last heartbeat, 0 if never seen
}

type ClientListResponse struct {
	Clients []ClientInfo `json:"clients"`
	Count   int          `json:"count"`
}
