package dto

type EnqueueRequest struct {
	ClientID string `json:"client_id"`
	Command  string `json:"command"`
	Args     string `json:"args,omitempty"`
}

type EnqueueResponse struct {
	ID uint `json:"id"`
}

type PendingCommand struct {
	ID        uint   `json:"id"`
	Command   string `json:"command"`
	Args      string `json:"args"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

type PollResponse struct {
	Commands []PendingCommand `json:"commands"`
}

type ReportRequest struct {
	ID     uint   `json:"id"`
	Status string `json:"status,omitempty"`
	Result string `json:"result,omitempty"`
}

type QueueEntry struct {
	ID        uint   `json:"id"`
	Command   string `json:"command"`
	Args      string `json:"args"`
	Status    string `json:"status"`
	Result    string `json:"result"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}
