package websocket

// Message is the inbound client event envelope. The type field discriminates;
// the remaining fields belong to one event each.
type Message struct {
	Type     string `json:"type"`
	Nickname string `json:"nickname,omitempty"`
	Cell     *int   `json:"cell,omitempty"`
}

const (
	actionJoin = "join"
	actionMove = "move"
)

type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type StartResponse struct {
	Type             string `json:"type"`
	Symbol           string `json:"symbol"`
	OpponentNickname string `json:"opponent_nickname"`
}

type TurnResponse struct {
	Type  string `json:"type"`
	Value bool   `json:"value"`
}

type MoveResponse struct {
	Type   string `json:"type"`
	Cell   int    `json:"cell"`
	Symbol string `json:"symbol"`
}

type GameoverResponse struct {
	Type   string `json:"type"`
	Result string `json:"result"`
}

type OpponentLeftResponse struct {
	Type string `json:"type"`
}
