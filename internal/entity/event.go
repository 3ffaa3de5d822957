package entity

const (
	EventStart        = "start"
	EventTurn         = "turn"
	EventMove         = "move"
	EventGameover     = "gameover"
	EventOpponentLeft = "opponent-left"
)

// Event is a protocol effect addressed to one player of a match. Match
// mutators return events in delivery order; the transport layer serializes
// them onto the recipients' connections.
type Event struct {
	Player *Player
	Type   string

	Mark     string // EventStart: recipient's mark; EventMove: the mover's mark
	Opponent string // EventStart: opponent's nickname
	Value    bool   // EventTurn: whether the recipient holds the turn
	Cell     int    // EventMove
	Result   string // EventGameover: PlayerX, PlayerO or ResultDraw
}
