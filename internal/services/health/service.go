package health

// BotState reports whether the update loop is running.
type BotState interface {
	Running() bool
}

// Status is the /health payload.
type Status struct {
	Status string `json:"status"`
	Bot    string `json:"bot"`
}

// Service encapsulates health-related checks.
type Service struct {
	Bot BotState
}

// NewService constructs a new health service.
func NewService(bot BotState) *Service {
	return &Service{Bot: bot}
}

// Status reports liveness of the HTTP surface and the bot loop. The HTTP
// surface answering at all is what makes status "ok".
func (s *Service) Status() Status {
	bot := "stopped"
	if s != nil && s.Bot != nil && s.Bot.Running() {
		bot = "running"
	}
	return Status{Status: "ok", Bot: bot}
}
