package handler

type MeetingResponse struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Duration  string `json:"duration"`
	Type      string `json:"type"`
	Room      string `json:"room"`
	Cancelled bool   `json:"cancelled"`
}

type NextMeetingResponse struct {
	Meeting  *MeetingResponse `json:"meeting"`
	StartsAt *string          `json:"starts_at"`
	Display  string           `json:"display,omitempty"`
}

type KonamiRequest struct {
	Keys []string `json:"keys" binding:"required"`
}

type KonamiResponse struct {
	Fired    bool `json:"fired"`
	Position int  `json:"position"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Source string `json:"source"`
}
