package model

// Meeting is one scheduled club meeting after synonym resolution.
type Meeting struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Duration  string `json:"duration"`
	Type      string `json:"type"`
	Room      string `json:"room"`
	Cancelled bool   `json:"cancelled"`
}

type BoardMember struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}
