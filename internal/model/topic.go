package model

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// Topic is a debate topic as listed in topics.json.
type Topic struct {
	Title           string         `json:"topic"`
	Slug            string         `json:"slug,omitempty"`
	Description     []string       `json:"description,omitempty"`
	Resources       []Link         `json:"resources,omitempty"`
	ResearchLinks   []Link         `json:"research_links,omitempty"`
	DebateNotes     []Note         `json:"debate_notes,omitempty"`
	ResolutionLinks []Link         `json:"resolution_links,omitempty"`
	SpeakingStats   []SpeakingStat `json:"speaking_stats,omitempty"`
	MatrixCSV       string         `json:"matrix_csv,omitempty"`
}

type topicJSON struct {
	Topic           string          `json:"topic"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Description     json.RawMessage `json:"description"`
	About           json.RawMessage `json:"about"`
	Resources       []Link          `json:"resources"`
	ResearchLinks   []Link          `json:"research_links"`
	DebateNotes     []Note          `json:"debate_notes"`
	ResolutionLinks []Link          `json:"resolution_links"`
	SpeakingStats   []SpeakingStat  `json:"speaking_stats"`
	MatrixCSV       string          `json:"matrix_csv"`
}

func (t *Topic) UnmarshalJSON(data []byte) error {
	var raw topicJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	desc := raw.Description
	if isEmptyJSON(desc) {
		desc = raw.About
	}
	paragraphs, err := decodeParagraphs(desc)
	if err != nil {
		return err
	}

	*t = Topic{
		Title:           firstNonEmpty(raw.Topic, raw.Title),
		Slug:            raw.Slug,
		Description:     paragraphs,
		Resources:       raw.Resources,
		ResearchLinks:   raw.ResearchLinks,
		DebateNotes:     raw.DebateNotes,
		ResolutionLinks: raw.ResolutionLinks,
		SpeakingStats:   raw.SpeakingStats,
		MatrixCSV:       raw.MatrixCSV,
	}
	return nil
}

// Key is the explicit slug, or one derived from the title.
func (t Topic) Key() string {
	if t.Slug != "" {
		return t.Slug
	}
	return Slugify(t.Title)
}

func (t Topic) DisplayTitle() string {
	if t.Title == "" {
		return "Untitled Topic"
	}
	return t.Title
}

var blankLines = regexp.MustCompile(`\n{2,}`)

// decodeParagraphs accepts a list of paragraphs, or a single string split on
// blank lines. Empty or missing input yields nil.
func decodeParagraphs(raw json.RawMessage) ([]string, error) {
	if isEmptyJSON(raw) {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, nil
	}
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return blankLines.Split(s, -1), nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte(`""`))
}

// SpeakingStat counts how often a delegation spoke. TimesSpoken keeps the
// source text so numbers and strings render the same way.
type SpeakingStat struct {
	Country     string `json:"country"`
	TimesSpoken string `json:"times_spoken"`
}

func (s *SpeakingStat) UnmarshalJSON(data []byte) error {
	var raw struct {
		Country     string          `json:"country"`
		TimesSpoken json.RawMessage `json:"times_spoken"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Country = raw.Country
	s.TimesSpoken = ""

	times := bytes.TrimSpace(raw.TimesSpoken)
	switch {
	case len(times) == 0:
	case times[0] == '"':
		if err := json.Unmarshal(times, &s.TimesSpoken); err != nil {
			return err
		}
	default:
		var n json.Number
		if err := json.Unmarshal(times, &n); err == nil {
			s.TimesSpoken = n.String()
		} else {
			s.TimesSpoken = string(times)
		}
	}
	return nil
}
