package model

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
)

// Link is a labelled URL. In the data files it appears either as a bare URL
// string or as an object with url and label (or name).
type Link struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

func (l *Link) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Link{URL: s}
		return nil
	}

	var raw struct {
		URL   string `json:"url"`
		Label string `json:"label"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = Link{URL: raw.URL, Label: firstNonEmpty(raw.Name, raw.Label)}
	return nil
}

// DisplayLabel returns the label, or one derived from the URL.
func (l Link) DisplayLabel() string {
	if l.Label != "" {
		return l.Label
	}
	return LabelFromURL(l.URL)
}

// LabelFromURL takes the last path segment up to its first dot, falling back
// to the host without www. Unparseable input is returned as is.
func LabelFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}

	var last string
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			last = seg
		}
	}
	if before, _, _ := strings.Cut(last, "."); before != "" {
		return before
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// Note is a debate note: free text, or a link.
type Note struct {
	Text string
	Link *Link
}

func (n *Note) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &n.Text)
	}
	if bytes.Equal(data, []byte("null")) {
		*n = Note{}
		return nil
	}

	var l Link
	if err := json.Unmarshal(data, &l); err != nil {
		return err
	}
	if l.URL != "" {
		n.Link = &l
	}
	return nil
}

func (n Note) MarshalJSON() ([]byte, error) {
	if n.Link != nil {
		return json.Marshal(n.Link)
	}
	return json.Marshal(n.Text)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
