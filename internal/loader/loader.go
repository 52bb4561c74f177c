package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"munsite/internal/csvparse"
	"munsite/internal/meeting"
	"munsite/internal/model"
	"munsite/internal/source"
)

const (
	SitePath         = "data/site.json"
	TopicsPath       = "data/topics.json"
	BoardPath        = "data/board.json"
	MeetingsCSVPath  = "data/meetings.csv"
	MeetingsJSONPath = "data/meetings.json"
	MatrixDir        = "data/matrices"
)

// Loader decodes the site's data files from a Source.
type Loader struct {
	src source.Source
}

func New(src source.Source) *Loader {
	return &Loader{src: src}
}

func (l *Loader) Source() source.Source {
	return l.src
}

func (l *Loader) JSON(ctx context.Context, path string, v any) error {
	data, err := l.src.Fetch(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s → invalid JSON: %w", path, err)
	}
	return nil
}

func (l *Loader) CSV(ctx context.Context, path string) ([]csvparse.Row, error) {
	data, err := l.src.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	return csvparse.Parse(string(data)), nil
}

func (l *Loader) Site(ctx context.Context) (model.SiteConfig, error) {
	var site model.SiteConfig
	err := l.JSON(ctx, SitePath, &site)
	return site, err
}

// Topics returns the topic list, current topic first. A JSON value that is
// not a list yields no topics.
func (l *Loader) Topics(ctx context.Context) ([]model.Topic, error) {
	var raw json.RawMessage
	if err := l.JSON(ctx, TopicsPath, &raw); err != nil {
		return nil, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return []model.Topic{}, nil
	}

	var topics []model.Topic
	if err := json.Unmarshal(raw, &topics); err != nil {
		return nil, fmt.Errorf("%s → invalid JSON: %w", TopicsPath, err)
	}
	return topics, nil
}

func (l *Loader) Board(ctx context.Context) ([]model.BoardMember, error) {
	var board []model.BoardMember
	err := l.JSON(ctx, BoardPath, &board)
	return board, err
}

// MeetingStrategies is the default fallback order: CSV first, then JSON.
func (l *Loader) MeetingStrategies() meeting.Chain {
	return meeting.Chain{
		{Name: MeetingsCSVPath, Load: l.meetingsFromCSV},
		{Name: MeetingsJSONPath, Load: l.meetingsFromJSON},
	}
}

func (l *Loader) Meetings(ctx context.Context) ([]model.Meeting, error) {
	return l.MeetingStrategies().Load(ctx)
}

func (l *Loader) meetingsFromCSV(ctx context.Context) ([]model.Meeting, error) {
	rows, err := l.CSV(ctx, MeetingsCSVPath)
	if err != nil {
		return nil, err
	}
	meetings := make([]model.Meeting, 0, len(rows))
	for _, row := range rows {
		meetings = append(meetings, meeting.FromRow(row))
	}
	return meetings, nil
}

func (l *Loader) meetingsFromJSON(ctx context.Context) ([]model.Meeting, error) {
	var objects []map[string]any
	if err := l.JSON(ctx, MeetingsJSONPath, &objects); err != nil {
		return nil, err
	}
	meetings := make([]model.Meeting, 0, len(objects))
	for _, obj := range objects {
		if obj == nil {
			continue
		}
		meetings = append(meetings, meeting.FromObject(obj))
	}
	return meetings, nil
}

// Matrix is the header and rows of a topic's country matrix.
type Matrix struct {
	Headers []string
	Rows    []csvparse.Row
}

// MatrixPath is the topic's explicit matrix file, or data/matrices/{slug}.csv.
func MatrixPath(t model.Topic) string {
	if t.MatrixCSV != "" {
		return t.MatrixCSV
	}
	return MatrixDir + "/" + t.Key() + ".csv"
}

// Matrix loads a topic's optional country matrix. Any failure means the
// topic has no matrix.
func (l *Loader) Matrix(ctx context.Context, t model.Topic) (*Matrix, bool) {
	path := MatrixPath(t)
	rows, err := l.CSV(ctx, path)
	if err != nil {
		slog.Debug("no country matrix", "path", path, "error", err)
		return nil, false
	}
	if len(rows) == 0 {
		return nil, false
	}
	return &Matrix{Headers: rows[0].Keys(), Rows: rows}, true
}
