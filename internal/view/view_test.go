package view

import (
	"errors"
	"munsite/internal/csvparse"
	"munsite/internal/loader"
	"munsite/internal/model"
	"munsite/internal/router"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func contains(t *testing.T, html string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(html, p) {
			t.Errorf("expected output to contain %q\n%s", p, html)
		}
	}
}

func notContains(t *testing.T, html string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if strings.Contains(html, p) {
			t.Errorf("expected output not to contain %q\n%s", p, html)
		}
	}
}

func sampleTopic() model.Topic {
	return model.Topic{
		Title:     "Water <Security>",
		Resources: []model.Link{{URL: "https://example.com/guide", Label: "Guide"}, {URL: "https://example.com/x"}},
		ResearchLinks: []model.Link{
			{URL: "https://un.org/reports/water.pdf"},
			{URL: "https://example.com/b", Label: "B"},
			{URL: "https://example.com/c", Label: "Third"},
		},
		DebateNotes: []model.Note{
			{Text: "Opening & closing"},
			{Link: &model.Link{URL: "https://docs.example.com/notes.md"}},
		},
	}
}

func TestBannerText(t *testing.T) {
	assert.Equal(t, "", BannerText(model.SiteConfig{}))
	assert.Equal(t, "All upcoming meetings are cancelled until further notice.",
		BannerText(model.SiteConfig{CancelAllUpcoming: true, CancelUntil: "3/1/2025"}))
	assert.Equal(t, "All meetings are cancelled through 3/1/2025.",
		BannerText(model.SiteConfig{CancelUntil: "3/1/2025"}))
}

func TestBanner_Escapes(t *testing.T) {
	html, err := New(PathLinks).Banner(model.SiteConfig{CancelUntil: "<b>soon</b>"})

	assert.Equal(t, nil, err)
	contains(t, html, `<div class="banner">`, "&lt;b&gt;soon&lt;/b&gt;")

	html, _ = New(PathLinks).Banner(model.SiteConfig{})
	assert.Equal(t, "", html)
}

func TestNav(t *testing.T) {
	links := New(HashLinks).Nav(router.Route{Kind: router.Topics})

	assert.Equal(t, 3, len(links))
	assert.Equal(t, "#/", links[0].Href)
	assert.Equal(t, false, links[0].Current)
	assert.Equal(t, true, links[1].Current)
	assert.Equal(t, "/board", New(PathLinks).Nav(router.Route{})[2].Href)
}

func TestHome_WithNextMeeting(t *testing.T) {
	site := model.SiteConfig{Resources: []model.Link{{URL: "https://example.com/handbook", Label: "Handbook"}}}
	next := NewNextMeeting(model.Meeting{Duration: "1h", Room: "Library"}, "Tuesday, March 4, 10:00 AM")

	html, err := New(HashLinks).Home(site, next, []model.Topic{sampleTopic()})

	assert.Equal(t, nil, err)
	contains(t, html,
		"Next Meeting",
		`<span class="pill ok">Meeting</span>`,
		"Tuesday, March 4, 10:00 AM",
		"Duration: <strong>1h</strong>",
		"Room: <strong>Library</strong>",
		"Water &lt;Security&gt;",
		`href="#/topic/water-security"`,
		">Handbook</a>",
		">Guide</a>",
		">Link</a>",
		">water</a>",
		">B</a>",
		"Opening &amp; closing",
		">notes</a>",
		"All research links →",
		"All notes →",
	)
	notContains(t, html, "Third", "No upcoming meeting found")
}

func TestHome_Empty(t *testing.T) {
	html, err := New(HashLinks).Home(model.SiteConfig{}, nil, nil)

	assert.Equal(t, nil, err)
	contains(t, html, "No upcoming meeting found", "No topics yet.")
}

func TestTopics(t *testing.T) {
	older := model.Topic{Title: "Space Law", ResearchLinks: []model.Link{{URL: "https://example.com/hidden"}}}

	html, err := New(PathLinks).Topics([]model.Topic{sampleTopic(), older})

	assert.Equal(t, nil, err)
	contains(t, html, "Water &lt;Security&gt;", "Space Law", `href="/topic/space-law"`, "No resources")
	notContains(t, html, "hidden", "No previous topics yet.")
}

func TestTopics_Empty(t *testing.T) {
	html, _ := New(PathLinks).Topics(nil)

	contains(t, html, "No current topic.", "No previous topics yet.")
}

func TestTopicDetail(t *testing.T) {
	topic := sampleTopic()
	topic.Description = []string{"First line\nsecond line", "Next <p>"}
	topic.ResolutionLinks = []model.Link{{URL: "https://example.com/res1"}}
	topic.SpeakingStats = []model.SpeakingStat{{Country: "Chile", TimesSpoken: "4"}}

	rows := csvparse.Parse("Country,Position\nChile,<For>\n")
	matrix := &loader.Matrix{Headers: rows[0].Keys(), Rows: rows}

	html, err := New(PathLinks).TopicDetail(topic, matrix)

	assert.Equal(t, nil, err)
	contains(t, html,
		"<h2>Water &lt;Security&gt;</h2>",
		"<p>First line<br>second line</p>",
		"<p>Next &lt;p&gt;</p>",
		">https://example.com/x</a>",
		"<h3>Research Links</h3>",
		">Third</a>",
		"<h3>Resolutions</h3>",
		"<td>Chile</td><td>4</td>",
		"<h3>Country Matrix</h3>",
		"<th>Country</th><th>Position</th>",
		"<td>&lt;For&gt;</td>",
	)
}

func TestTopicDetail_OptionalCardsOmitted(t *testing.T) {
	html, err := New(PathLinks).TopicDetail(model.Topic{Title: "Bare"}, nil)

	assert.Equal(t, nil, err)
	contains(t, html, "No description provided.", `<span class="pill">None</span>`)
	notContains(t, html, "Research Links", "Debate Notes", "Resolutions", "Speaking Stats", "Country Matrix")
}

func TestTopicDetail_UnsafeURL(t *testing.T) {
	topic := model.Topic{Title: "x", Resources: []model.Link{{URL: "javascript:alert(1)", Label: "bad"}}}

	html, _ := New(PathLinks).TopicDetail(topic, nil)

	notContains(t, html, "javascript:")
}

func TestBoard(t *testing.T) {
	html, err := New(PathLinks).Board([]model.BoardMember{
		{Name: "Ada", Role: "President", Email: "ada@example.com"},
		{Name: "Bob <script>", Role: "Treasurer"},
	})

	assert.Equal(t, nil, err)
	contains(t, html, `href="mailto:ada@example.com"`, "Bob &lt;script&gt;", "—")
	notContains(t, html, "<script>")
}

func TestError(t *testing.T) {
	html, err := New(PathLinks).Error(errors.New("data/site.json → HTTP 404"))

	assert.Equal(t, nil, err)
	contains(t, html, "Data load failed", "data/site.json → HTTP 404", "hard refresh")
}

func TestPage(t *testing.T) {
	html, err := New(PathLinks).Page("MUN", router.Route{Kind: router.Board}, `<div class="banner">x</div>`, "<p>main</p>")

	assert.Equal(t, nil, err)
	contains(t, html,
		"<title>MUN</title>",
		`<a href="/board" aria-current="page">Board</a>`,
		`<div id="banner-root"><div class="banner">x</div></div>`,
		`<main id="app"><p>main</p></main>`,
	)
}
