package export

import (
	"context"
	"errors"
	"munsite/internal/loader"
	"munsite/internal/router"
	"munsite/internal/site"
	"munsite/internal/source"
	"munsite/internal/view"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func writeData(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func newService(root string) *site.Service {
	return site.NewService(loader.New(source.NewDir(root)), view.New(view.PathLinks), time.UTC)
}

func siteData() map[string]string {
	data := map[string]string{
		loader.SitePath:        `{}`,
		loader.MeetingsCSVPath: "date,time,type,room\n5/6/2099,15:00,GA,Library\n",
		loader.TopicsPath:      `[{"topic":"Water Security"},{"topic":"Bad","slug":"../escape"}]`,
		loader.BoardPath:       `[]`,
	}
	data[loader.MatrixDir+"/water-security.csv"] = "Country,Vote\nChile,Yes\n"
	return data
}

func readOut(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

func TestBuild(t *testing.T) {
	root, out := t.TempDir(), t.TempDir()
	writeData(t, root, siteData())

	res, err := Build(context.Background(), newService(root), out)

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{
		"index.html", "fragments/home.html",
		"topics/index.html", "fragments/topics.html",
		"board/index.html", "fragments/board.html",
		"topic/water-security/index.html", "fragments/topic/water-security.html",
		"meetings.ics",
	}, res.Files)
	assert.Equal(t, []string{"../escape"}, res.Skipped)

	assert.Equal(t, true, strings.Contains(readOut(t, out, "index.html"), `href="/topic/water-security"`))
	assert.Equal(t, true, strings.Contains(readOut(t, out, "fragments/topics.html"), `href="#/topic/water-security"`))
	assert.Equal(t, true, strings.Contains(readOut(t, out, "topic/water-security/index.html"), "Country Matrix"))
	assert.Equal(t, true, strings.Contains(readOut(t, out, "meetings.ics"), "LOCATION:Library"))
}

func TestBuild_NoMeetingsSkipsCalendar(t *testing.T) {
	root, out := t.TempDir(), t.TempDir()
	data := siteData()
	data[loader.MeetingsCSVPath] = "date,time\n"
	writeData(t, root, data)

	res, err := Build(context.Background(), newService(root), out)

	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(strings.Join(res.Skipped, ","), "meetings.ics"))
	_, statErr := os.Stat(filepath.Join(out, "meetings.ics"))
	assert.Equal(t, true, errors.Is(statErr, os.ErrNotExist))
}

func TestBuild_LoadFailure(t *testing.T) {
	root, out := t.TempDir(), t.TempDir()
	data := siteData()
	delete(data, loader.BoardPath)
	writeData(t, root, data)

	_, err := Build(context.Background(), newService(root), out)

	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, errors.Is(err, source.ErrNotFound))
}

func TestWatch_RebuildsOnChange(t *testing.T) {
	root := t.TempDir()
	writeData(t, root, siteData())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var builds atomic.Int32
	rebuilt := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, root, 20*time.Millisecond, func(context.Context) error {
			builds.Add(1)
			select {
			case rebuilt <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// Give the watcher time to register before touching files.
	time.Sleep(100 * time.Millisecond)
	writeData(t, root, map[string]string{loader.BoardPath: `[{"name":"Ada"}]`})

	select {
	case <-rebuilt:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after change")
	}

	cancel()
	assert.Equal(t, true, errors.Is(<-done, context.Canceled))
	assert.Equal(t, true, builds.Load() >= 1)
}

func TestWatch_MissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), DefaultDebounce, func(context.Context) error { return nil })

	assert.NotEqual(t, nil, err)
}

func TestPagePath(t *testing.T) {
	assert.Equal(t, "index.html", pagePath(router.FromPath("/")))
	assert.Equal(t, "topics/index.html", pagePath(router.FromPath("/topics")))
	assert.Equal(t, "board/index.html", pagePath(router.FromPath("/board")))
	assert.Equal(t, "topic/a-b/index.html", pagePath(router.TopicRoute("a-b")))
}
