package handler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"munsite/internal/calendar"
	"munsite/internal/loader"
	"munsite/internal/meeting"
	"munsite/internal/model"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type MeetingHandler struct {
	loader *loader.Loader
	loc    *time.Location
	now    func() time.Time
}

func NewMeetingHandler(l *loader.Loader, loc *time.Location) *MeetingHandler {
	return &MeetingHandler{loader: l, loc: loc, now: time.Now}
}

func toMeetingResponse(m model.Meeting) MeetingResponse {
	return MeetingResponse{
		Date:      m.Date,
		Time:      m.Time,
		Duration:  m.Duration,
		Type:      m.Type,
		Room:      m.Room,
		Cancelled: m.Cancelled,
	}
}

func (h *MeetingHandler) load(ctx context.Context) (model.SiteConfig, []model.Meeting, error) {
	var (
		siteCfg  model.SiteConfig
		meetings []model.Meeting
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		siteCfg, err = h.loader.Site(gctx)
		return err
	})
	g.Go(func() (err error) {
		meetings, err = h.loader.Meetings(gctx)
		return err
	})
	err := g.Wait()
	return siteCfg, meetings, err
}

func (h *MeetingHandler) GetNextMeeting(c *gin.Context) {
	siteCfg, meetings, err := h.load(c.Request.Context())
	if err != nil {
		slog.Error("error loading meetings", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Data load failed"})
		return
	}

	res := NextMeetingResponse{}
	if m, ok := meeting.Next(meetings, meeting.NewPolicy(siteCfg), h.now(), h.loc); ok {
		at := meeting.StartsAt(m, h.loc)
		startsAt := at.Time().Format(time.RFC3339)
		mr := toMeetingResponse(m)
		res.Meeting = &mr
		res.StartsAt = &startsAt
		res.Display = at.Format()
	}

	c.JSON(http.StatusOK, res)
}

func (h *MeetingHandler) GetCalendar(c *gin.Context) {
	siteCfg, meetings, err := h.load(c.Request.Context())
	if err != nil {
		slog.Error("error loading meetings", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Data load failed"})
		return
	}

	var buf bytes.Buffer
	err = calendar.Write(&buf, meetings, meeting.NewPolicy(siteCfg), h.loc, h.now())
	if errors.Is(err, calendar.ErrEmpty) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No meetings available"})
		return
	}
	if err != nil {
		slog.Error("error encoding calendar", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Calendar error"})
		return
	}

	c.Header("Content-Disposition", `inline; filename="meetings.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}
