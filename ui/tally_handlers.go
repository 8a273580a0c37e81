package ui

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kuesioner/adapters/report"
	"kuesioner/app"
	"kuesioner/domain/survey"
	"kuesioner/internal"
	"kuesioner/internal/errors"
	"kuesioner/ports"
)

// TallySourceHeader tells clients whether the aggregate came from the sheet
// ("live") or is the empty fallback ("empty")
const TallySourceHeader = "X-Tally-Source"

// TallyHandler serves aggregates computed from the response sheet
type TallyHandler struct {
	tally    *app.TallyService
	renderer ports.ChartRenderer
	logger   *internal.Logger
}

func NewTallyHandler(tally *app.TallyService, renderer ports.ChartRenderer, logger *internal.Logger) *TallyHandler {
	return &TallyHandler{
		tally:    tally,
		renderer: renderer,
		logger:   logger,
	}
}

// current fetches a fresh snapshot and labels the response with its source
func (h *TallyHandler) current(c *gin.Context) app.Snapshot {
	snapshot := h.tally.Current(c.Request.Context())
	source := "live"
	if !snapshot.Fetched {
		source = "empty"
	}
	c.Header(TallySourceHeader, source)
	return snapshot
}

// HandleChartData always answers 200; an unreachable sheet yields the zero aggregate
func (h *TallyHandler) HandleChartData() gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot := h.current(c)
		c.JSON(http.StatusOK, snapshot.Result)
	}
}

func (h *TallyHandler) HandleSummary() gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot := h.current(c)
		c.JSON(http.StatusOK, app.Summarize(snapshot.Result))
	}
}

// HandleReport renders the summary as an HTML page
func (h *TallyHandler) HandleReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot := h.current(c)
		page := report.HTML(c.Query("title"), app.Summarize(snapshot.Result), time.Now())
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	}
}

func (h *TallyHandler) HandleChartPNG() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.renderer == nil {
			respondError(c, errors.InternalError("chart rendering is not configured"))
			return
		}

		snapshot := h.current(c)
		data, err := h.renderer.RenderPNG(snapshot.Result)
		if err != nil {
			h.logger.Error("[API] Failed to render chart: %v", err)
			respondError(c, errors.Wrap(err, "failed to render chart"))
			return
		}

		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, "image/png", data)
	}
}

// HandleAggregate tallies a table posted as a JSON array of string arrays
func (h *TallyHandler) HandleAggregate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var table survey.RawTable
		if err := c.ShouldBindJSON(&table); err != nil {
			respondError(c, errors.InvalidInput("request body must be a JSON array of string arrays: "+err.Error()))
			return
		}
		if table == nil {
			respondError(c, errors.InvalidInput("request body must be a JSON array of string arrays"))
			return
		}

		c.JSON(http.StatusOK, h.tally.FromTable(table).Result)
	}
}
