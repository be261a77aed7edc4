// api/handlers/metrics_handlers.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"chunkmetrics/api/analytics"
	"chunkmetrics/api/metrics"
	"chunkmetrics/api/models"
	"chunkmetrics/api/store"
	"chunkmetrics/api/utils"
)

const fetchTimeout = 60 * time.Second

type MetricsHandlers struct {
	Source store.EventSource
	Emails *store.EmailStatsClient
}

func NewMetricsHandlers(source store.EventSource, emails *store.EmailStatsClient) *MetricsHandlers {
	return &MetricsHandlers{
		Source: source,
		Emails: emails,
	}
}

// viewParams are the filters every metrics view accepts. Range resolves
// from either an explicit from/to pair or a relative token like "30d".
type viewParams struct {
	Range    analytics.DateRange
	Platform string
	UserType analytics.UserType
}

// parseParams reads the common query parameters. It writes a 400 and
// returns false when an explicit from/to pair is malformed or the range
// token is not one the dashboard accepts.
func parseParams(c *gin.Context) (viewParams, bool) {
	p := viewParams{
		Platform: c.DefaultQuery("platform", "all"),
		UserType: analytics.ParseUserType(c.Query("userType")),
	}

	from := c.Query("from")
	to := c.Query("to")
	if from != "" && to != "" {
		p.Range = analytics.DateRange{From: from, To: to}
		if err := p.Range.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range", "details": err.Error()})
			return p, false
		}
	} else {
		token := c.DefaultQuery("range", "30d")
		if !utils.IsValidRange(token) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid range", "details": "range must be one of 1d, 7d, 30d, 90d, 365d"})
			return p, false
		}
		p.Range = analytics.ResolveRange(token)
	}
	return p, true
}

// fetchCurrent fetches the events for the requested range. A failure here
// fails the whole request: without current events there is nothing to show.
func (h *MetricsHandlers) fetchCurrent(c *gin.Context, r analytics.DateRange) ([]models.Event, bool) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), fetchTimeout)
	defer cancel()

	events, err := h.Source.FetchEvents(ctx, r.From, r.To)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"from": r.From, "to": r.To}).Error("Failed to fetch events")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to fetch events", "details": err.Error()})
		return nil, false
	}
	return events, true
}

// fetchPrevious fetches the prior-period events for trend comparison.
// Failure is non-fatal: trends degrade against an empty slice.
func (h *MetricsHandlers) fetchPrevious(c *gin.Context, r analytics.DateRange) []models.Event {
	prior := r.PriorPeriod()
	ctx, cancel := context.WithTimeout(c.Request.Context(), fetchTimeout)
	defer cancel()

	events, err := h.Source.FetchEvents(ctx, prior.From, prior.To)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"from": prior.From, "to": prior.To}).Warn("Prior period fetch failed, trends degrade to no-prior-data")
		return nil
	}
	return events
}

// filter applies the platform filter, then the user-tier filter.
func filter(events []models.Event, p viewParams) []models.Event {
	return analytics.FilterByUserType(analytics.FilterByPlatform(events, p.Platform), p.UserType)
}

func (h *MetricsHandlers) GetOverview(c *gin.Context) {
	p, ok := parseParams(c)
	if !ok {
		return
	}
	events, ok := h.fetchCurrent(c, p.Range)
	if !ok {
		return
	}
	// Overview applies the audience filter itself so the tier breakdown can
	// describe the whole platform.
	platformEvents := analytics.FilterByPlatform(events, p.Platform)
	previous := analytics.FilterByPlatform(h.fetchPrevious(c, p.Range), p.Platform)
	c.JSON(http.StatusOK, metrics.BuildOverview(platformEvents, previous, p.Range, p.Platform, p.UserType))
}

func (h *MetricsHandlers) GetAcquisition(c *gin.Context) {
	p, ok := parseParams(c)
	if !ok {
		return
	}
	events, ok := h.fetchCurrent(c, p.Range)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, metrics.BuildAcquisition(filter(events, p), p.Range, p.Platform, p.UserType))
}

func (h *MetricsHandlers) GetSubscriptions(c *gin.Context) {
	p, ok := parseParams(c)
	if !ok {
		return
	}
	events, ok := h.fetchCurrent(c, p.Range)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, metrics.BuildSubscriptions(filter(events, p), p.Range, p.Platform, p.UserType))
}

func (h *MetricsHandlers) GetNotes(c *gin.Context) {
	p, ok := parseParams(c)
	if !ok {
		return
	}
	events, ok := h.fetchCurrent(c, p.Range)
	if !ok {
		return
	}
	previous := filter(h.fetchPrevious(c, p.Range), p)
	c.JSON(http.StatusOK, metrics.BuildNotes(filter(events, p), previous, p.Range, p.Platform, p.UserType))
}

func (h *MetricsHandlers) GetCollections(c *gin.Context) {
	p, ok := parseParams(c)
	if !ok {
		return
	}
	events, ok := h.fetchCurrent(c, p.Range)
	if !ok {
		return
	}
	previous := filter(h.fetchPrevious(c, p.Range), p)
	c.JSON(http.StatusOK, metrics.BuildCollections(filter(events, p), previous, p.Range, p.Platform, p.UserType))
}

func (h *MetricsHandlers) GetResearch(c *gin.Context) {
	p, ok := parseParams(c)
	if !ok {
		return
	}
	events, ok := h.fetchCurrent(c, p.Range)
	if !ok {
		return
	}
	previous := filter(h.fetchPrevious(c, p.Range), p)
	c.JSON(http.StatusOK, metrics.BuildResearch(filter(events, p), previous, p.Range, p.Platform, p.UserType))
}

func (h *MetricsHandlers) GetSharing(c *gin.Context) {
	p, ok := parseParams(c)
	if !ok {
		return
	}
	events, ok := h.fetchCurrent(c, p.Range)
	if !ok {
		return
	}
	previous := filter(h.fetchPrevious(c, p.Range), p)
	c.JSON(http.StatusOK, metrics.BuildSharing(filter(events, p), previous, p.Range, p.Platform, p.UserType))
}

func (h *MetricsHandlers) GetMarketing(c *gin.Context) {
	p, ok := parseParams(c)
	if !ok {
		return
	}
	events, ok := h.fetchCurrent(c, p.Range)
	if !ok {
		return
	}
	previous := filter(h.fetchPrevious(c, p.Range), p)
	c.JSON(http.StatusOK, metrics.BuildMarketing(filter(events, p), previous, p.Range, p.Platform, p.UserType))
}

func (h *MetricsHandlers) GetPush(c *gin.Context) {
	p, ok := parseParams(c)
	if !ok {
		return
	}
	events, ok := h.fetchCurrent(c, p.Range)
	if !ok {
		return
	}
	previous := filter(h.fetchPrevious(c, p.Range), p)
	c.JSON(http.StatusOK, metrics.BuildPush(filter(events, p), previous, p.Range, p.Platform, p.UserType))
}

func (h *MetricsHandlers) GetOnboarding(c *gin.Context) {
	p, ok := parseParams(c)
	if !ok {
		return
	}
	// Onboarding selects a platform group, not a single platform.
	group := c.DefaultQuery("platform", analytics.GroupMobile)
	if !utils.IsValidPlatformGroup(group) {
		group = analytics.GroupMobile
	}
	events, ok := h.fetchCurrent(c, p.Range)
	if !ok {
		return
	}
	audience := analytics.FilterByUserType(events, p.UserType)
	c.JSON(http.StatusOK, metrics.BuildOnboarding(audience, group, p.Range, p.UserType))
}

func (h *MetricsHandlers) GetUsers(c *gin.Context) {
	p, ok := parseParams(c)
	if !ok {
		return
	}
	events, ok := h.fetchCurrent(c, p.Range)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, metrics.BuildUsers(analytics.FilterByPlatform(events, p.Platform), p.Range, p.Platform))
}

func (h *MetricsHandlers) GetFeatures(c *gin.Context) {
	p, ok := parseParams(c)
	if !ok {
		return
	}
	events, ok := h.fetchCurrent(c, p.Range)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, metrics.BuildFeatures(filter(events, p), p.Range, p.Platform, p.UserType))
}

func (h *MetricsHandlers) GetSearches(c *gin.Context) {
	p, ok := parseParams(c)
	if !ok {
		return
	}
	events, ok := h.fetchCurrent(c, p.Range)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, metrics.BuildSearches(analytics.FilterByPlatform(events, p.Platform), p.Range, p.Platform))
}

func (h *MetricsHandlers) GetEngagement(c *gin.Context) {
	p, ok := parseParams(c)
	if !ok {
		return
	}
	events, ok := h.fetchCurrent(c, p.Range)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, metrics.BuildEngagement(filter(events, p), p.Range, p.Platform, p.UserType))
}

// GetEvents returns the raw fetched events for debugging and ad hoc
// analysis, after the usual platform and audience filters.
func (h *MetricsHandlers) GetEvents(c *gin.Context) {
	p, ok := parseParams(c)
	if !ok {
		return
	}
	events, ok := h.fetchCurrent(c, p.Range)
	if !ok {
		return
	}
	filtered := filter(events, p)
	c.JSON(http.StatusOK, gin.H{
		"events":    filtered,
		"count":     len(filtered),
		"dateRange": p.Range,
		"platform":  p.Platform,
		"userType":  p.UserType,
	})
}

// GetEmails proxies the external email stats service. Upstream failures
// degrade to a zero-valued payload rather than an error response.
func (h *MetricsHandlers) GetEmails(c *gin.Context) {
	if h.Emails == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Email stats service is not configured"})
		return
	}
	days := c.DefaultQuery("days", "30")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 25*time.Second)
	defer cancel()
	c.JSON(http.StatusOK, h.Emails.FetchStats(ctx, days))
}
