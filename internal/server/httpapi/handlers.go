package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/items"
	"github.com/gin-gonic/gin"
)

type handler struct {
	repo      items.Repository
	ephemeral bool
	metrics   *metrics
	logger    logging.Logger
}

// payload is the writable part of an item.
type payload struct {
	UserID *int64  `json:"userId"`
	Title  *string `json:"title"`
	Body   *string `json:"body"`
}

func (p payload) apply(it *models.Item) {
	if p.UserID != nil {
		it.UserID = *p.UserID
	}
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Body != nil {
		it.Body = *p.Body
	}
}

func (h *handler) mode() string {
	if h.ephemeral {
		return "ephemeral"
	}
	return "persistent"
}

func (h *handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrorInvalidID), errors.Is(err, common.ErrorInvalidPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error(c.Request.Context(), "request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.ErrorInvalidID
	}
	return id, nil
}

func bindPayload(c *gin.Context) (payload, error) {
	var p payload
	if err := c.ShouldBindJSON(&p); err != nil {
		return payload{}, common.ErrorInvalidPayload
	}
	return p, nil
}

// list answers every item; ?_limit=N truncates the answer.
func (h *handler) list(c *gin.Context) {
	all, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if raw := c.Query("_limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.fail(c, common.ErrorInvalidPayload)
			return
		}
		if n < len(all) {
			all = all[:n]
		}
	}
	c.JSON(http.StatusOK, all)
}

func (h *handler) get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	it, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *handler) create(c *gin.Context) {
	p, err := bindPayload(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx := c.Request.Context()

	it := &models.Item{UserID: 1}
	p.apply(it)

	if h.ephemeral {
		n, err := h.repo.Count(ctx)
		if err != nil {
			h.fail(c, err)
			return
		}
		it.ID = n + 1
	} else {
		it, err = h.repo.Create(ctx, it)
		if err != nil {
			h.fail(c, err)
			return
		}
	}

	h.metrics.writes.WithLabelValues("create", h.mode()).Inc()
	c.JSON(http.StatusCreated, it)
}

func (h *handler) update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	p, err := bindPayload(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx := c.Request.Context()

	it, err := h.repo.Get(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	p.apply(it)

	if !h.ephemeral {
		it, err = h.repo.Update(ctx, it)
		if err != nil {
			h.fail(c, err)
			return
		}
	}

	h.metrics.writes.WithLabelValues("update", h.mode()).Inc()
	c.JSON(http.StatusOK, it)
}

func (h *handler) remove(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	if !h.ephemeral {
		if err := h.repo.Delete(c.Request.Context(), id); err != nil {
			h.fail(c, err)
			return
		}
	}

	h.metrics.writes.WithLabelValues("delete", h.mode()).Inc()
	c.JSON(http.StatusOK, gin.H{})
}
