package web

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"sweetshop-web/internal/catalog"
	"sweetshop-web/pkg/errors"

	"github.com/gin-gonic/gin"
)

type dashboardData struct {
	Username   string
	IsAdmin    bool
	Notice     string
	LoadError  *errors.UIError
	Criteria   catalog.FilterCriteria
	Categories []string
	Cards      []catalog.Card
}

// ShowDashboard renders the browsable catalog for the current session
func (h *Handlers) ShowDashboard(c *gin.Context) {
	sess := getSession(c)
	view := h.registry.CatalogFor(sess)
	view.EnsureLoaded(c.Request.Context())

	visible := view.Visible()
	cards := make([]catalog.Card, 0, len(visible))
	for _, sweet := range visible {
		cards = append(cards, catalog.NewCard(sweet))
	}

	c.HTML(http.StatusOK, "dashboard", dashboardData{
		Username:   sess.Username,
		IsAdmin:    sess.IsAdmin(),
		Notice:     view.Notice(),
		LoadError:  view.LoadError(),
		Criteria:   view.Criteria(),
		Categories: view.Categories(),
		Cards:      cards,
	})
}

// ApplyFilters installs the submitted filter criteria and re-renders the
// dashboard. Filtering is local; no request goes to the sweets API.
func (h *Handlers) ApplyFilters(c *gin.Context) {
	view := h.registry.CatalogFor(getSession(c))
	view.SetCriteria(catalog.FilterCriteria{
		Search:   c.PostForm("search"),
		Category: c.PostForm("category"),
		MinPrice: c.PostForm("min_price"),
		MaxPrice: c.PostForm("max_price"),
	})
	c.Redirect(http.StatusFound, "/dashboard")
}

// ClearFilters resets all criteria, restoring the full catalog
func (h *Handlers) ClearFilters(c *gin.Context) {
	h.registry.CatalogFor(getSession(c)).ClearFilters()
	c.Redirect(http.StatusFound, "/dashboard")
}

// Purchase buys the requested quantity of one sweet. Validation happens on
// the card before any request is sent; failures queue a notice and leave the
// displayed stock untouched.
func (h *Handlers) Purchase(c *gin.Context) {
	sess := getSession(c)
	view := h.registry.CatalogFor(sess)
	id := c.Param("id")

	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil {
		view.SetNotice("Please enter a valid quantity")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	sweet, ok := view.Find(id)
	if !ok {
		view.SetNotice(errors.MsgPurchaseFailed)
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	card := catalog.NewCard(sweet)
	card.PurchaseQty = quantity
	err = card.Purchase(func(id string, quantity int) error {
		return view.Purchase(c.Request.Context(), id, quantity)
	})
	if unauthorized(err) {
		h.expireSession(c, sess)
		return
	}
	if err != nil {
		// Validation failures never reach the view, so queue the notice here
		var uiErr *errors.UIError
		if stderrors.As(err, &uiErr) && uiErr.Code == "ValidationFailed" {
			view.SetNotice(uiErr.Message)
		}
	}

	c.Redirect(http.StatusFound, "/dashboard")
}
