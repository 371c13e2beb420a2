package web

import (
	"net/http"
	"strconv"

	"sweetshop-web/internal/admin"
	"sweetshop-web/internal/models"
	"sweetshop-web/pkg/errors"

	"github.com/gin-gonic/gin"
)

type adminRow struct {
	Sweet      models.Sweet
	Status     string
	Restocking bool
}

type adminPageData struct {
	Username     string
	IsAdmin      bool
	Notice       string
	LoadError    *errors.UIError
	Metrics      admin.Metrics
	Rows         []adminRow
	RestockDraft string

	// Add/edit form state. At most one of Adding/Editing is set.
	Adding  bool
	Editing bool
	Form    models.Sweet
}

// ShowAdmin renders the management panel: metrics, the inventory table, and
// whichever form or inline input the admin currently has open
func (h *Handlers) ShowAdmin(c *gin.Context) {
	sess := getSession(c)
	view := h.registry.AdminFor(sess)
	view.EnsureLoaded(c.Request.Context())

	snapshot := view.Snapshot()
	rows := make([]adminRow, 0, len(snapshot))
	for _, sweet := range snapshot {
		rows = append(rows, adminRow{
			Sweet:      sweet,
			Status:     sweet.StockStatus(),
			Restocking: view.RestockEditing(sweet.ID),
		})
	}

	data := adminPageData{
		Username:     sess.Username,
		IsAdmin:      true,
		Notice:       view.Notice(),
		LoadError:    view.LoadError(),
		Metrics:      view.Metrics(),
		Rows:         rows,
		RestockDraft: view.RestockDraft(),
		Adding:       view.Adding(),
	}
	if editing, ok := view.Editing(); ok {
		data.Editing = true
		data.Form = editing
	}

	c.HTML(http.StatusOK, "admin", data)
}

// OpenAddForm opens the blank sweet form
func (h *Handlers) OpenAddForm(c *gin.Context) {
	h.registry.AdminFor(getSession(c)).StartAdd()
	c.Redirect(http.StatusFound, "/admin")
}

// OpenEditForm points the sweet form at one existing item
func (h *Handlers) OpenEditForm(c *gin.Context) {
	h.registry.AdminFor(getSession(c)).StartEdit(c.Param("id"))
	c.Redirect(http.StatusFound, "/admin")
}

// CloseForm dismisses the add/edit form without saving
func (h *Handlers) CloseForm(c *gin.Context) {
	view := h.registry.AdminFor(getSession(c))
	view.CloseAdd()
	view.CloseEdit()
	c.Redirect(http.StatusFound, "/admin")
}

// CreateSweet submits the add form
func (h *Handlers) CreateSweet(c *gin.Context) {
	sess := getSession(c)
	view := h.registry.AdminFor(sess)

	fields, err := parseSweetForm(c)
	if err != nil {
		view.SetNotice(err.Error())
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	if err := view.Create(c.Request.Context(), fields); unauthorized(err) {
		h.expireSession(c, sess)
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

// UpdateSweet submits the edit form
func (h *Handlers) UpdateSweet(c *gin.Context) {
	sess := getSession(c)
	view := h.registry.AdminFor(sess)

	fields, err := parseSweetForm(c)
	if err != nil {
		view.SetNotice(err.Error())
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	if err := view.Update(c.Request.Context(), c.Param("id"), fields); unauthorized(err) {
		h.expireSession(c, sess)
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

// DeleteSweet removes one sweet. The page asks for confirmation before this
// request is ever submitted.
func (h *Handlers) DeleteSweet(c *gin.Context) {
	sess := getSession(c)
	view := h.registry.AdminFor(sess)

	if err := view.Delete(c.Request.Context(), c.Param("id")); unauthorized(err) {
		h.expireSession(c, sess)
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

// OpenRestock switches one row into restock-edit mode
func (h *Handlers) OpenRestock(c *gin.Context) {
	h.registry.AdminFor(getSession(c)).BeginRestock(c.Param("id"))
	c.Redirect(http.StatusFound, "/admin")
}

// CancelRestock exits restock-edit mode without submitting
func (h *Handlers) CancelRestock(c *gin.Context) {
	h.registry.AdminFor(getSession(c)).CancelRestock()
	c.Redirect(http.StatusFound, "/admin")
}

// SubmitRestock submits the inline restock quantity. The raw input goes to
// the view, which validates before letting any request out.
func (h *Handlers) SubmitRestock(c *gin.Context) {
	sess := getSession(c)
	view := h.registry.AdminFor(sess)

	err := view.Restock(c.Request.Context(), c.Param("id"), c.PostForm("quantity"))
	if unauthorized(err) {
		h.expireSession(c, sess)
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

// parseSweetForm reads the add/edit form into SweetFields, rejecting
// unusable input before it goes near the API
func parseSweetForm(c *gin.Context) (models.SweetFields, error) {
	name := c.PostForm("name")
	category := c.PostForm("category")
	if name == "" || category == "" {
		return models.SweetFields{}, errors.NewValidationFailure("Name and category are required")
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		return models.SweetFields{}, errors.NewValidationFailure("Please enter a valid price")
	}

	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil || quantity < 0 {
		return models.SweetFields{}, errors.NewValidationFailure("Please enter a valid quantity")
	}

	return models.SweetFields{
		Name:        name,
		Category:    category,
		Price:       price,
		Quantity:    quantity,
		Description: c.PostForm("description"),
		ImageURL:    c.PostForm("image_url"),
	}, nil
}
