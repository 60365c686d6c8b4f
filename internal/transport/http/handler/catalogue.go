package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appsvc "showcase/internal/app"
	"showcase/internal/transport/http/middleware"
	"showcase/internal/transport/http/response"
)

type CatalogueHandler struct {
	catalogue *appsvc.CatalogueService
	admin     *appsvc.AdminService
	view      View
}

func NewCatalogueHandler(catalogue *appsvc.CatalogueService, admin *appsvc.AdminService, view View) *CatalogueHandler {
	return &CatalogueHandler{
		catalogue: catalogue,
		admin:     admin,
		view:      view,
	}
}

func (h *CatalogueHandler) Explore(c *gin.Context) {
	ctx := c.Request.Context()
	game, err := h.catalogue.Browse(ctx)
	if err != nil {
		h.view.Failure(c, "browse games failed", err)
		return
	}
	lookups, err := h.catalogue.Lookups(ctx)
	if err != nil {
		h.view.Failure(c, "list lookups failed", err)
		return
	}
	h.view.HTML(c, http.StatusOK, "catalogue_index.html", gin.H{
		"title":  "Explore",
		"game":   game,
		"genres": lookups.Genres,
	})
}

// Carousel pages through the games of one genre, six at a time.
func (h *CatalogueHandler) Carousel(c *gin.Context) {
	genre := strings.TrimSpace(c.Query("genre"))
	if genre == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "genre is required")
		return
	}
	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}

	games, err := h.catalogue.ByGenre(c.Request.Context(), genre, page)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "load games failed")
		return
	}
	response.OK(c, gin.H{
		"genre": genre,
		"page":  page,
		"games": games,
	})
}

func (h *CatalogueHandler) Profile(c *gin.Context) {
	account := middleware.CurrentAccount(c)
	profile, err := h.catalogue.Profile(c.Request.Context(), account.AccountID())
	if err != nil {
		h.view.Failure(c, "load profile failed", err)
		return
	}
	h.view.HTML(c, http.StatusOK, "catalogue_profile.html", gin.H{
		"title":   "Profile",
		"profile": profile,
	})
}

func (h *CatalogueHandler) AddToProfile(c *gin.Context) {
	gameID, err := parseID(c.Param("id"))
	if err != nil {
		h.view.NotFound(c)
		return
	}

	account := middleware.CurrentAccount(c)
	if err := h.catalogue.AddToProfile(c.Request.Context(), account.AccountID(), gameID); err != nil {
		if errors.Is(err, appsvc.ErrContentNotFound) {
			h.view.NotFound(c)
			return
		}
		h.view.Failure(c, "add game to profile failed", err)
		return
	}
	c.Redirect(http.StatusFound, "/profile")
}

func (h *CatalogueHandler) AdminPage(c *gin.Context) {
	h.renderAdmin(c, http.StatusOK, appsvc.FieldErrors{}, appsvc.GameForm{})
}

func (h *CatalogueHandler) CreateGame(c *gin.Context) {
	var form appsvc.GameForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid form payload")
		return
	}

	account := middleware.CurrentAccount(c)
	if _, err := h.catalogue.Create(c.Request.Context(), account.AccountID(), form); err != nil {
		fields, status := h.view.formErrors(c, "create game failed", err)
		h.renderAdmin(c, status, fields, form)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *CatalogueHandler) renderAdmin(c *gin.Context, status int, fields appsvc.FieldErrors, form appsvc.GameForm) {
	ctx := c.Request.Context()
	games, err := h.catalogue.ListAll(ctx)
	if err != nil {
		h.view.Failure(c, "list games failed", err)
		return
	}
	users, err := h.catalogue.ListUsers(ctx)
	if err != nil {
		h.view.Failure(c, "list users failed", err)
		return
	}
	lookups, err := h.catalogue.Lookups(ctx)
	if err != nil {
		h.view.Failure(c, "list lookups failed", err)
		return
	}
	tables, err := h.admin.DescribeSchema(ctx)
	if err != nil {
		h.view.Failure(c, "describe schema failed", err)
		return
	}
	activity, err := h.admin.RecentActivity(ctx)
	if err != nil {
		h.view.Failure(c, "list activity failed", err)
		return
	}
	h.view.HTML(c, status, "catalogue_admin.html", gin.H{
		"title":    "Admin",
		"games":    games,
		"users":    users,
		"lookups":  lookups,
		"tables":   tables,
		"activity": activity,
		"errors":   fields,
		"form":     form,
	})
}
