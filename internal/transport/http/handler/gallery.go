package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appsvc "showcase/internal/app"
	"showcase/internal/transport/http/middleware"
	"showcase/internal/transport/http/response"
)

const defaultImageBatch = 1

type GalleryHandler struct {
	gallery *appsvc.GalleryService
	admin   *appsvc.AdminService
	view    View
}

func NewGalleryHandler(gallery *appsvc.GalleryService, admin *appsvc.AdminService, view View) *GalleryHandler {
	return &GalleryHandler{
		gallery: gallery,
		admin:   admin,
		view:    view,
	}
}

func (h *GalleryHandler) Explore(c *gin.Context) {
	image, err := h.gallery.Browse(c.Request.Context())
	if err != nil {
		h.view.Failure(c, "browse images failed", err)
		return
	}
	h.view.HTML(c, http.StatusOK, "gallery_index.html", gin.H{
		"title": "Explore",
		"image": image,
	})
}

// ImagesHTML renders a batch of random images as a bare fragment for
// infinite scrolling.
func (h *GalleryHandler) ImagesHTML(c *gin.Context) {
	images, err := h.gallery.RandomBatch(c.Request.Context(), queryInt(c, "limit", defaultImageBatch))
	if err != nil {
		h.view.Failure(c, "load random images failed", err)
		return
	}
	c.HTML(http.StatusOK, "image_cards.html", gin.H{"images": images})
}

func (h *GalleryHandler) LoadImages(c *gin.Context) {
	images, err := h.gallery.RandomBatch(c.Request.Context(), queryInt(c, "limit", defaultImageBatch))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "load images failed")
		return
	}
	response.OK(c, images)
}

func (h *GalleryHandler) Profile(c *gin.Context) {
	account := middleware.CurrentAccount(c)
	images, err := h.gallery.ProfileImages(c.Request.Context(), account.AccountID())
	if err != nil {
		h.view.Failure(c, "list profile images failed", err)
		return
	}
	h.view.HTML(c, http.StatusOK, "gallery_profile.html", gin.H{
		"title":  "Profile",
		"images": images,
	})
}

func (h *GalleryHandler) SaveToProfile(c *gin.Context) {
	imageID, err := parseID(c.Param("id"))
	if err != nil {
		h.view.NotFound(c)
		return
	}

	account := middleware.CurrentAccount(c)
	if err := h.gallery.SaveToProfile(c.Request.Context(), account.AccountID(), imageID); err != nil {
		if errors.Is(err, appsvc.ErrContentNotFound) {
			h.view.NotFound(c)
			return
		}
		h.view.Failure(c, "save image to profile failed", err)
		return
	}
	c.Redirect(http.StatusFound, "/profile")
}

func (h *GalleryHandler) AdminPage(c *gin.Context) {
	h.renderAdmin(c, http.StatusOK, appsvc.FieldErrors{}, appsvc.ImageForm{})
}

func (h *GalleryHandler) CreateImage(c *gin.Context) {
	var form appsvc.ImageForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid form payload")
		return
	}

	account := middleware.CurrentAccount(c)
	if _, err := h.gallery.Create(c.Request.Context(), account.AccountID(), form); err != nil {
		fields, status := h.view.formErrors(c, "create image failed", err)
		h.renderAdmin(c, status, fields, form)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *GalleryHandler) Schema(c *gin.Context) {
	tables, err := h.admin.DescribeSchema(c.Request.Context())
	if err != nil {
		h.view.Failure(c, "describe schema failed", err)
		return
	}
	users, err := h.gallery.ListUsers(c.Request.Context())
	if err != nil {
		h.view.Failure(c, "list users failed", err)
		return
	}
	h.view.HTML(c, http.StatusOK, "schema.html", gin.H{
		"title":  "Schema",
		"tables": tables,
		"users":  users,
	})
}

func (h *GalleryHandler) renderAdmin(c *gin.Context, status int, fields appsvc.FieldErrors, form appsvc.ImageForm) {
	ctx := c.Request.Context()
	images, err := h.gallery.ListAll(ctx)
	if err != nil {
		h.view.Failure(c, "list images failed", err)
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
	h.view.HTML(c, status, "gallery_admin.html", gin.H{
		"title":    "Admin",
		"images":   images,
		"tables":   tables,
		"activity": activity,
		"errors":   fields,
		"form":     form,
	})
}
