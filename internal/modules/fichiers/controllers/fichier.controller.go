package controllers

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"qualite-pro-core/internal/modules/fichiers/services"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/response"
)

type FichierController struct {
	service *services.FichierService
}

func NewFichierController(service *services.FichierService) *FichierController {
	return &FichierController{service: service}
}

// Upload - POST /api/files/upload (multipart: file, entityType, entityId, description)
func (c *FichierController) Upload(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		response.Error(ctx, apperrors.ValidationField("file", "Ce champ est requis"))
		return
	}

	f, err := header.Open()
	if err != nil {
		response.Error(ctx, apperrors.InvalidArgument("Lecture du fichier impossible"))
		return
	}
	defer f.Close()

	a, err := c.service.Upload(ctx.Request.Context(), services.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     f,
		EntityType:  ctx.PostForm("entityType"),
		EntityID:    ctx.PostForm("entityId"),
		Description: ctx.PostForm("description"),
	})
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Created(ctx, a)
}

// Download - GET /api/files/download/:id
func (c *FichierController) Download(ctx *gin.Context) {
	a, rc, err := c.service.Download(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	defer rc.Close()

	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": a.OriginalFileName})
	if disposition == "" {
		disposition = fmt.Sprintf("attachment; filename=%q", a.StoredFileName)
	}

	ctx.DataFromReader(http.StatusOK, a.FileSize, contentType, rc, map[string]string{
		"Content-Disposition": disposition,
	})
}

// Get - GET /api/files/:id
func (c *FichierController) Get(ctx *gin.Context) {
	a, err := c.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, a)
}

// ParEntite - GET /api/files/entity/:entityType/:entityId
func (c *FichierController) ParEntite(ctx *gin.Context) {
	items, err := c.service.ParEntite(ctx.Request.Context(), ctx.Param("entityType"), ctx.Param("entityId"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, items)
}

// Delete - DELETE /api/files/:id
func (c *FichierController) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.Error(ctx, err)
		return
	}
	response.Message(ctx, http.StatusOK, "Fichier supprimé avec succès")
}

// DeleteParEntite - DELETE /api/files/entity/:entityType/:entityId
func (c *FichierController) DeleteParEntite(ctx *gin.Context) {
	n, err := c.service.DeleteParEntite(ctx.Request.Context(), ctx.Param("entityType"), ctx.Param("entityId"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Message(ctx, http.StatusOK, fmt.Sprintf("%d fichier(s) supprimé(s)", n))
}
