package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qualite-pro-core/internal/modules/nomenclatures/dto"
	"qualite-pro-core/internal/modules/nomenclatures/services"
	"qualite-pro-core/internal/shared/response"
)

type NomenclatureController struct {
	service *services.NomenclatureService
}

func NewNomenclatureController(service *services.NomenclatureService) *NomenclatureController {
	return &NomenclatureController{service: service}
}

// List - GET /api/nomenclatures
func (c *NomenclatureController) List(ctx *gin.Context) {
	items, err := c.service.List(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, items)
}

// ParType - GET /api/nomenclatures/type/:type
func (c *NomenclatureController) ParType(ctx *gin.Context) {
	items, err := c.service.ParType(ctx.Request.Context(), ctx.Param("type"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, items)
}

// Types - GET /api/nomenclatures/types
func (c *NomenclatureController) Types(ctx *gin.Context) {
	types, err := c.service.Types(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, types)
}

func (c *NomenclatureController) Get(ctx *gin.Context) {
	n, err := c.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, n)
}

func (c *NomenclatureController) Create(ctx *gin.Context) {
	var req dto.NomenclatureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequestBody(ctx, err)
		return
	}

	n, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Created(ctx, n)
}

func (c *NomenclatureController) Update(ctx *gin.Context) {
	var req dto.NomenclatureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequestBody(ctx, err)
		return
	}

	n, err := c.service.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, n)
}

func (c *NomenclatureController) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.Error(ctx, err)
		return
	}
	response.Message(ctx, http.StatusOK, "Nomenclature supprimée")
}
