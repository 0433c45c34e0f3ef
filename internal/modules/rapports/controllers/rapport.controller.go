package controllers

import (
	"bytes"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"qualite-pro-core/internal/infrastructure/export"
	"qualite-pro-core/internal/modules/rapports/dto"
	"qualite-pro-core/internal/modules/rapports/services"
	"qualite-pro-core/internal/shared/response"
)

type RapportController struct {
	service *services.RapportService
}

func NewRapportController(service *services.RapportService) *RapportController {
	return &RapportController{service: service}
}

func attachment(ctx *gin.Context, filename string) {
	ctx.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
}

func (c *RapportController) excel(ctx *gin.Context, buf *bytes.Buffer, filename string) {
	attachment(ctx, filename)
	ctx.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}

func bindPeriode(ctx *gin.Context) (dto.PeriodeQuery, bool) {
	var q dto.PeriodeQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.BadRequestBody(ctx, err)
		return q, false
	}
	return q, true
}

// Complet - GET /api/rapports-kpi/complet
func (c *RapportController) Complet(ctx *gin.Context) {
	rapport, err := c.service.Complet(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, rapport)
}

// Periode - GET /api/rapports-kpi/periode?dateDebut=&dateFin=
func (c *RapportController) Periode(ctx *gin.Context) {
	q, ok := bindPeriode(ctx)
	if !ok {
		return
	}
	rapport, err := c.service.Periode(ctx.Request.Context(), q)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, rapport)
}

// Telecharger - GET /api/rapports-kpi/telecharger
func (c *RapportController) Telecharger(ctx *gin.Context) {
	rapport, err := c.service.Complet(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	attachment(ctx, services.NomFichier(services.PrefixeRapportKpi, rapport.DateGeneration, "json"))
	response.OK(ctx, rapport)
}

// TelechargerPeriode - GET /api/rapports-kpi/telecharger/periode
func (c *RapportController) TelechargerPeriode(ctx *gin.Context) {
	q, ok := bindPeriode(ctx)
	if !ok {
		return
	}
	rapport, err := c.service.Periode(ctx.Request.Context(), q)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	attachment(ctx, services.NomFichier(services.PrefixeRapportPeriode, rapport.Periode.Debut, "json"))
	response.OK(ctx, rapport)
}

// ExportExcel - GET /api/rapports-kpi/export/excel, /api/export/rapport-kpi/excel et /api/export/statistiques/excel
func (c *RapportController) ExportExcel(ctx *gin.Context) {
	buf, filename, err := c.service.ExportExcel(ctx.Request.Context(), services.PrefixeRapportKpi)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	c.excel(ctx, buf, filename)
}

// ExportExcelPeriode - GET /api/rapports-kpi/export/excel/periode
func (c *RapportController) ExportExcelPeriode(ctx *gin.Context) {
	q, ok := bindPeriode(ctx)
	if !ok {
		return
	}
	buf, filename, err := c.service.ExportPeriodeExcel(ctx.Request.Context(), q)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	c.excel(ctx, buf, filename)
}
