package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"rugstore/internal/accessor"
	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/repository"
	"rugstore/internal/usecase"
	"rugstore/pkg/response"
	"rugstore/pkg/utils"
)

type LeadHandler struct {
	leadUseCase *usecase.LeadUseCase
	leads       *accessor.Leads
}

func NewLeadHandler(leadUseCase *usecase.LeadUseCase, leads *accessor.Leads) *LeadHandler {
	return &LeadHandler{
		leadUseCase: leadUseCase,
		leads:       leads,
	}
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type noteRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type assignRequest struct {
	AssignedTo string `json:"assignedTo" validate:"max=120"`
}

// Submit handles one of the public enquiry forms.
func (h *LeadHandler) Submit(leadType entity.LeadType) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req usecase.LeadInput
		if err := bindAndValidate(c, &req); err != nil {
			return response.Error(c, err)
		}

		lead, err := h.leadUseCase.SubmitLead(c.Request().Context(), leadType, req)
		if err != nil {
			return response.Error(c, err)
		}

		return response.Created(c, map[string]interface{}{
			"id":     lead.ID,
			"status": lead.Status,
		})
	}
}

func leadFilter(c echo.Context) repository.LeadFilter {
	return repository.LeadFilter{
		Status: entity.LeadStatus(c.QueryParam("status")),
		Type:   entity.LeadType(c.QueryParam("type")),
	}
}

func (h *LeadHandler) ListLeads(c echo.Context) error {
	pagination := utils.GetPaginationParams(c, 20, 100)
	filter := leadFilter(c)
	filter.Limit = pagination.PageSize
	filter.Offset = pagination.Offset

	res := h.leads.List(c.Request().Context(), filter)
	page, ok := res.Value()
	if !ok {
		return respond(c, res)
	}
	return response.Paginated(c, page.Leads, int64(page.Total), pagination.Page, pagination.PageSize)
}

func (h *LeadHandler) GetLead(c echo.Context) error {
	return respond(c, h.leads.ByID(c.Request().Context(), c.Param("id")))
}

func (h *LeadHandler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	lead, err := h.leadUseCase.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, lead)
}

func (h *LeadHandler) AddNote(c echo.Context) error {
	var req noteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	lead, err := h.leadUseCase.AddNote(c.Request().Context(), c.Param("id"), req.Text)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, lead)
}

func (h *LeadHandler) Assign(c echo.Context) error {
	var req assignRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	lead, err := h.leadUseCase.Assign(c.Request().Context(), c.Param("id"), req.AssignedTo)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, lead)
}

func (h *LeadHandler) DeleteLead(c echo.Context) error {
	if err := h.leadUseCase.DeleteLead(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Lead deleted"})
}

// ExportLeads buffers the CSV so a failure can still answer with JSON.
func (h *LeadHandler) ExportLeads(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.leadUseCase.ExportCSV(c.Request().Context(), &buf, leadFilter(c)); err != nil {
		return response.Error(c, err)
	}

	filename := "leads-" + time.Now().UTC().Format("20060102") + ".csv"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
