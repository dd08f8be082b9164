package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"autostats/internal/errors"
	"autostats/internal/model"
	"autostats/internal/service"
)

// ServiceRecordHandler handles service-record endpoints, all scoped under
// the owning vehicle.
type ServiceRecordHandler struct {
	recordService service.ServiceRecordService
	reportService service.ReportService
}

// NewServiceRecordHandler creates a new service-record handler.
func NewServiceRecordHandler(recordService service.ServiceRecordService, reportService service.ReportService) *ServiceRecordHandler {
	return &ServiceRecordHandler{
		recordService: recordService,
		reportService: reportService,
	}
}

// RecordListResponse carries a vehicle's records plus the distinct
// service types present, for filter UIs.
type RecordListResponse struct {
	Records      []model.ServiceRecord `json:"records"`
	ServiceTypes []string              `json:"service_types"`
}

// RecordDeleteResponse reports the vehicle a deleted record belonged to.
type RecordDeleteResponse struct {
	VehicleID uint `json:"vehicle_id"`
}

// ListForVehicle godoc
// @Summary List service records for a vehicle
// @Tags service-records
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Param type query string false "Exact service type filter"
// @Success 200 {object} RecordListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /vehicles/{id}/service-records [get]
func (h *ServiceRecordHandler) ListForVehicle(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	vehicleID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	records, types, err := h.recordService.ListForVehicle(c.Request().Context(), userID, vehicleID, c.QueryParam("type"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, RecordListResponse{
		Records:      records,
		ServiceTypes: types,
	})
}

// Create godoc
// @Summary Log a service record against a vehicle
// @Tags service-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Param request body service.ServiceRecordInput true "Record data"
// @Success 201 {object} model.ServiceRecord
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /vehicles/{id}/service-records [post]
func (h *ServiceRecordHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	vehicleID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input service.ServiceRecordInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	input.VehicleID = vehicleID

	record, err := h.recordService.Create(c.Request().Context(), userID, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, record)
}

// Update godoc
// @Summary Update a service record
// @Tags service-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param request body service.ServiceRecordInput true "Record data; id must match the path when present"
// @Success 200 {object} model.ServiceRecord
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /service-records/{id} [put]
func (h *ServiceRecordHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	recordID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input service.ServiceRecordInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	record, err := h.recordService.Update(c.Request().Context(), userID, recordID, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, record)
}

// Delete godoc
// @Summary Delete a service record
// @Tags service-records
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} RecordDeleteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /service-records/{id} [delete]
func (h *ServiceRecordHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	recordID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	vehicleID, err := h.recordService.Delete(c.Request().Context(), userID, recordID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, RecordDeleteResponse{VehicleID: vehicleID})
}

// Export godoc
// @Summary Export a vehicle's service history as PDF
// @Tags service-records
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Success 200 {file} binary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /vehicles/{id}/service-records/export [get]
func (h *ServiceRecordHandler) Export(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	vehicleID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	pdfBytes, filename, err := h.reportService.GenerateReport(c.Request().Context(), userID, vehicleID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}
