package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"rentra/internal/application/timesheet/usecases"
	vo "rentra/internal/domain/timesheet/valueobjects"
	"rentra/internal/interfaces/http/middleware"
	"rentra/internal/shared/logger"
	"rentra/internal/shared/utils"
)

type TimesheetHandler struct {
	createUC        *usecases.CreateTimesheetUseCase
	updateUC        *usecases.UpdateTimesheetUseCase
	submitUC        *usecases.SubmitTimesheetUseCase
	verifyUC        *usecases.VerifyTimesheetUseCase
	reviseUC        *usecases.ReviseTimesheetUseCase
	clientApproveUC *usecases.ClientApproveTimesheetUseCase
	getUC           *usecases.GetTimesheetUseCase
	listUC          *usecases.ListTimesheetsUseCase
	logger          logger.Interface
}

func NewTimesheetHandler(
	createUC *usecases.CreateTimesheetUseCase,
	updateUC *usecases.UpdateTimesheetUseCase,
	submitUC *usecases.SubmitTimesheetUseCase,
	verifyUC *usecases.VerifyTimesheetUseCase,
	reviseUC *usecases.ReviseTimesheetUseCase,
	clientApproveUC *usecases.ClientApproveTimesheetUseCase,
	getUC *usecases.GetTimesheetUseCase,
	listUC *usecases.ListTimesheetsUseCase,
	logger logger.Interface,
) *TimesheetHandler {
	return &TimesheetHandler{
		createUC:        createUC,
		updateUC:        updateUC,
		submitUC:        submitUC,
		verifyUC:        verifyUC,
		reviseUC:        reviseUC,
		clientApproveUC: clientApproveUC,
		getUC:           getUC,
		listUC:          listUC,
		logger:          logger,
	}
}

type createTimesheetRequest struct {
	RentalID uint   `json:"rental_id" binding:"required"`
	WorkDate string `json:"work_date" binding:"required"`
}

func (h *TimesheetHandler) Create(c *gin.Context) {
	var req createTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	workDate, err := time.Parse("2006-01-02", req.WorkDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid work_date, expected YYYY-MM-DD")
		return
	}

	ts, err := h.createUC.Execute(c.Request.Context(), usecases.CreateTimesheetCommand{
		RentalID: req.RentalID,
		WorkDate: workDate,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, toTimesheetResponse(ts), "timesheet drafted")
}

type updateTimesheetRequest struct {
	OperatingHours  *float64 `json:"operating_hours"`
	StandbyHours    *float64 `json:"standby_hours"`
	BreakdownHours  *float64 `json:"breakdown_hours"`
	HmKmStart       *float64 `json:"hm_km_start"`
	HmKmEnd         *float64 `json:"hm_km_end"`
	OperationStatus *string  `json:"operation_status"`
}

func (h *TimesheetHandler) Update(c *gin.Context) {
	timesheetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	cmd := usecases.UpdateTimesheetCommand{
		TimesheetID:    timesheetID,
		OperatingHours: req.OperatingHours,
		StandbyHours:   req.StandbyHours,
		BreakdownHours: req.BreakdownHours,
		HmKmStart:      req.HmKmStart,
		HmKmEnd:        req.HmKmEnd,
	}
	if req.OperationStatus != nil {
		status := vo.OperationStatus(*req.OperationStatus)
		cmd.OperationStatus = &status
	}

	ts, err := h.updateUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "timesheet updated", toTimesheetResponse(ts))
}

type submitTimesheetRequest struct {
	Notes *string `json:"notes"`
}

func (h *TimesheetHandler) Submit(c *gin.Context) {
	timesheetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	checkerID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authenticated principal")
		return
	}

	var req submitTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	ts, err := h.submitUC.Execute(c.Request.Context(), usecases.SubmitTimesheetCommand{
		TimesheetID: timesheetID,
		CheckerID:   checkerID,
		Notes:       req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "timesheet submitted", toTimesheetResponse(ts))
}

type verifyTimesheetRequest struct {
	Approve bool    `json:"approve"`
	Notes   *string `json:"notes"`
}

func (h *TimesheetHandler) Verify(c *gin.Context) {
	timesheetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	verifierID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authenticated principal")
		return
	}

	var req verifyTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	ts, err := h.verifyUC.Execute(c.Request.Context(), usecases.VerifyTimesheetCommand{
		TimesheetID: timesheetID,
		VerifierID:  verifierID,
		Approve:     req.Approve,
		Notes:       req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "timesheet verified", toTimesheetResponse(ts))
}

func (h *TimesheetHandler) Revise(c *gin.Context) {
	timesheetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ts, err := h.reviseUC.Execute(c.Request.Context(), timesheetID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "timesheet reopened", toTimesheetResponse(ts))
}

type clientApproveRequest struct {
	ContactID uint   `json:"contact_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

func (h *TimesheetHandler) ClientApprove(c *gin.Context) {
	timesheetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req clientApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	ts, err := h.clientApproveUC.Execute(c.Request.Context(), usecases.ClientApproveTimesheetCommand{
		TimesheetID: timesheetID,
		ContactID:   req.ContactID,
		Signature:   req.Signature,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "timesheet approved by client", toTimesheetResponse(ts))
}

func (h *TimesheetHandler) Get(c *gin.Context) {
	timesheetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ts, err := h.getUC.Execute(c.Request.Context(), timesheetID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", toTimesheetResponse(ts))
}

func (h *TimesheetHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	query := usecases.ListTimesheetsQuery{Page: pagination.Page, PageSize: pagination.PageSize}
	if v := c.Query("rental_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			rentalID := uint(id)
			query.RentalID = &rentalID
		}
	}
	if s := c.Query("status"); s != "" {
		status := vo.TimesheetStatus(s)
		query.Status = &status
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			query.From = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			query.To = &t
		}
	}

	sheets, total, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, toTimesheetResponses(sheets), total, pagination.Page, pagination.PageSize)
}
