package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"rentra/internal/application/rental/usecases"
	vo "rentra/internal/domain/rental/valueobjects"
	"rentra/internal/shared/logger"
	"rentra/internal/shared/utils"
)

type RentalHandler struct {
	createUC   *usecases.CreateRentalUseCase
	approveUC  *usecases.ApproveRentalUseCase
	rejectUC   *usecases.RejectRentalUseCase
	dispatchUC *usecases.DispatchRentalUseCase
	returnUC   *usecases.ReturnRentalUseCase
	closeUC    *usecases.CloseRentalUseCase
	getUC      *usecases.GetRentalUseCase
	listUC     *usecases.ListRentalsUseCase
	logger     logger.Interface
}

func NewRentalHandler(
	createUC *usecases.CreateRentalUseCase,
	approveUC *usecases.ApproveRentalUseCase,
	rejectUC *usecases.RejectRentalUseCase,
	dispatchUC *usecases.DispatchRentalUseCase,
	returnUC *usecases.ReturnRentalUseCase,
	closeUC *usecases.CloseRentalUseCase,
	getUC *usecases.GetRentalUseCase,
	listUC *usecases.ListRentalsUseCase,
	logger logger.Interface,
) *RentalHandler {
	return &RentalHandler{
		createUC:   createUC,
		approveUC:  approveUC,
		rejectUC:   rejectUC,
		dispatchUC: dispatchUC,
		returnUC:   returnUC,
		closeUC:    closeUC,
		getUC:      getUC,
		listUC:     listUC,
		logger:     logger,
	}
}

type createRentalRequest struct {
	AssetID         uint       `json:"asset_id" binding:"required"`
	ClientID        uint       `json:"client_id" binding:"required"`
	StartDate       *time.Time `json:"start_date"`
	ExpectedEndDate *time.Time `json:"expected_end_date"`
	DailyRateCents  *int64     `json:"daily_rate_cents"`
	DepositCents    *int64     `json:"deposit_cents"`
	Currency        string     `json:"currency"`
	Notes           *string    `json:"notes"`
}

func (h *RentalHandler) Create(c *gin.Context) {
	var req createRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	r, err := h.createUC.Execute(c.Request.Context(), usecases.CreateRentalCommand{
		AssetID:         req.AssetID,
		ClientID:        req.ClientID,
		StartDate:       req.StartDate,
		ExpectedEndDate: req.ExpectedEndDate,
		DailyRateCents:  req.DailyRateCents,
		DepositCents:    req.DepositCents,
		Currency:        req.Currency,
		Notes:           req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, toRentalResponse(r), "rental requested")
}

type approveRentalRequest struct {
	StartDate       time.Time `json:"start_date" binding:"required"`
	ExpectedEndDate time.Time `json:"expected_end_date" binding:"required"`
	DailyRateCents  int64     `json:"daily_rate_cents" binding:"required"`
	DepositCents    *int64    `json:"deposit_cents"`
	Currency        string    `json:"currency"`
}

func (h *RentalHandler) Approve(c *gin.Context) {
	rentalID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req approveRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	r, err := h.approveUC.Execute(c.Request.Context(), usecases.ApproveRentalCommand{
		RentalID:        rentalID,
		StartDate:       req.StartDate,
		ExpectedEndDate: req.ExpectedEndDate,
		DailyRateCents:  req.DailyRateCents,
		DepositCents:    req.DepositCents,
		Currency:        req.Currency,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "rental approved", toRentalResponse(r))
}

type rejectRentalRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *RentalHandler) Reject(c *gin.Context) {
	rentalID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req rejectRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	r, err := h.rejectUC.Execute(c.Request.Context(), usecases.RejectRentalCommand{
		RentalID: rentalID,
		Reason:   req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "rental rejected", toRentalResponse(r))
}

type dispatchRentalRequest struct {
	ConditionRating string   `json:"condition_rating" binding:"required"`
	ConditionNotes  *string  `json:"condition_notes"`
	Photos          []string `json:"photos"`
}

func (h *RentalHandler) Dispatch(c *gin.Context) {
	rentalID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dispatchRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	r, err := h.dispatchUC.Execute(c.Request.Context(), usecases.DispatchRentalCommand{
		RentalID:        rentalID,
		ConditionRating: vo.ConditionRating(req.ConditionRating),
		ConditionNotes:  req.ConditionNotes,
		Photos:          req.Photos,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "rental dispatched", toRentalResponse(r))
}

type returnRentalRequest struct {
	ConditionRating   string   `json:"condition_rating" binding:"required"`
	ConditionNotes    *string  `json:"condition_notes"`
	Photos            []string `json:"photos"`
	HasDamage         bool     `json:"has_damage"`
	DamageDescription *string  `json:"damage_description"`
	DamagePhotos      []string `json:"damage_photos"`
}

func (h *RentalHandler) Return(c *gin.Context) {
	rentalID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req returnRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	r, err := h.returnUC.Execute(c.Request.Context(), usecases.ReturnRentalCommand{
		RentalID:          rentalID,
		ConditionRating:   vo.ConditionRating(req.ConditionRating),
		ConditionNotes:    req.ConditionNotes,
		Photos:            req.Photos,
		HasDamage:         req.HasDamage,
		DamageDescription: req.DamageDescription,
		DamagePhotos:      req.DamagePhotos,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "rental returned", toRentalResponse(r))
}

func (h *RentalHandler) Close(c *gin.Context) {
	rentalID, ok := pathID(c, "id")
	if !ok {
		return
	}

	r, err := h.closeUC.Execute(c.Request.Context(), rentalID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "rental closed", toRentalResponse(r))
}

func (h *RentalHandler) Get(c *gin.Context) {
	rentalID, ok := pathID(c, "id")
	if !ok {
		return
	}

	r, err := h.getUC.Execute(c.Request.Context(), rentalID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", toRentalResponse(r))
}

func (h *RentalHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	query := usecases.ListRentalsQuery{Page: pagination.Page, PageSize: pagination.PageSize}
	if s := c.Query("status"); s != "" {
		status := vo.RentalStatus(s)
		query.Status = &status
	}
	if v := c.Query("client_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			clientID := uint(id)
			query.ClientID = &clientID
		}
	}
	if v := c.Query("asset_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			assetID := uint(id)
			query.AssetID = &assetID
		}
	}

	rentals, total, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, toRentalResponses(rentals), total, pagination.Page, pagination.PageSize)
}

// pathID parses the numeric path parameter, answering 400 on garbage.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}
