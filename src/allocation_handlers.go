package main

import (
	"net/http"

	"ars/src/common"
	"ars/src/db"
	"ars/src/lib"
	"ars/src/models"
	"ars/src/services"
	"ars/src/types"

	"github.com/gin-gonic/gin"
)

func allocationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/allocations/hostel", func(ctx *gin.Context) {
			var body types.InitiateAllocationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			res, err := getHostelAllocations().InitiateAllocation(ctx.Request.Context(), &services.InitiateAllocationParams{
				UserID:     userId,
				EventID:    body.EventID,
				FacilityID: body.FacilityID,
			})
			if err != nil {
				ctx.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": res})
		}).
		POST("/allocations/hotel", func(ctx *gin.Context) {
			var body types.InitiateHotelAllocationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			res, err := getHotelAllocations().InitiateAllocation(ctx.Request.Context(), &services.InitiateAllocationParams{
				UserID:     userId,
				EventID:    body.EventID,
				FacilityID: body.FacilityID,
				UnitID:     body.RoomTypeID,
			})
			if err != nil {
				ctx.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": res})
		}).
		GET("/allocations", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var allocations []models.Allocation
			err := db.
				Joins("JOIN registrations ON registrations.reg_id = allocations.registration_id").
				Where("registrations.user_id = ?", userId).
				Order("allocations.id desc").
				Find(&allocations).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": allocations, "count": len(allocations)})
		}).
		GET("/allocations/:id/checkout", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var allocation models.Allocation
			err := db.
				Joins("JOIN registrations ON registrations.reg_id = allocations.registration_id").
				Where("allocations.id = ? AND registrations.user_id = ?", params.ID, userId).
				First(&allocation).
				Error
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": common.ErrNotFound.Error()})
				return
			}
			if allocation.Status != types.ALLOCATION_PENDING {
				ctx.JSON(http.StatusConflict, gin.H{"error": "allocation is not awaiting payment"})
				return
			}
			checkoutUrl := lib.LookupCheckoutURL(ctx.Request.Context(), allocation.PaymentReference)
			if checkoutUrl == "" {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "checkout session expired"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": types.InitiatePaymentResponse{
				Reference:   allocation.PaymentReference,
				CheckoutURL: checkoutUrl,
			}})
		})
	return g
}
