package main

import (
	"net/http"

	"ars/src/db"
	"ars/src/models"
	"ars/src/types"

	"github.com/gin-gonic/gin"
)

func registrationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/registrations", func(ctx *gin.Context) {
			var body types.CreateRegistrationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var event models.Event
			if err := db.First(&event, body.EventID).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			reg := models.Registration{
				UserID:            userId,
				EventID:           body.EventID,
				ParticipationMode: types.ParticipationMode(body.ParticipationMode),
				Initiator:         types.INITIATOR_USER,
			}
			if body.AccommodationType != "" {
				reg.AccommodationType = types.AccommodationType(body.AccommodationType)
			}
			if err := db.Create(&reg).Error; err != nil {
				// the (user, event) pair is unique
				ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": reg})
		}).
		GET("/registrations", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var regs []models.Registration
			err := db.
				Where(&models.Registration{UserID: userId}).
				Preload("Event").
				Find(&regs).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": regs, "count": len(regs)})
		}).
		GET("/registrations/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var reg models.Registration
			err := db.
				Where(&models.Registration{RegID: params.ID, UserID: userId}).
				Preload("Event").
				First(&reg).
				Error
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reg})
		})
	return g
}
