package main

import (
	"net/http"

	"ars/src/db"
	"ars/src/models"
	"ars/src/types"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
)

func accommodationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/accommodations/categories", func(ctx *gin.Context) {
			var body types.CreateCategoryRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			category := models.AccommodationCategory{Name: types.AccommodationType(body.Name)}
			if err := db.Create(&category).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": category})
		}).
		GET("/accommodations/categories", func(ctx *gin.Context) {
			db := db.GetDb()
			var categories []models.AccommodationCategory
			if err := db.Find(&categories).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": categories, "count": len(categories)})
		}).
		POST("/accommodations/facilities", func(ctx *gin.Context) {
			var body types.CreateFacilityRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			facility := models.Facility{
				EventID:               body.EventID,
				CategoryID:            body.CategoryID,
				FacilityName:          body.FacilityName,
				Slug:                  slug.Make(body.FacilityName),
				Available:             body.Available,
				TotalCapacity:         body.TotalCapacity,
				EmployedUserPrice:     body.EmployedUserPrice,
				SelfEmployedUserPrice: body.SelfEmployedUserPrice,
				UnemployedUserPrice:   body.UnemployedUserPrice,
			}
			if err := db.Create(&facility).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": facility})
		}).
		GET("/accommodations/facilities", func(ctx *gin.Context) {
			db := db.GetDb()
			var facilities []models.Facility
			q := db.Preload("Category")
			if eventId := ctx.Query("event"); eventId != "" {
				q = q.Where("event_id = ?", eventId)
			}
			if err := q.Find(&facilities).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": facilities, "count": len(facilities)})
		}).
		GET("/accommodations/facilities/:id/info", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var facility models.Facility
			if err := db.Preload("Category").First(&facility, params.ID).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			info := gin.H{"facility": facility, "slots_left": facility.TotalCapacity - facility.CapacityOccupied}
			if facility.Category != nil && facility.Category.Name == types.ACCOMMODATION_HOTEL {
				var roomTypes []models.HotelRoomType
				if err := db.Where("facility_id = ? AND available = ?", facility.ID, true).Find(&roomTypes).Error; err == nil {
					info["room_types"] = roomTypes
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"data": info})
		}).
		POST("/accommodations/hostel-rooms", func(ctx *gin.Context) {
			var body types.CreateHostelRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			room := models.HostelRoom{
				FacilityID:    body.FacilityID,
				RoomCode:      body.RoomCode,
				Capacity:      body.Capacity,
				AdminReserved: body.AdminReserved,
				TeenRoom:      body.TeenRoom,
			}
			if body.GenderRestriction != "" {
				room.GenderRestriction = types.Gender(body.GenderRestriction)
			}
			if err := db.Create(&room).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": room})
		}).
		POST("/accommodations/hotel-room-types", func(ctx *gin.Context) {
			var body types.CreateHotelRoomTypeRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			roomType := models.HotelRoomType{
				FacilityID:     body.FacilityID,
				RoomType:       body.RoomType,
				Address:        body.Address,
				Description:    body.Description,
				Available:      body.Available,
				AdminReserved:  body.AdminReserved,
				Price:          body.Price,
				RoomsAvailable: body.RoomsAvailable,
			}
			if body.GenderRestriction != "" {
				roomType.GenderRestriction = types.Gender(body.GenderRestriction)
			}
			if err := db.Create(&roomType).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": roomType})
		})
	return g
}
