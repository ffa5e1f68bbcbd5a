package main

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"ars/src/common"
	"ars/src/db"
	"ars/src/models"
	"ars/src/types"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
)

// billingWebhookRoute mounts the provider's charge status callback. It is
// unauthenticated and always acknowledges with 200 once the payload parses;
// the provider retries anything else and every transition downstream is
// idempotent anyway.
func billingWebhookRoute(router *gin.Engine) {
	router.POST("/api/v1/billing/verify", func(ctx *gin.Context) {
		raw, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			ctx.Status(http.StatusBadRequest)
			return
		}
		event := gjson.GetBytes(raw, "event").String()
		reference := gjson.GetBytes(raw, "data.reference").String()
		log.Printf("[billing] webhook event=%s reference=%s status=%s\n",
			event, reference, gjson.GetBytes(raw, "data.status").String())

		var webhook types.PaymentStatusWebhook
		if err := json.Unmarshal(raw, &webhook); err != nil {
			ctx.Status(http.StatusBadRequest)
			return
		}
		if webhook.Data.Reference == "" {
			ctx.Status(http.StatusBadRequest)
			return
		}
		if err := getBillingService().VerifyPayment(ctx.Request.Context(), &webhook); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				log.Printf("[billing] webhook for unknown reference %s\n", webhook.Data.Reference)
			} else {
				log.Printf("[billing] webhook processing failed for %s: %s\n", webhook.Data.Reference, err.Error())
			}
		}
		ctx.Status(http.StatusOK)
	})
}

func billingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/billing/payments/:reference", func(ctx *gin.Context) {
			reference := ctx.Param("reference")
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var record models.PaymentRecord
			err := db.
				Where(&models.PaymentRecord{PaymentReference: reference, UserID: userId}).
				First(&record).
				Error
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": common.ErrNotFound.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": record})
		})
	return g
}
