package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/VenuriN/Online-Cake-ordering-management-system-sub000/internal/lifecycle"
	"github.com/VenuriN/Online-Cake-ordering-management-system-sub000/internal/models"
)

// courierProfile resolves the courier document linked to the calling user's
// account. Courier endpoints are scoped by this profile id.
func courierProfile(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) (*models.Courier, error) {
	var courier models.Courier
	err := db.Collection("couriers").FindOne(ctx, bson.M{"userId": userID}).Decode(&courier)
	if err != nil {
		return nil, err
	}
	return &courier, nil
}

func CourierListOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /courier/api/orders"
		defer handlePanic(c, route)

		userIDValue, ok := c.Get("userId")
		if !ok {
			respondError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		courier, err := courierProfile(ctx, db, userID)
		if err != nil {
			respondError(c, http.StatusForbidden, route, "no courier profile for this account")
			return
		}

		cursor, err := db.Collection("orders").Find(ctx,
			bson.M{"courierId": courier.ID},
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		respondData(c, http.StatusOK, orders)
	}
}

// CourierUpdateOrderStatus lets assigned delivery staff move an order along
// the hand-off legs only: ready to dispatched, dispatched to delivered.
func CourierUpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /courier/api/orders/:orderId/status"
		defer handlePanic(c, route)

		userIDValue, ok := c.Get("userId")
		if !ok {
			respondError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		target, err := lifecycle.Parse(strings.TrimSpace(req.Status))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid status value")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		courier, err := courierProfile(ctx, db, userID)
		if err != nil {
			respondError(c, http.StatusForbidden, route, "no courier profile for this account")
			return
		}

		lookup := orderLookupFilter(c.Param("orderId"), bson.M{"courierId": courier.ID})

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, lookup).Decode(&order); err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := lifecycle.CourierTransition(order.Status, target); err != nil {
			respondError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		entry := lifecycle.NewEntry(target, strings.TrimSpace(req.Note))
		// The current status rides in the filter so a concurrent update
		// cannot be silently overwritten.
		guard := orderLookupFilter(c.Param("orderId"), bson.M{
			"courierId": courier.ID,
			"status":    order.Status,
		})

		var updated models.Order
		err = db.Collection("orders").FindOneAndUpdate(ctx, guard,
			bson.M{
				"$set":  bson.M{"status": target},
				"$push": bson.M{"statusHistory": entry},
			},
			options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusConflict, route, "order status changed, retry")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[ORDER] [INFO] courier status update:", updated.OrderNumber, "->", target)
		respondData(c, http.StatusOK, updated)
	}
}
