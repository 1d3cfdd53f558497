package handlers

import (
	"context"
	"errors"
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

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

type assignCourierRequest struct {
	CourierID string `json:"courierId" binding:"required"`
}

type markPaidRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

// buildAdminOrderFilter translates the admin list query params into a Mongo
// filter. Date bounds apply to createdAt and accept YYYY-MM-DD or RFC 3339.
func buildAdminOrderFilter(status, from, to string) (bson.M, error) {
	filter := bson.M{}

	if status = strings.TrimSpace(status); status != "" {
		parsed, err := lifecycle.Parse(status)
		if err != nil {
			return nil, err
		}
		filter["status"] = parsed
	}

	dateRange := bson.M{}
	if from = strings.TrimSpace(from); from != "" {
		t, err := parseDateParam(from)
		if err != nil {
			return nil, err
		}
		dateRange["$gte"] = t
	}
	if to = strings.TrimSpace(to); to != "" {
		t, err := parseDateParam(to)
		if err != nil {
			return nil, err
		}
		// An end date without a time component means "through that day".
		if len(to) == len("2006-01-02") {
			t = t.Add(24 * time.Hour)
		}
		dateRange["$lt"] = t
	}
	if len(dateRange) > 0 {
		filter["createdAt"] = dateRange
	}

	return filter, nil
}

var errInvalidDate = errors.New("invalid date param")

func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, errInvalidDate
}

func AdminListOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		filter, err := buildAdminOrderFilter(c.Query("status"), c.Query("from"), c.Query("to"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("orders").CountDocuments(ctx, filter)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		cursor, err := db.Collection("orders").Find(ctx, filter, findOptions)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0, limit)
		if err := cursor.All(ctx, &orders); err != nil {
			respondError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    orders,
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
				"total": total,
			},
		})
	}
}

// AdminUpdateOrderStatus moves an order to any of the enumerated statuses.
// The transition table is permissive for admins; validation still rejects
// unknown status strings.
func AdminUpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/orders/:orderId/status"
		defer handlePanic(c, route)

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

		lookup := orderLookupFilter(c.Param("orderId"), nil)

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, lookup).Decode(&order); err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := lifecycle.AdminTransition(order.Status, target); err != nil {
			respondError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		entry := lifecycle.NewEntry(target, strings.TrimSpace(req.Note))
		update := bson.M{
			"$set":  bson.M{"status": target},
			"$push": bson.M{"statusHistory": entry},
		}

		var updated models.Order
		err = db.Collection("orders").FindOneAndUpdate(ctx, lookup, update,
			options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[ORDER] [INFO] status updated:", updated.OrderNumber, "->", target)
		respondData(c, http.StatusOK, updated)
	}
}

func AdminAssignCourier(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/orders/:orderId/assign"
		defer handlePanic(c, route)

		var req assignCourierRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		courierID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.CourierID))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid courierId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := db.Collection("couriers").FindOne(ctx, bson.M{"_id": courierID}).Err(); err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusBadRequest, route, "courier not found")
				return
			}
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		lookup := orderLookupFilter(c.Param("orderId"), nil)
		var updated models.Order
		err = db.Collection("orders").FindOneAndUpdate(ctx, lookup,
			bson.M{"$set": bson.M{"courierId": courierID}},
			options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[ORDER] [INFO] courier assigned:", updated.OrderNumber, "->", courierID.Hex())
		respondData(c, http.StatusOK, updated)
	}
}

func AdminMarkOrderPaid(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/orders/:orderId/payment"
		defer handlePanic(c, route)

		var req markPaidRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if req.PaymentMethod != "cash" && req.PaymentMethod != "card" {
			respondError(c, http.StatusBadRequest, route, "invalid payment method")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		lookup := orderLookupFilter(c.Param("orderId"), nil)
		var updated models.Order
		err := db.Collection("orders").FindOneAndUpdate(ctx, lookup,
			bson.M{"$set": bson.M{"isPaid": true, "paymentMethod": req.PaymentMethod}},
			options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[ORDER] [INFO] order marked paid:", updated.OrderNumber)
		respondData(c, http.StatusOK, updated)
	}
}
