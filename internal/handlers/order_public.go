package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/VenuriN/Online-Cake-ordering-management-system-sub000/internal/lifecycle"
	"github.com/VenuriN/Online-Cake-ordering-management-system-sub000/internal/models"
	"github.com/VenuriN/Online-Cake-ordering-management-system-sub000/internal/pricing"
)

var cakeShapes = []string{"round", "square", "rectangle", "heart", "custom"}

var cakeFlavors = []string{"vanilla", "chocolate", "red_velvet", "butterscotch", "coffee", "fruit"}

var cakeFrostings = []string{"buttercream", "fondant", "whipped_cream", "cream_cheese", "ganache"}

/* =========================
   REQUEST DTOs
========================= */

type calculatePriceRequest struct {
	CakeSize string   `json:"cakeSize" binding:"required"`
	Toppings []string `json:"toppings"`
	City     string   `json:"city"`
}

type createOrderRequest struct {
	CakeSize            string   `json:"cakeSize" binding:"required"`
	CakeShape           string   `json:"cakeShape"`
	Flavor              string   `json:"flavor" binding:"required"`
	Frosting            string   `json:"frosting"`
	Toppings            []string `json:"toppings"`
	SpecialInstructions string   `json:"specialInstructions"`

	Name            string    `json:"name" binding:"required"`
	Email           string    `json:"email" binding:"required,email"`
	Phone           string    `json:"phone" binding:"required"`
	DeliveryDate    time.Time `json:"deliveryDate" binding:"required"`
	DeliveryAddress string    `json:"deliveryAddress" binding:"required"`
	DeliveryCity    string    `json:"deliveryCity" binding:"required"`

	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

/* =========================
   CATALOG + PRICE PREVIEW
========================= */

// GetOrderOptions returns the static order catalog. Topping entries come
// from the admin-managed addons collection when present; the built-in
// pricing table is the fallback so the storefront keeps working with an
// empty database.
func GetOrderOptions(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/options"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		toppings := activeAddonOptions(ctx, db)
		if len(toppings) == 0 {
			toppings = pricing.ToppingOptions()
		}

		respondData(c, http.StatusOK, gin.H{
			"sizes":     pricing.SizeOptions(),
			"shapes":    cakeShapes,
			"flavors":   cakeFlavors,
			"frostings": cakeFrostings,
			"toppings":  toppings,
			"cities":    pricing.CityOptions(),
		})
	}
}

func activeAddonOptions(ctx context.Context, db *mongo.Database) []pricing.Option {
	cursor, err := db.Collection("addons").Find(ctx, bson.M{"isActive": true},
		options.Find().SetSort(bson.D{{Key: "key", Value: 1}}))
	if err != nil {
		log.Println("[ORDER] [ERROR] addon catalog lookup failed:", err)
		return nil
	}
	defer cursor.Close(ctx)

	var addons []models.Addon
	if err := cursor.All(ctx, &addons); err != nil {
		log.Println("[ORDER] [ERROR] addon catalog decode failed:", err)
		return nil
	}

	opts := make([]pricing.Option, 0, len(addons))
	for _, addon := range addons {
		opts = append(opts, pricing.Option{Key: addon.Key, Price: addon.Price})
	}
	return opts
}

// CalculatePrice previews a price breakdown without persisting anything.
// It shares pricing.Quote with order creation, so the two can never drift.
func CalculatePrice() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/calculate-price"
		defer handlePanic(c, route)

		var req calculatePriceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		respondData(c, http.StatusOK, pricing.Quote(req.CakeSize, req.Toppings, req.City))
	}
}

/* =========================
   CREATE ORDER
========================= */

func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		userIDValue, ok := c.Get("userId")
		if !ok {
			respondError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		order, err := buildOrderFromRequest(req)
		if err != nil {
			respondError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		order.UserID = userID

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			log.Println("[ORDER] [ERROR] order insert failed:", err)
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = id
		}

		log.Println("[ORDER] [INFO] order created:", order.OrderNumber, "for user:", userID.Hex())
		respondData(c, http.StatusCreated, gin.H{
			"orderId":     order.ID.Hex(),
			"orderNumber": order.OrderNumber,
			"totalPrice":  order.TotalPrice,
			"status":      order.Status,
		})
	}
}

// buildOrderFromRequest validates the cake configuration and computes the
// authoritative price snapshot. The client never dictates the price.
func buildOrderFromRequest(req createOrderRequest) (models.Order, error) {
	shape := pricing.NormalizeKey(req.CakeShape)
	if shape == "" {
		shape = "round"
	}
	if !containsString(cakeShapes, shape) {
		return models.Order{}, errors.New("invalid cake shape")
	}

	if req.PaymentMethod != "cash" && req.PaymentMethod != "card" {
		return models.Order{}, errors.New("invalid payment method")
	}

	if req.DeliveryDate.Before(time.Now()) {
		return models.Order{}, errors.New("delivery date must be in the future")
	}

	toppings := make([]string, 0, len(req.Toppings))
	for _, t := range req.Toppings {
		if key := pricing.NormalizeKey(t); key != "" {
			toppings = append(toppings, key)
		}
	}

	city := pricing.NormalizeKey(req.DeliveryCity)
	quote := pricing.Quote(req.CakeSize, toppings, city)

	order := models.Order{
		OrderNumber:         newOrderNumber(),
		CakeSize:            strings.TrimSpace(req.CakeSize),
		CakeShape:           shape,
		Flavor:              pricing.NormalizeKey(req.Flavor),
		Frosting:            pricing.NormalizeKey(req.Frosting),
		Toppings:            toppings,
		SpecialInstructions: strings.TrimSpace(req.SpecialInstructions),
		Name:                strings.TrimSpace(req.Name),
		Email:               strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:               strings.TrimSpace(req.Phone),
		DeliveryDate:        req.DeliveryDate,
		DeliveryAddress:     strings.TrimSpace(req.DeliveryAddress),
		DeliveryCity:        city,
		Breakdown:           quote,
		Status:              lifecycle.StatusPending,
		StatusHistory:       []lifecycle.Entry{lifecycle.NewEntry(lifecycle.StatusPending, "")},
		IsPaid:              false,
		PaymentMethod:       req.PaymentMethod,
		CreatedAt:           time.Now(),
	}

	return order, nil
}

// newOrderNumber generates the customer-facing order token: creation
// timestamp plus a random suffix, distinct from the Mongo _id.
func newOrderNumber() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

/* =========================
   READ + CANCEL
========================= */

// orderLookupFilter addresses an order by either its hex storage id or its
// customer-facing order number. extra constraints (owner scoping, status
// guards) are merged in.
func orderLookupFilter(param string, extra bson.M) bson.M {
	filter := bson.M{}
	for k, v := range extra {
		filter[k] = v
	}
	if objectID, err := primitive.ObjectIDFromHex(param); err == nil {
		filter["_id"] = objectID
	} else {
		filter["orderNumber"] = param
	}
	return filter
}

func GetMyOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/my-orders"
		defer handlePanic(c, route)

		userIDValue, ok := c.Get("userId")
		if !ok {
			respondError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		filter := bson.M{"userId": userID}
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

func GetOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:orderId"
		defer handlePanic(c, route)

		userIDValue, ok := c.Get("userId")
		if !ok {
			respondError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		filter := orderLookupFilter(c.Param("orderId"), bson.M{"userId": userID})

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, filter).Decode(&order); err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		respondData(c, http.StatusOK, order)
	}
}

// CancelOrder moves a pending order to cancelled. The pending guard rides
// in the update filter, so a concurrent status change cannot be overwritten:
// the update matches only while the order is still pending.
func CancelOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /orders/:orderId/cancel"
		defer handlePanic(c, route)

		userIDValue, ok := c.Get("userId")
		if !ok {
			respondError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		filter := orderLookupFilter(c.Param("orderId"), bson.M{
			"userId": userID,
			"status": lifecycle.StatusPending,
		})
		entry := lifecycle.NewEntry(lifecycle.StatusCancelled, "Cancelled by customer")
		update := bson.M{
			"$set":  bson.M{"status": lifecycle.StatusCancelled},
			"$push": bson.M{"statusHistory": entry},
		}

		var updated models.Order
		err := db.Collection("orders").FindOneAndUpdate(ctx, filter, update,
			options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
		if err == nil {
			log.Println("[ORDER] [INFO] order cancelled by customer:", updated.OrderNumber)
			respondData(c, http.StatusOK, updated)
			return
		}
		if err != mongo.ErrNoDocuments {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		// Distinguish "not yours / missing" from "no longer pending".
		lookup := orderLookupFilter(c.Param("orderId"), bson.M{"userId": userID})
		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, lookup).Decode(&order); err != nil {
			respondError(c, http.StatusNotFound, route, "order not found")
			return
		}

		if err := lifecycle.CustomerCancel(order.Status); err != nil {
			respondError(c, http.StatusBadRequest, route, "only pending orders can be cancelled")
			return
		}

		respondError(c, http.StatusInternalServerError, route, "db error")
	}
}
