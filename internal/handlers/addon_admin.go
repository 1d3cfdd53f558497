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

	"github.com/VenuriN/Online-Cake-ordering-management-system-sub000/internal/models"
	"github.com/VenuriN/Online-Cake-ordering-management-system-sub000/internal/pricing"
)

type AddonCreateRequest struct {
	Key      string  `json:"key" binding:"required"`
	Label    string  `json:"label" binding:"required"`
	Price    float64 `json:"price" binding:"min=0"`
	IsActive *bool   `json:"isActive"`
}

type AddonUpdateRequest struct {
	Label    *string  `json:"label"`
	Price    *float64 `json:"price"`
	IsActive *bool    `json:"isActive"`
}

func GetAllAddons(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/addons"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("addons").Find(ctx, bson.M{},
			options.Find().SetSort(bson.D{{Key: "key", Value: 1}}))
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var addons []models.Addon
		if err := cursor.All(ctx, &addons); err != nil {
			respondError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		respondData(c, http.StatusOK, addons)
	}
}

// CreateAddon registers a topping catalog entry. Keys outside the fixed fee
// table are allowed but contribute nothing to order pricing, so they get a
// warning in the log.
func CreateAddon(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/addons"
		defer handlePanic(c, route)

		var req AddonCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		key := pricing.NormalizeKey(req.Key)
		if key == "" {
			respondError(c, http.StatusBadRequest, route, "key required")
			return
		}
		if !pricing.KnownTopping(key) {
			log.Println("[ADDON] [WARN] addon key has no pricing entry, orders will not charge for it:", key)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("addons").CountDocuments(ctx, bson.M{"key": key})
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if count > 0 {
			respondError(c, http.StatusConflict, route, "addon already exists")
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		addon := models.Addon{
			Key:       key,
			Label:     strings.TrimSpace(req.Label),
			Price:     req.Price,
			IsActive:  isActive,
			CreatedAt: time.Now(),
		}

		result, err := db.Collection("addons").InsertOne(ctx, addon)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		addon.ID = result.InsertedID.(primitive.ObjectID)
		respondData(c, http.StatusCreated, addon)
	}
}

func UpdateAddon(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/addons/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req AddonUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		update := bson.M{}
		if req.Label != nil {
			label := strings.TrimSpace(*req.Label)
			if label == "" {
				respondError(c, http.StatusBadRequest, route, "label cannot be empty")
				return
			}
			update["label"] = label
		}
		if req.Price != nil {
			if *req.Price < 0 {
				respondError(c, http.StatusBadRequest, route, "price cannot be negative")
				return
			}
			update["price"] = *req.Price
		}
		if req.IsActive != nil {
			update["isActive"] = *req.IsActive
		}
		if len(update) == 0 {
			respondError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Addon
		err = db.Collection("addons").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": update},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, route, "addon not found")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		respondData(c, http.StatusOK, updated)
	}
}

// DeleteAddon deactivates; past orders keep referencing the key.
func DeleteAddon(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/addons/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("addons").UpdateOne(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"isActive": false}},
		)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.MatchedCount == 0 {
			respondError(c, http.StatusNotFound, route, "addon not found")
			return
		}

		c.Status(http.StatusNoContent)
	}
}
