package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/VenuriN/Online-Cake-ordering-management-system-sub000/internal/models"
)

type InventoryCreateRequest struct {
	Name              string  `json:"name" binding:"required"`
	Quantity          float64 `json:"quantity" binding:"min=0"`
	Unit              string  `json:"unit" binding:"required"`
	LowStockThreshold float64 `json:"lowStockThreshold" binding:"min=0"`
}

type InventoryUpdateRequest struct {
	Name              *string  `json:"name"`
	Quantity          *float64 `json:"quantity"`
	Unit              *string  `json:"unit"`
	LowStockThreshold *float64 `json:"lowStockThreshold"`
}

func GetInventory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/inventory"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("inventory").Find(ctx, bson.M{},
			options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var items []models.InventoryItem
		if err := cursor.All(ctx, &items); err != nil {
			respondError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		// ?lowStock=true narrows to items at or below their threshold.
		if strings.TrimSpace(c.Query("lowStock")) == "true" {
			low := make([]models.InventoryItem, 0, len(items))
			for _, item := range items {
				if item.IsLowStock() {
					low = append(low, item)
				}
			}
			items = low
		}

		respondData(c, http.StatusOK, items)
	}
}

func CreateInventoryItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/inventory"
		defer handlePanic(c, route)

		var req InventoryCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		item := models.InventoryItem{
			Name:              strings.TrimSpace(req.Name),
			Quantity:          req.Quantity,
			Unit:              strings.TrimSpace(req.Unit),
			LowStockThreshold: req.LowStockThreshold,
			UpdatedAt:         time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("inventory").InsertOne(ctx, item)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		item.ID = result.InsertedID.(primitive.ObjectID)
		respondData(c, http.StatusCreated, item)
	}
}

func UpdateInventoryItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/inventory/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req InventoryUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		update := bson.M{}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				respondError(c, http.StatusBadRequest, route, "name cannot be empty")
				return
			}
			update["name"] = name
		}
		if req.Quantity != nil {
			if *req.Quantity < 0 {
				respondError(c, http.StatusBadRequest, route, "quantity cannot be negative")
				return
			}
			update["quantity"] = *req.Quantity
		}
		if req.Unit != nil {
			update["unit"] = strings.TrimSpace(*req.Unit)
		}
		if req.LowStockThreshold != nil {
			if *req.LowStockThreshold < 0 {
				respondError(c, http.StatusBadRequest, route, "lowStockThreshold cannot be negative")
				return
			}
			update["lowStockThreshold"] = *req.LowStockThreshold
		}
		if len(update) == 0 {
			respondError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}
		update["updatedAt"] = time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.InventoryItem
		err = db.Collection("inventory").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": update},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, route, "inventory item not found")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		respondData(c, http.StatusOK, updated)
	}
}

func DeleteInventoryItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/inventory/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("inventory").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			respondError(c, http.StatusNotFound, route, "inventory item not found")
			return
		}

		c.Status(http.StatusNoContent)
	}
}
