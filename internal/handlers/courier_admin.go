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

type CourierCreateRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Vehicle string `json:"vehicle"`
	UserID  string `json:"userId"`
}

type CourierUpdateRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Vehicle     *string `json:"vehicle"`
	IsAvailable *bool   `json:"isAvailable"`
	UserID      *string `json:"userId"`
}

func GetAllCouriers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/couriers"
		defer handlePanic(c, route)

		filter := bson.M{}
		if v := strings.TrimSpace(c.Query("isAvailable")); v != "" {
			filter["isAvailable"] = v == "true"
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("couriers").Find(ctx, filter,
			options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var couriers []models.Courier
		if err := cursor.All(ctx, &couriers); err != nil {
			respondError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		respondData(c, http.StatusOK, couriers)
	}
}

// CreateCourier registers a delivery staff profile. An optional userId links
// the profile to a courier-role login account.
func CreateCourier(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/couriers"
		defer handlePanic(c, route)

		var req CourierCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		courier := models.Courier{
			Name:        strings.TrimSpace(req.Name),
			Phone:       strings.TrimSpace(req.Phone),
			Vehicle:     strings.TrimSpace(req.Vehicle),
			IsAvailable: true,
			CreatedAt:   time.Now(),
		}

		if raw := strings.TrimSpace(req.UserID); raw != "" {
			userID, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				respondError(c, http.StatusBadRequest, route, "invalid userId")
				return
			}
			if err := db.Collection("users").FindOne(ctx, bson.M{
				"_id":  userID,
				"role": models.RoleCourier,
			}).Err(); err != nil {
				respondError(c, http.StatusBadRequest, route, "userId must reference a courier account")
				return
			}
			courier.UserID = &userID
		}

		result, err := db.Collection("couriers").InsertOne(ctx, courier)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		courier.ID = result.InsertedID.(primitive.ObjectID)
		respondData(c, http.StatusCreated, courier)
	}
}

func UpdateCourier(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/couriers/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req CourierUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		update := bson.M{}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				respondError(c, http.StatusBadRequest, route, "name cannot be empty")
				return
			}
			update["name"] = name
		}
		if req.Phone != nil {
			update["phone"] = strings.TrimSpace(*req.Phone)
		}
		if req.Vehicle != nil {
			update["vehicle"] = strings.TrimSpace(*req.Vehicle)
		}
		if req.IsAvailable != nil {
			update["isAvailable"] = *req.IsAvailable
		}
		if req.UserID != nil {
			raw := strings.TrimSpace(*req.UserID)
			if raw == "" {
				update["userId"] = nil
			} else {
				userID, err := primitive.ObjectIDFromHex(raw)
				if err != nil {
					respondError(c, http.StatusBadRequest, route, "invalid userId")
					return
				}
				if err := db.Collection("users").FindOne(ctx, bson.M{
					"_id":  userID,
					"role": models.RoleCourier,
				}).Err(); err != nil {
					respondError(c, http.StatusBadRequest, route, "userId must reference a courier account")
					return
				}
				update["userId"] = userID
			}
		}
		if len(update) == 0 {
			respondError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}

		var updated models.Courier
		err = db.Collection("couriers").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": update},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, route, "courier not found")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		respondData(c, http.StatusOK, updated)
	}
}

// DeleteCourier removes a profile; any orders still assigned keep their
// courierId for history.
func DeleteCourier(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/couriers/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("couriers").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			respondError(c, http.StatusNotFound, route, "courier not found")
			return
		}

		c.Status(http.StatusNoContent)
	}
}
