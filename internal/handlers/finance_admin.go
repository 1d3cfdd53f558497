package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/VenuriN/Online-Cake-ordering-management-system-sub000/internal/models"
)

type FinanceCreateRequest struct {
	Type        string  `json:"type" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"required"`
	RecordedAt  string  `json:"recordedAt"`
}

func GetFinanceRecords(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/finance"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		filter := bson.M{}
		if t := strings.TrimSpace(c.Query("type")); t != "" {
			if t != models.FinanceIncome && t != models.FinanceExpense {
				respondError(c, http.StatusBadRequest, route, "invalid type filter")
				return
			}
			filter["type"] = t
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "recordedAt", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("finance_records").CountDocuments(ctx, filter)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		cursor, err := db.Collection("finance_records").Find(ctx, filter, findOptions)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		records := make([]models.FinanceRecord, 0, limit)
		if err := cursor.All(ctx, &records); err != nil {
			respondError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    records,
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
				"total": total,
			},
		})
	}
}

func CreateFinanceRecord(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/finance"
		defer handlePanic(c, route)

		var req FinanceCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if req.Type != models.FinanceIncome && req.Type != models.FinanceExpense {
			respondError(c, http.StatusBadRequest, route, "type must be income or expense")
			return
		}

		recordedAt := time.Now()
		if raw := strings.TrimSpace(req.RecordedAt); raw != "" {
			t, err := parseDateParam(raw)
			if err != nil {
				respondError(c, http.StatusBadRequest, route, "invalid recordedAt")
				return
			}
			recordedAt = t
		}

		record := models.FinanceRecord{
			RecordID:    uuid.NewString(),
			Type:        req.Type,
			Amount:      req.Amount,
			Description: strings.TrimSpace(req.Description),
			RecordedAt:  recordedAt,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("finance_records").InsertOne(ctx, record)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		record.ID = result.InsertedID.(primitive.ObjectID)
		respondData(c, http.StatusCreated, record)
	}
}

func DeleteFinanceRecord(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/finance/:recordId"
		defer handlePanic(c, route)

		recordID := strings.TrimSpace(c.Param("recordId"))
		if recordID == "" {
			respondError(c, http.StatusBadRequest, route, "invalid record id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("finance_records").DeleteOne(ctx, bson.M{"recordId": recordID})
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			respondError(c, http.StatusNotFound, route, "finance record not found")
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// GetFinanceSummary totals income and expenses, optionally within a date
// range.
func GetFinanceSummary(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/finance/summary"
		defer handlePanic(c, route)

		filter := bson.M{}
		dateRange := bson.M{}
		if from := strings.TrimSpace(c.Query("from")); from != "" {
			t, err := parseDateParam(from)
			if err != nil {
				respondError(c, http.StatusBadRequest, route, "invalid from param")
				return
			}
			dateRange["$gte"] = t
		}
		if to := strings.TrimSpace(c.Query("to")); to != "" {
			t, err := parseDateParam(to)
			if err != nil {
				respondError(c, http.StatusBadRequest, route, "invalid to param")
				return
			}
			if len(to) == len("2006-01-02") {
				t = t.Add(24 * time.Hour)
			}
			dateRange["$lt"] = t
		}
		if len(dateRange) > 0 {
			filter["recordedAt"] = dateRange
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("finance_records").Find(ctx, filter)
		if err != nil {
			respondError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var records []models.FinanceRecord
		if err := cursor.All(ctx, &records); err != nil {
			respondError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		var income, expenses float64
		for _, record := range records {
			switch record.Type {
			case models.FinanceIncome:
				income += record.Amount
			case models.FinanceExpense:
				expenses += record.Amount
			}
		}

		respondData(c, http.StatusOK, gin.H{
			"income":   income,
			"expenses": expenses,
			"net":      income - expenses,
			"records":  len(records),
		})
	}
}
