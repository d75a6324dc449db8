package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	supplierRepo "festivo/database/repository/supplier"
	"festivo/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const (
	authCachePrefix = "supplierauth:"
	authCacheTTL    = 15 * time.Minute
)

// JWTAuthSupplierMiddleware validates the JWT token for suppliers with Redis caching.
func JWTAuthSupplierMiddleware(repo supplierRepo.SupplierRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// Extract the supplier ID from the token.
		supplierID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || supplierID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// Compute the token hash.
		computedHash := utils.HashToken(tokenString)
		cacheKey := authCachePrefix + computedHash

		// Check the authorization cache.
		authCache := utils.GetAuthCacheClient()
		if cached, err := authCache.Get(ctx, cacheKey).Result(); err == nil && cached == "1" {
			// Refresh TTL (sliding expiration) and proceed.
			if err := authCache.Expire(ctx, cacheKey, authCacheTTL).Err(); err != nil {
				logger.Error("Failed to refresh auth cache TTL", zap.Error(err))
			}
			c.Set("supplierID", supplierID)
			c.Next()
			return
		} else if err != nil && err != redis.Nil {
			logger.Error("Error checking auth cache", zap.Error(err))
		}

		// Cache miss: query the supplier repository.
		proj := bson.M{"id": 1, "security.tokenHash": 1}
		sup, err := repo.GetByIDWithProjection(supplierID, proj)
		if err != nil || sup == nil {
			logger.Error("Supplier not found when validating token", zap.String("supplierID", supplierID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Supplier not found"})
			return
		}

		// Validate the token hash.
		if computedHash != sup.Security.TokenHash {
			logger.Error("Token hash mismatch", zap.String("supplierID", supplierID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		// Cache the validated token.
		if err := authCache.Set(ctx, cacheKey, "1", authCacheTTL).Err(); err != nil {
			logger.Error("Failed to cache auth token", zap.Error(err))
		}

		c.Set("supplierID", supplierID)
		c.Next()
	}
}
