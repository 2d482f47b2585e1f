/*
Copyright 2026 CoreLedger Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coreledger-io/coreledger/config"
	"github.com/coreledger-io/coreledger/model"
)

const (
	KeyHeader           = "X-CoreLedger-Key"
	UserIDHeader        = "X-User-ID"
	CorrelationIDHeader = "X-Correlation-ID"

	UserIDContextKey        = "user_id"
	CorrelationIDContextKey = "correlation_id"
)

// SecretKeyAuthMiddleware rejects requests that do not carry the
// configured secret key.
func SecretKeyAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		conf, err := config.Fetch()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Secret key is not configured"})
			return
		}
		secretKey := conf.Server.SecretKey
		if secretKey == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Secret key is not configured"})
			return
		}

		clientSecret := c.GetHeader(KeyHeader)

		if clientSecret == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing secret key"})
			return
		}

		if !secureCompare(secretKey, clientSecret) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid secret key"})
			return
		}

		c.Next()
	}
}

// IdentityMiddleware lifts the caller identity and correlation id out
// of the headers into the request context. A missing correlation id
// gets a generated one so the trail never starts blank.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(UserIDContextKey, c.GetHeader(UserIDHeader))

		correlationID := c.GetHeader(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = model.GenerateUUIDWithSuffix("corr")
		}
		c.Set(CorrelationIDContextKey, correlationID)

		c.Next()
	}
}

func secureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
