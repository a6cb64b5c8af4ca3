// Package controllers contains the HTTP handlers. Read endpoints that sit
// behind the cache serialize the full response envelope once, store the
// bytes, and replay them on hits.
package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusgrid/campusgrid/internal/app/models/dto"
	"github.com/campusgrid/campusgrid/internal/middleware"
	"github.com/campusgrid/campusgrid/internal/pkg/cache"
)

const jsonContentType = "application/json; charset=utf-8"

// respondCached serves a read endpoint through the cache. A nil store means
// caching is disabled and the producer runs directly. An inbound
// Cache-Control: no-cache header evicts the key first, forcing a fresh fetch.
// Producer errors (a cached negative included) surface here and map to the
// usual error responses.
func respondCached(c *gin.Context, store *cache.Cache, key string, produce cache.Producer) {
	var payload []byte
	var err error

	if store == nil {
		payload, err = produce(c.Request.Context())
	} else {
		if hasNoCacheDirective(c.GetHeader("Cache-Control")) {
			_ = store.Remove(c.Request.Context(), key)
		}
		payload, err = store.GetOrCreate(c.Request.Context(), key, produce)
	}

	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.Data(http.StatusOK, jsonContentType, payload)
}

// hasNoCacheDirective reports whether a Cache-Control header value carries
// the no-cache directive. The header is a comma-separated directive list and
// clients send composites like "no-cache, max-age=0", so each directive is
// matched as a token, case-insensitively.
func hasNoCacheDirective(header string) bool {
	for _, directive := range strings.Split(header, ",") {
		if strings.EqualFold(strings.TrimSpace(directive), "no-cache") {
			return true
		}
	}
	return false
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
