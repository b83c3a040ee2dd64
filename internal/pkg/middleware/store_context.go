package middleware

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/linvex-software/lvx-ecommerce/app/repository"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/storecontext"
)

// StoreContextMiddleware resolves the tenant for every request from the
// X-Store-ID header (numeric id or store slug). Routes behind it can rely
// on a store context being present.
func StoreContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get("X-Store-ID"))
		if raw == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "missing_store",
				"message": "X-Store-ID header is required",
			})
		}

		repo := repository.GetGlobalFactory().GetStoreRepository()

		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			store, err := repo.GetByID(uint(id))
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return unknownStore(c)
				}
				return storeLookupFailed(c)
			}
			storecontext.Set(c, storecontext.StoreContext{StoreID: store.ID, Slug: store.Slug})
			return c.Next()
		}

		store, err := repo.GetBySlug(raw)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return unknownStore(c)
			}
			return storeLookupFailed(c)
		}
		storecontext.Set(c, storecontext.StoreContext{StoreID: store.ID, Slug: store.Slug})
		return c.Next()
	}
}

func unknownStore(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "unknown_store",
		"message": "No store matches X-Store-ID",
	})
}

func storeLookupFailed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "internal_server_error",
		"message": "Store lookup failed",
	})
}
