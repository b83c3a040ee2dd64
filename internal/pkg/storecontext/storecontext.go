package storecontext

import "github.com/gofiber/fiber/v2"

// Locals key for the resolved tenant
const KeyStoreContext = "STORE_CONTEXT"

// StoreContext identifies the tenant a request acts on. Every route in this
// core is tenant-scoped; a request without one is a routing problem.
type StoreContext struct {
	StoreID uint   `json:"store_id"`
	Slug    string `json:"slug"`
}

// Set attaches the store context to the request.
func Set(c *fiber.Ctx, ctx StoreContext) {
	c.Locals(KeyStoreContext, ctx)
}

// Get retrieves the store context from the request, if any.
func Get(c *fiber.Ctx) (StoreContext, bool) {
	if ctx := c.Locals(KeyStoreContext); ctx != nil {
		sc, ok := ctx.(StoreContext)
		return sc, ok
	}
	return StoreContext{}, false
}

// GetStoreID returns the tenant id, or 0 when none was resolved.
func GetStoreID(c *fiber.Ctx) uint {
	sc, _ := Get(c)
	return sc.StoreID
}
