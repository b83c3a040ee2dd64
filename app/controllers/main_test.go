package controllers_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/linvex-software/lvx-ecommerce/app/models"
	"github.com/linvex-software/lvx-ecommerce/app/repository"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/database"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/env"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/router"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/taskqueue"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/webhook"
)

const (
	testWebhookSecret = "test-mp-secret"
	testStoreID       = "1"
)

// Shared fixture for the package. The repository factory and the task queue
// are process-wide singletons, so every test runs against the same app and
// database and seeds its own rows.
var (
	testSetupOnce  sync.Once
	testApp        *fiber.App
	testDB         *gorm.DB
	operatorAPIKey string
	regularAPIKey  string
	testStore      *models.Store
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	testSetupOnce.Do(func() {
		env.Env = map[string]string{
			"WEBHOOK_PROVIDERS":          "mercadopago,pagseguro",
			"WEBHOOK_SECRET_MERCADOPAGO": testWebhookSecret,
		}

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			panic(err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			panic(err)
		}
		// A single connection keeps every query on the same in-memory database.
		sqlDB.SetMaxOpenConns(1)

		if err := db.AutoMigrate(
			&models.Store{},
			&models.User{},
			&models.Product{},
			&models.ProductVariant{},
			&models.Order{},
			&models.OrderItem{},
			&models.StockMovement{},
			&models.WebhookEvent{},
		); err != nil {
			panic(err)
		}

		database.SetDB(db)
		repository.InitializeFactory(db)
		testDB = db

		testStore = &models.Store{Name: "Main Store", Slug: "main-store", Currency: "BRL"}
		if err := db.Create(testStore).Error; err != nil {
			panic(err)
		}

		operatorAPIKey = seedStaffUser(db, "operator@example.com", models.ROLE_OPERATOR)
		regularAPIKey = seedStaffUser(db, "staff@example.com", models.ROLE_USER)

		queue := taskqueue.GetManager().GetQueue()
		queue.DisablePersistence()
		queue.Register(taskqueue.JobTypeWebhookDispatch, webhook.NewDispatchProcessor(newWebhookService()))
		queue.Start()

		testApp = fiber.New()
		router.InstallRouter(testApp)
	})

	require.NotNil(t, testApp)
	return testApp, testDB
}

func seedStaffUser(db *gorm.DB, email, role string) string {
	user, err := models.CreateUser(1, "Test Staff", email, "s3cret-pass", role)
	if err != nil {
		panic(err)
	}
	key, err := user.IssueAPIKey()
	if err != nil {
		panic(err)
	}
	if err := db.Create(user).Error; err != nil {
		panic(err)
	}
	return key
}

func signWebhookBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write(body)
	return "v1=" + hex.EncodeToString(mac.Sum(nil))
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body []byte, headers map[string]string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("X-Store-ID", testStoreID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", string(raw))
	}
	return resp, decoded
}
