package front

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sheetsmith/sheetsmith/internal/config"
	"github.com/sheetsmith/sheetsmith/internal/db"
	"github.com/sheetsmith/sheetsmith/internal/events"
	"github.com/sheetsmith/sheetsmith/internal/generator"
	"github.com/sheetsmith/sheetsmith/internal/models"
	"github.com/sheetsmith/sheetsmith/internal/ratelimit"
	"github.com/sheetsmith/sheetsmith/internal/security"
	internalsettings "github.com/sheetsmith/sheetsmith/internal/settings"
	"gorm.io/gorm"
)

const testJWTSecret = "front-test-secret"

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	conn, errOpen := db.Open(filepath.Join(t.TempDir(), "front_test.db"))
	if errOpen != nil {
		t.Fatalf("open database: %v", errOpen)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate database: %v", errMigrate)
	}
	internalsettings.RegisterDB(conn)

	jwtCfg := config.JWTConfig{Secret: testJWTSecret, Expiry: time.Hour}
	recorder := events.NewRecorder(conn)

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	RegisterFrontRoutes(engine, conn, jwtCfg, Services{
		Pipeline: generator.NewPipeline(conn, nil, recorder),
		Recorder: recorder,
		Limiter:  ratelimit.NewManager(),
	})
	return engine, conn
}

func createTestUser(t *testing.T, conn *gorm.DB, email, planTier string) (models.User, string) {
	t.Helper()
	user := models.User{
		UUID:     uuid.NewString(),
		Email:    email,
		PlanTier: planTier,
		Active:   true,
	}
	if errCreate := conn.Create(&user).Error; errCreate != nil {
		t.Fatalf("create user: %v", errCreate)
	}
	token, errSign := security.SignUserToken(testJWTSecret, user.ID, false, time.Hour)
	if errSign != nil {
		t.Fatalf("sign token: %v", errSign)
	}
	return user, token
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestTemplateListFiltersByStoredPlan(t *testing.T) {
	engine, conn := newTestRouter(t)
	_, freeToken := createTestUser(t, conn, "free@example.com", "free")

	w := doRequest(t, engine, http.MethodGet, "/v0/templates", freeToken, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var payload struct {
		Templates []struct {
			Slug string `json:"slug"`
		} `json:"templates"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &payload); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}

	slugs := make(map[string]bool, len(payload.Templates))
	for _, item := range payload.Templates {
		slugs[item.Slug] = true
	}
	if !slugs["personal-budget"] {
		t.Fatal("free viewer should see the free-tier template")
	}
	if slugs["inventory-manager"] {
		t.Fatal("free viewer must not see a pro-tier template")
	}
	if slugs["internal-metrics"] {
		t.Fatal("free viewer must not see an admin-only template")
	}
}

func TestTemplateGetHiddenForLowerPlan(t *testing.T) {
	engine, conn := newTestRouter(t)
	_, freeToken := createTestUser(t, conn, "free@example.com", "free")
	_, proToken := createTestUser(t, conn, "pro@example.com", "pro")

	if w := doRequest(t, engine, http.MethodGet, "/v0/templates/inventory-manager", freeToken, ""); w.Code != http.StatusNotFound {
		t.Fatalf("free viewer status = %d, want 404", w.Code)
	}
	if w := doRequest(t, engine, http.MethodGet, "/v0/templates/inventory-manager", proToken, ""); w.Code != http.StatusOK {
		t.Fatalf("pro viewer status = %d, want 200", w.Code)
	}
}

func TestTemplateCopyHiddenForLowerPlan(t *testing.T) {
	engine, conn := newTestRouter(t)
	_, freeToken := createTestUser(t, conn, "free@example.com", "free")

	w := doRequest(t, engine, http.MethodGet, "/v0/templates/inventory-manager/copy", freeToken, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var count int64
	if errCount := conn.Model(&models.Event{}).Count(&count).Error; errCount != nil {
		t.Fatalf("count events: %v", errCount)
	}
	if count != 0 {
		t.Fatalf("hidden copy must not record an event, got %d", count)
	}
}

func TestGenerateHiddenTemplateNotFound(t *testing.T) {
	engine, conn := newTestRouter(t)
	_, freeToken := createTestUser(t, conn, "free@example.com", "free")

	body := `{"template": "inventory-manager"}`
	w := doRequest(t, engine, http.MethodPost, "/v0/generate", freeToken, body)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var count int64
	if errCount := conn.Model(&models.SpecRequest{}).Count(&count).Error; errCount != nil {
		t.Fatalf("count requests: %v", errCount)
	}
	if count != 0 {
		t.Fatalf("hidden template must not create an audit row, got %d", count)
	}
}

func TestClientClaimedPlanIsIgnored(t *testing.T) {
	// The stored row says free; a token signed for that user grants nothing
	// more no matter what the client asserts alongside it.
	engine, conn := newTestRouter(t)
	user, _ := createTestUser(t, conn, "free@example.com", "free")

	// Sign a token with the admin claim set; the middleware reloads the row
	// and the viewer context comes from the database, not the token.
	forged, errSign := security.SignUserToken(testJWTSecret, user.ID, true, time.Hour)
	if errSign != nil {
		t.Fatalf("sign token: %v", errSign)
	}
	w := doRequest(t, engine, http.MethodGet, "/v0/templates/internal-metrics", forged, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestOptionalAuthRejectsMalformedToken(t *testing.T) {
	engine, _ := newTestRouter(t)

	if w := doRequest(t, engine, http.MethodGet, "/v0/templates", "not-a-jwt", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token status = %d, want 401", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/v0/templates", strings.NewReader(""))
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("non-bearer scheme status = %d, want 401", w.Code)
	}
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doRequest(t, engine, http.MethodGet, "/v0/templates", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous status = %d, want 200", w.Code)
	}
}
