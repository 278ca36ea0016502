package role_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/people-management/internal/auth"
	authPostgres "github.com/frahmantamala/people-management/internal/auth/postgres"
	roledm "github.com/frahmantamala/people-management/internal/core/datamodel/role"
	sessiondm "github.com/frahmantamala/people-management/internal/core/datamodel/session"
	userdm "github.com/frahmantamala/people-management/internal/core/datamodel/user"
	"github.com/frahmantamala/people-management/internal/role"
	rolePostgres "github.com/frahmantamala/people-management/internal/role/postgres"
	"github.com/frahmantamala/people-management/internal/transport"
	"github.com/frahmantamala/people-management/internal/transport/rest"
)

var _ = Describe("Role admin routes", func() {
	var (
		db          *gorm.DB
		router      *chi.Mux
		authService *auth.Service
	)

	issueToken := func(email, roleType string) string {
		result, err := authService.Register(auth.RegisterDTO{
			Email:    email,
			Password: "secret1",
			Name:     "Test User",
		})
		Expect(err).NotTo(HaveOccurred())

		if roleType == auth.RoleUser {
			return result.Token
		}

		var r roledm.Role
		Expect(db.Where("role_type = ?", roleType).First(&r).Error).To(Succeed())
		var u userdm.User
		Expect(db.Where("email = ?", email).First(&u).Error).To(Succeed())
		Expect(db.Create(&roledm.UserRole{UserID: u.ID, RoleID: r.ID}).Error).To(Succeed())

		// Re-login so the token picks up the new role claim.
		again, err := authService.Login(auth.LoginDTO{Email: email, Password: "secret1"})
		Expect(err).NotTo(HaveOccurred())
		return again.Token
	}

	request := func(method, path, token string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&roledm.Role{}, &userdm.User{}, &roledm.UserRole{}, &sessiondm.Session{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&roledm.Role{Name: "Employee", RoleType: auth.RoleUser}).Error).To(Succeed())
		Expect(db.Create(&roledm.Role{Name: "Administrator", RoleType: auth.RoleAdmin}).Error).To(Succeed())

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		tokenGen := auth.NewJWTTokenGenerator("test-secret-with-at-least-32-characters", time.Hour)
		authUserRepo := authPostgres.NewUserRepository(db, logger)
		sessionRepo := authPostgres.NewSessionRepository(db)
		authService = auth.NewService(authUserRepo, sessionRepo, tokenGen, nil, 4, 7*24*time.Hour, logger)
		authHandler := auth.NewHandler(authService, nil)

		baseHandler := transport.NewBaseHandler(logger)
		roleService := role.NewService(rolePostgres.NewRoleRepository(db), logger)
		roleHandler := role.NewHandler(baseHandler, roleService)

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, rest.RouterDeps{
			AuthHandler: authHandler,
			Guard:       auth.NewGuard(logger),
			RoleHandler: roleHandler,
			Logger:      logger,
		})
	})

	It("forbids a regular user from listing roles", func() {
		token := issueToken("user@x.com", auth.RoleUser)

		rec := request(http.MethodGet, "/api/v1/roles/", token, nil)
		Expect(rec.Code).To(Equal(http.StatusForbidden))
	})

	It("lets an admin manage roles end to end", func() {
		token := issueToken("admin@x.com", auth.RoleAdmin)

		rec := request(http.MethodPost, "/api/v1/roles/", token, map[string]string{
			"name": "Moderators", "roleType": auth.RoleModerator,
		})
		Expect(rec.Code).To(Equal(http.StatusOK))

		var created struct {
			Data struct {
				ID string `json:"id"`
			} `json:"data"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
		Expect(created.Data.ID).NotTo(BeEmpty())

		rec = request(http.MethodGet, "/api/v1/roles/"+created.Data.ID, token, nil)
		Expect(rec.Code).To(Equal(http.StatusOK))

		rec = request(http.MethodDelete, "/api/v1/roles/"+created.Data.ID, token, nil)
		Expect(rec.Code).To(Equal(http.StatusOK))

		rec = request(http.MethodGet, "/api/v1/roles/"+created.Data.ID, token, nil)
		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("rejects an invalid role type with a validation error", func() {
		token := issueToken("admin2@x.com", auth.RoleAdmin)

		rec := request(http.MethodPost, "/api/v1/roles/", token, map[string]string{
			"name": "Wizards", "roleType": "WIZARD",
		})
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})
})
