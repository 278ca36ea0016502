package auth_test

import (
	"bytes"
	"encoding/json"
	"fmt"
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
	departmentdm "github.com/frahmantamala/people-management/internal/core/datamodel/department"
	roledm "github.com/frahmantamala/people-management/internal/core/datamodel/role"
	sessiondm "github.com/frahmantamala/people-management/internal/core/datamodel/session"
	userdm "github.com/frahmantamala/people-management/internal/core/datamodel/user"
	"github.com/frahmantamala/people-management/internal/googleoauth"
	"github.com/frahmantamala/people-management/internal/transport"
	"github.com/frahmantamala/people-management/internal/transport/rest"
	"github.com/frahmantamala/people-management/internal/user"
	userPostgres "github.com/frahmantamala/people-management/internal/user/postgres"
)

type envelope struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
	Message string                 `json:"message"`
	Error   map[string]interface{} `json:"error"`
}

var _ = Describe("Auth HTTP flows", func() {
	var (
		db       *gorm.DB
		router   *chi.Mux
		provider *httptest.Server
		logger   *slog.Logger
	)

	doJSON := func(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
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

		var env envelope
		if rec.Body.Len() > 0 {
			_ = json.Unmarshal(rec.Body.Bytes(), &env)
		}
		return rec, env
	}

	register := func(email, password, name string) envelope {
		rec, env := doJSON(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"email": email, "password": password, "name": name,
		})
		Expect(rec.Code).To(Equal(http.StatusOK))
		return env
	}

	login := func(email, password string) (int, envelope) {
		rec, env := doJSON(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email": email, "password": password,
		})
		return rec.Code, env
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&departmentdm.Department{}, &roledm.Role{}, &userdm.User{}, &roledm.UserRole{}, &sessiondm.Session{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&roledm.Role{Name: "Employee", RoleType: auth.RoleUser}).Error).To(Succeed())

		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		// Fake identity provider for the federated flow.
		provider = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Path {
			case "/token":
				if r.FormValue("code") != "good-code" {
					w.WriteHeader(http.StatusBadRequest)
					fmt.Fprint(w, `{"error":"invalid_grant"}`)
					return
				}
				fmt.Fprint(w, `{"access_token":"provider-access-token","id_token":"provider-id-token","expires_in":3600,"token_type":"Bearer"}`)
			case "/userinfo":
				fmt.Fprint(w, `{"sub":"g-123","email":"fed@x.com","email_verified":true,"given_name":"Fed","family_name":"User","picture":"https://example.com/p.png"}`)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))

		oauthClient := googleoauth.NewClient(googleoauth.Config{
			ClientID:         "client-id",
			ClientSecret:     "client-secret",
			RedirectURI:      "http://localhost/callback",
			AuthEndpoint:     provider.URL + "/auth",
			TokenEndpoint:    provider.URL + "/token",
			UserInfoEndpoint: provider.URL + "/userinfo",
		}, logger)

		tokenGen := auth.NewJWTTokenGenerator("test-secret-with-at-least-32-characters", time.Hour)
		authUserRepo := authPostgres.NewUserRepository(db, logger)
		sessionRepo := authPostgres.NewSessionRepository(db)
		authService := auth.NewService(authUserRepo, sessionRepo, tokenGen, nil, 4, 7*24*time.Hour, logger)
		authHandler := auth.NewHandler(authService, oauthClient)

		baseHandler := transport.NewBaseHandler(logger)
		userRepo := userPostgres.NewUserRepository(db, logger)
		userService := user.NewService(userRepo, nil, logger)
		userHandler := user.NewHandler(baseHandler, userService)

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, rest.RouterDeps{
			AuthHandler: authHandler,
			Guard:       auth.NewGuard(logger),
			UserHandler: userHandler,
			Logger:      logger,
		})
	})

	AfterEach(func() {
		provider.Close()
	})

	It("registers, logs in and fetches the profile end to end", func() {
		env := register("a@x.com", "secret1", "A Person")
		Expect(env.Success).To(BeTrue())
		Expect(env.Data).To(HaveKey("id"))
		Expect(env.Data["email"]).To(Equal("a@x.com"))
		Expect(env.Data).NotTo(HaveKey("password"))

		code, loginEnv := login("a@x.com", "secret1")
		Expect(code).To(Equal(http.StatusOK))
		token, _ := loginEnv.Data["token"].(string)
		Expect(token).NotTo(BeEmpty())

		rec, meEnv := doJSON(http.MethodGet, "/api/v1/users/me", token, nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(meEnv.Data["id"]).To(Equal(env.Data["id"]))
	})

	It("returns a conflict when the email is already registered", func() {
		register("a@x.com", "secret1", "A")

		rec, env := doJSON(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"email": "a@x.com", "password": "secret2", "name": "B",
		})
		Expect(rec.Code).To(Equal(http.StatusConflict))
		Expect(env.Success).To(BeFalse())
		Expect(env.Error["code"]).To(Equal("USER_EXISTS"))
	})

	It("responds identically for a wrong password and an unknown email", func() {
		register("a@x.com", "secret1", "A")

		wrongCode, wrongEnv := login("a@x.com", "wrong-password")
		unknownCode, unknownEnv := login("nobody@x.com", "secret1")

		Expect(wrongCode).To(Equal(http.StatusUnauthorized))
		Expect(unknownCode).To(Equal(http.StatusUnauthorized))
		Expect(wrongEnv.Error).To(Equal(unknownEnv.Error))
	})

	It("rejects protected routes without a token", func() {
		rec, env := doJSON(http.MethodGet, "/api/v1/users/me", "", nil)
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(env.Error["code"]).To(Equal("NO_TOKEN"))
	})

	It("rejects a still-valid token after the account is deleted", func() {
		register("a@x.com", "secret1", "A")
		_, loginEnv := login("a@x.com", "secret1")
		token, _ := loginEnv.Data["token"].(string)

		rec, _ := doJSON(http.MethodDelete, "/api/v1/users/me", token, nil)
		Expect(rec.Code).To(Equal(http.StatusOK))

		rec, env := doJSON(http.MethodGet, "/api/v1/users/me", token, nil)
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(env.Error["code"]).To(Equal("INVALID_TOKEN"))
	})

	It("redirects to the provider consent screen", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusFound))
		Expect(rec.Header().Get("Location")).To(ContainSubstring(provider.URL + "/auth"))
	})

	It("completes the federated login on the callback", func() {
		rec, env := doJSON(http.MethodGet, "/api/v1/auth/google/callback?code=good-code", "", nil)
		Expect(rec.Code).To(Equal(http.StatusOK))

		userData, _ := env.Data["user"].(map[string]interface{})
		Expect(userData["email"]).To(Equal("fed@x.com"))
		Expect(env.Data["token"]).NotTo(BeEmpty())

		var count int64
		Expect(db.Model(&userdm.User{}).Where("email = ?", "fed@x.com").Count(&count).Error).To(Succeed())
		Expect(count).To(Equal(int64(1)))
	})

	It("rejects a callback without a code", func() {
		rec, env := doJSON(http.MethodGet, "/api/v1/auth/google/callback", "", nil)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(env.Error["code"]).To(Equal("MISSING_OAUTH_CODE"))
	})

	It("propagates a provider rejection as a bad request", func() {
		rec, env := doJSON(http.MethodGet, "/api/v1/auth/google/callback?code=bad-code", "", nil)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(env.Error["code"]).To(Equal("OAUTH_EXCHANGE_FAILED"))
	})
})
