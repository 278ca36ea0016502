package postgres_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/people-management/internal"
	roledm "github.com/frahmantamala/people-management/internal/core/datamodel/role"
	userdm "github.com/frahmantamala/people-management/internal/core/datamodel/user"
	"github.com/frahmantamala/people-management/internal/user"
	userPostgres "github.com/frahmantamala/people-management/internal/user/postgres"
)

func TestUserPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Postgres Suite")
}

var _ = Describe("User Repository", func() {
	var (
		db   *gorm.DB
		repo user.RepositoryAPI
	)

	createUser := func(email string) *userdm.User {
		u := &userdm.User{
			Email:        email,
			FirstName:    "Test",
			LastName:     "User",
			PasswordHash: "hashed",
			IsActive:     true,
		}
		Expect(db.Create(u).Error).To(Succeed())
		return u
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&userdm.User{}, &roledm.Role{}, &roledm.UserRole{})
		Expect(err).NotTo(HaveOccurred())

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = userPostgres.NewUserRepository(db, logger)
	})

	Describe("GetByID", func() {
		It("finds an existing user", func() {
			created := createUser("a@x.com")

			found, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Email).To(Equal("a@x.com"))
		})

		It("reports NotFound for an unknown id", func() {
			_, err := repo.GetByID(uuid.New())
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("Update", func() {
		It("applies only the provided fields", func() {
			created := createUser("a@x.com")

			firstName := "Renamed"
			updated, err := repo.Update(created.ID, user.UpdateParams{FirstName: &firstName})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.FirstName).To(Equal("Renamed"))
			Expect(updated.LastName).To(Equal("User"))
			Expect(updated.Email).To(Equal("a@x.com"))
		})

		It("reports NotFound when no row matches", func() {
			firstName := "Nobody"
			_, err := repo.Update(uuid.New(), user.UpdateParams{FirstName: &firstName})
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})

		It("surfaces an email collision as a conflict", func() {
			createUser("a@x.com")
			second := createUser("b@x.com")

			takenEmail := "a@x.com"
			_, err := repo.Update(second.ID, user.UpdateParams{Email: &takenEmail})
			Expect(err).To(Equal(internal.ErrUserExists))
		})
	})

	Describe("SoftDelete", func() {
		It("hides the user from every read path", func() {
			created := createUser("a@x.com")

			Expect(repo.SoftDelete(created.ID)).To(Succeed())

			_, err := repo.GetByID(created.ID)
			Expect(err).To(Equal(internal.ErrUserNotFound))
			_, err = repo.GetByEmail("a@x.com")
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})

		It("stays absent on repeated lookups", func() {
			created := createUser("a@x.com")
			Expect(repo.SoftDelete(created.ID)).To(Succeed())

			for i := 0; i < 2; i++ {
				_, err := repo.GetByID(created.ID)
				Expect(err).To(Equal(internal.ErrUserNotFound))
			}
		})

		It("reports NotFound on a second delete", func() {
			created := createUser("a@x.com")
			Expect(repo.SoftDelete(created.ID)).To(Succeed())
			Expect(repo.SoftDelete(created.ID)).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("RoleTypesFor", func() {
		It("returns the role types linked through user_roles", func() {
			created := createUser("a@x.com")

			r := &roledm.Role{Name: "Administrator", RoleType: "ADMIN"}
			Expect(db.Create(r).Error).To(Succeed())
			Expect(db.Create(&roledm.UserRole{UserID: created.ID, RoleID: r.ID}).Error).To(Succeed())

			roleTypes, err := repo.RoleTypesFor(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(roleTypes).To(ConsistOf("ADMIN"))
		})

		It("returns empty for a user without roles", func() {
			created := createUser("a@x.com")

			roleTypes, err := repo.RoleTypesFor(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(roleTypes).To(BeEmpty())
		})
	})
})
