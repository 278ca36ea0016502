package postgres_test

import (
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/people-management/internal"
	departmentDatamodel "github.com/frahmantamala/people-management/internal/core/datamodel/department"
	"github.com/frahmantamala/people-management/internal/department"
	departmentPostgres "github.com/frahmantamala/people-management/internal/department/postgres"
)

func TestDepartmentPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Department Postgres Suite")
}

var _ = Describe("Department Repository", func() {
	var (
		db   *gorm.DB
		repo department.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&departmentDatamodel.Department{})
		Expect(err).NotTo(HaveOccurred())

		repo = departmentPostgres.NewDepartmentRepository(db)
	})

	Describe("Create", func() {
		It("creates a department and assigns an id", func() {
			dept := &departmentDatamodel.Department{Name: "Engineering"}

			Expect(repo.Create(dept)).To(Succeed())
			Expect(dept.ID).NotTo(Equal(uuid.Nil))
			Expect(dept.CreatedAt).NotTo(BeZero())
		})

		It("rejects a duplicate name as a conflict", func() {
			Expect(repo.Create(&departmentDatamodel.Department{Name: "Engineering"})).To(Succeed())

			err := repo.Create(&departmentDatamodel.Department{Name: "Engineering"})
			Expect(err).To(Equal(internal.ErrDepartmentExists))
		})
	})

	Describe("GetByID", func() {
		It("finds an existing department", func() {
			dept := &departmentDatamodel.Department{Name: "Finance"}
			Expect(repo.Create(dept)).To(Succeed())

			found, err := repo.GetByID(dept.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Name).To(Equal("Finance"))
		})

		It("reports NotFound for an unknown id", func() {
			_, err := repo.GetByID(uuid.New())
			Expect(err).To(Equal(internal.ErrDepartmentNotFound))
		})
	})

	Describe("GetAll", func() {
		It("lists departments ordered by name", func() {
			Expect(repo.Create(&departmentDatamodel.Department{Name: "People Operations"})).To(Succeed())
			Expect(repo.Create(&departmentDatamodel.Department{Name: "Engineering"})).To(Succeed())

			departments, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(departments).To(HaveLen(2))
			Expect(departments[0].Name).To(Equal("Engineering"))
			Expect(departments[1].Name).To(Equal("People Operations"))
		})
	})

	Describe("Update", func() {
		It("renames a department", func() {
			dept := &departmentDatamodel.Department{Name: "Finance"}
			Expect(repo.Create(dept)).To(Succeed())

			dept.Name = "Finance & Legal"
			Expect(repo.Update(dept)).To(Succeed())

			found, err := repo.GetByID(dept.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Name).To(Equal("Finance & Legal"))
		})
	})

	Describe("Delete", func() {
		It("removes the row", func() {
			dept := &departmentDatamodel.Department{Name: "Finance"}
			Expect(repo.Create(dept)).To(Succeed())

			Expect(repo.Delete(dept.ID)).To(Succeed())

			_, err := repo.GetByID(dept.ID)
			Expect(err).To(Equal(internal.ErrDepartmentNotFound))
		})
	})
})
