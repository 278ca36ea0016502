package role_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/people-management/internal"
	"github.com/frahmantamala/people-management/internal/auth"
	roleDatamodel "github.com/frahmantamala/people-management/internal/core/datamodel/role"
	"github.com/frahmantamala/people-management/internal/role"
)

func TestRoleService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Role Service Suite")
}

// MockRepository implements role.RepositoryAPI for testing
type MockRepository struct {
	roles      map[uuid.UUID]*roleDatamodel.Role
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		roles: make(map[uuid.UUID]*roleDatamodel.Role),
	}
}

func (m *MockRepository) GetAll() ([]*roleDatamodel.Role, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*roleDatamodel.Role
	for _, r := range m.roles {
		result = append(result, r)
	}
	return result, nil
}

func (m *MockRepository) GetByID(id uuid.UUID) (*roleDatamodel.Role, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	r, ok := m.roles[id]
	if !ok {
		return nil, internal.ErrRoleNotFound
	}
	return r, nil
}

func (m *MockRepository) GetByName(name string) (*roleDatamodel.Role, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, r := range m.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, internal.ErrRoleNotFound
}

func (m *MockRepository) Create(r *roleDatamodel.Role) error {
	if m.shouldFail {
		return m.failError
	}
	for _, existing := range m.roles {
		if existing.Name == r.Name {
			return internal.ErrRoleExists
		}
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	m.roles[r.ID] = r
	return nil
}

func (m *MockRepository) Update(r *roleDatamodel.Role) error {
	if m.shouldFail {
		return m.failError
	}
	m.roles[r.ID] = r
	return nil
}

func (m *MockRepository) Delete(id uuid.UUID) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.roles, id)
	return nil
}

var _ = Describe("Role Service", func() {
	var (
		mockRepo *MockRepository
		service  *role.Service
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = role.NewService(mockRepo, logger)
	})

	Describe("Create", func() {
		It("creates a role with a valid role type", func() {
			created, err := service.Create(role.CreateRoleDTO{Name: "Administrator", RoleType: auth.RoleAdmin})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).NotTo(Equal(uuid.Nil))
			Expect(created.RoleType).To(Equal(auth.RoleAdmin))
		})

		It("rejects a role type outside the enumeration", func() {
			_, err := service.Create(role.CreateRoleDTO{Name: "Custom", RoleType: "WIZARD"})
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(mockRepo.roles).To(BeEmpty())
		})

		It("rejects a missing name", func() {
			_, err := service.Create(role.CreateRoleDTO{RoleType: auth.RoleUser})
			Expect(err).To(HaveOccurred())
			Expect(mockRepo.roles).To(BeEmpty())
		})

		It("surfaces a duplicate name as a conflict", func() {
			_, err := service.Create(role.CreateRoleDTO{Name: "Administrator", RoleType: auth.RoleAdmin})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(role.CreateRoleDTO{Name: "Administrator", RoleType: auth.RoleSuperAdmin})
			Expect(err).To(Equal(internal.ErrRoleExists))
		})
	})

	Describe("Update", func() {
		It("applies partial changes", func() {
			created, err := service.Create(role.CreateRoleDTO{Name: "Administrator", RoleType: auth.RoleAdmin})
			Expect(err).NotTo(HaveOccurred())

			newName := "Site Administrator"
			updated, err := service.Update(created.ID, role.UpdateRoleDTO{Name: &newName})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Site Administrator"))
			Expect(updated.RoleType).To(Equal(auth.RoleAdmin))
		})

		It("reports NotFound for a missing role", func() {
			newName := "Nobody"
			_, err := service.Update(uuid.New(), role.UpdateRoleDTO{Name: &newName})
			Expect(err).To(Equal(internal.ErrRoleNotFound))
		})
	})

	Describe("Delete", func() {
		It("removes an existing role", func() {
			created, err := service.Create(role.CreateRoleDTO{Name: "Guest", RoleType: auth.RoleGuest})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(created.ID)).To(Succeed())
			_, err = service.GetByID(created.ID)
			Expect(err).To(Equal(internal.ErrRoleNotFound))
		})

		It("reports NotFound for a missing role", func() {
			err := service.Delete(uuid.New())
			Expect(err).To(Equal(internal.ErrRoleNotFound))
		})
	})
})
