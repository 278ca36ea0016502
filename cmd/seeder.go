package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/people-management/internal/auth"
	departmentdm "github.com/frahmantamala/people-management/internal/core/datamodel/department"
	roledm "github.com/frahmantamala/people-management/internal/core/datamodel/role"
	userdm "github.com/frahmantamala/people-management/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with roles, departments and an admin account for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{TranslateError: true})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"user_roles", "sessions", "users", "roles", "departments"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		roles := []roledm.Role{
			{Name: "Super Administrator", RoleType: auth.RoleSuperAdmin},
			{Name: "Administrator", RoleType: auth.RoleAdmin},
			{Name: "Moderator", RoleType: auth.RoleModerator},
			{Name: "Manager", RoleType: auth.RoleManager},
			{Name: "Employee", RoleType: auth.RoleUser},
			{Name: "Guest", RoleType: auth.RoleGuest},
		}
		for i := range roles {
			var existing roledm.Role
			if err := db.Where("role_type = ?", roles[i].RoleType).First(&existing).Error; err == nil {
				roles[i] = existing
				continue
			}
			if err := db.Create(&roles[i]).Error; err != nil {
				log.Fatalf("failed to seed role %s: %v", roles[i].RoleType, err)
			}
			fmt.Println("Seeded role:", roles[i].RoleType)
		}

		departments := []string{"Engineering", "People Operations", "Finance"}
		for _, name := range departments {
			var existing departmentdm.Department
			if err := db.Where("name = ?", name).First(&existing).Error; err == nil {
				continue
			}
			if err := db.Create(&departmentdm.Department{Name: name}).Error; err != nil {
				log.Fatalf("failed to seed department %s: %v", name, err)
			}
			fmt.Println("Seeded department:", name)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		adminEmail := "admin@mail.com"
		var adminUser userdm.User
		if err := db.Where("email = ?", adminEmail).First(&adminUser).Error; err != nil {
			adminUser = userdm.User{
				Email:        adminEmail,
				FirstName:    "Admin",
				LastName:     "Account",
				PasswordHash: string(hash),
				IsActive:     true,
			}
			if err := db.Create(&adminUser).Error; err != nil {
				log.Fatalf("failed to seed admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", adminEmail)
		}

		var adminRole roledm.Role
		if err := db.Where("role_type = ?", auth.RoleAdmin).First(&adminRole).Error; err != nil {
			log.Fatalf("admin role missing after seed: %v", err)
		}

		var link roledm.UserRole
		if err := db.Where("user_id = ? AND role_id = ?", adminUser.ID, adminRole.ID).First(&link).Error; err != nil {
			if err := db.Create(&roledm.UserRole{UserID: adminUser.ID, RoleID: adminRole.ID}).Error; err != nil {
				log.Fatalf("failed to assign admin role: %v", err)
			}
			fmt.Println("Granted ADMIN role to:", adminEmail)
		}

		fmt.Println("Seeding complete")
	},
}
