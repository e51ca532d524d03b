// Package main provides a database seeder for development and testing.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AloneRunner/DersTimeTable/internal/pkg/config"
	"github.com/AloneRunner/DersTimeTable/internal/pkg/database"
	"github.com/AloneRunner/DersTimeTable/internal/pkg/database/models"
)

// Seed data - ONLY FOR DEVELOPMENT
const (
	DefaultTenantName = "Demo School"
	DefaultTenantSlug = "demo-school"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fmt.Println("=== Timetable Database Seeder ===")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if !cfg.UseDatabase {
		return fmt.Errorf("seeding requires DATABASE_URL to be set; the JSON file store has nothing to migrate into")
	}

	conn, err := database.New(database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	db := conn.DB()
	fmt.Println("Connected to database")

	tenant, err := seedTenant(db)
	if err != nil {
		return fmt.Errorf("failed to seed tenant: %w", err)
	}

	teachers, err := seedTeachers(db, tenant.ID)
	if err != nil {
		return fmt.Errorf("failed to seed teachers: %w", err)
	}

	locations, err := seedLocations(db, tenant.ID)
	if err != nil {
		return fmt.Errorf("failed to seed locations: %w", err)
	}

	classrooms, err := seedClassrooms(db, tenant.ID)
	if err != nil {
		return fmt.Errorf("failed to seed classrooms: %w", err)
	}

	if err := seedSubjects(db, tenant.ID, classrooms, locations); err != nil {
		return fmt.Errorf("failed to seed subjects: %w", err)
	}

	if err := seedTrial(db, tenant.ID); err != nil {
		return fmt.Errorf("failed to seed trial subscription: %w", err)
	}

	_ = teachers

	fmt.Println()
	fmt.Println("=== Seed Completed Successfully ===")
	fmt.Printf("Tenant: %s (%s, id=%s)\n", tenant.Name, tenant.Slug, tenant.ID)
	fmt.Println("Sign in via POST /api/v1/auth/request-code with header X-Tenant-ID set to the tenant id above.")
	fmt.Println()
	return nil
}

func seedTenant(db *gorm.DB) (*models.Tenant, error) {
	var tenant models.Tenant
	err := db.Where("slug = ?", DefaultTenantSlug).First(&tenant).Error
	if err == nil {
		fmt.Printf("Tenant '%s' already exists (ID: %s)\n", tenant.Name, tenant.ID)
		return &tenant, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	tenant = models.Tenant{
		Name:   DefaultTenantName,
		Slug:   DefaultTenantSlug,
		Status: models.StatusActive,
		Settings: models.TenantSettings{
			Timezone: "Europe/Istanbul",
			Locale:   "tr-TR",
		},
	}
	if err := db.Create(&tenant).Error; err != nil {
		return nil, err
	}
	fmt.Printf("Created tenant: %s (ID: %s)\n", tenant.Name, tenant.ID)
	return &tenant, nil
}

func seedTeachers(db *gorm.DB, tenantID uuid.UUID) ([]models.Teacher, error) {
	var count int64
	if err := db.Model(&models.Teacher{}).Where("tenant_id = ?", tenantID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		fmt.Printf("Teachers already exist (%d total)\n", count)
		var existing []models.Teacher
		return existing, db.Where("tenant_id = ?", tenantID).Find(&existing).Error
	}

	fullWeek := func() models.WeekAvailability {
		var w models.WeekAvailability
		for d := 0; d < 5; d++ {
			w[d] = make([]bool, 8)
			for h := range w[d] {
				w[d][h] = true
			}
		}
		return w
	}

	teachers := []models.Teacher{
		{TenantModel: models.TenantModel{TenantID: tenantID}, Name: "Ayşe Yılmaz", CanTeachMiddleSchool: true, Availability: fullWeek(), IsActive: true},
		{TenantModel: models.TenantModel{TenantID: tenantID}, Name: "Mehmet Demir", CanTeachMiddleSchool: true, CanTeachHighSchool: true, Availability: fullWeek(), IsActive: true},
		{TenantModel: models.TenantModel{TenantID: tenantID}, Name: "Elif Kaya", CanTeachHighSchool: true, Availability: fullWeek(), IsActive: true},
		{TenantModel: models.TenantModel{TenantID: tenantID}, Name: "Can Öztürk", CanTeachMiddleSchool: true, Availability: fullWeek(), IsActive: true},
	}
	if err := db.Create(&teachers).Error; err != nil {
		return nil, err
	}
	fmt.Printf("Created %d teachers\n", len(teachers))
	return teachers, nil
}

func seedLocations(db *gorm.DB, tenantID uuid.UUID) ([]models.Location, error) {
	var count int64
	if err := db.Model(&models.Location{}).Where("tenant_id = ?", tenantID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		fmt.Printf("Locations already exist (%d total)\n", count)
		var existing []models.Location
		return existing, db.Where("tenant_id = ?", tenantID).Find(&existing).Error
	}

	locations := []models.Location{
		{TenantModel: models.TenantModel{TenantID: tenantID}, Name: "Science Lab", IsActive: true},
		{TenantModel: models.TenantModel{TenantID: tenantID}, Name: "Gymnasium", IsActive: true},
	}
	if err := db.Create(&locations).Error; err != nil {
		return nil, err
	}
	fmt.Printf("Created %d locations\n", len(locations))
	return locations, nil
}

func seedClassrooms(db *gorm.DB, tenantID uuid.UUID) ([]models.Classroom, error) {
	var count int64
	if err := db.Model(&models.Classroom{}).Where("tenant_id = ?", tenantID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		fmt.Printf("Classrooms already exist (%d total)\n", count)
		var existing []models.Classroom
		return existing, db.Where("tenant_id = ?", tenantID).Find(&existing).Error
	}

	classrooms := []models.Classroom{
		{TenantModel: models.TenantModel{TenantID: tenantID}, Name: "5-A", Level: models.LevelOrtaokul, IsActive: true},
		{TenantModel: models.TenantModel{TenantID: tenantID}, Name: "9-A", Level: models.LevelLise, IsActive: true},
	}
	if err := db.Create(&classrooms).Error; err != nil {
		return nil, err
	}
	fmt.Printf("Created %d classrooms\n", len(classrooms))
	return classrooms, nil
}

func seedSubjects(db *gorm.DB, tenantID uuid.UUID, classrooms []models.Classroom, locations []models.Location) error {
	var count int64
	if err := db.Model(&models.Subject{}).Where("tenant_id = ?", tenantID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		fmt.Printf("Subjects already exist (%d total)\n", count)
		return nil
	}
	if len(classrooms) < 2 {
		fmt.Println("Not enough classrooms to seed subjects, skipping")
		return nil
	}

	classroomIDs := func(cs ...models.Classroom) models.StringSlice {
		ids := make(models.StringSlice, len(cs))
		for i, c := range cs {
			ids[i] = c.ID.String()
		}
		return ids
	}

	subjects := []models.Subject{
		{
			TenantModel: models.TenantModel{TenantID: tenantID},
			Name:        "Mathematics", WeeklyHours: 5, BlockHours: 4,
			RequiredTeacherCount: 1, AssignedClassroomIDs: classroomIDs(classrooms[0]), IsActive: true,
		},
		{
			TenantModel: models.TenantModel{TenantID: tenantID},
			Name:        "Physics", WeeklyHours: 4, RequiredTeacherCount: 1,
			AssignedClassroomIDs: classroomIDs(classrooms[1]), IsActive: true,
		},
		{
			TenantModel: models.TenantModel{TenantID: tenantID},
			Name:        "Physical Education", WeeklyHours: 2, RequiredTeacherCount: 1,
			AssignedClassroomIDs: classroomIDs(classrooms...), IsActive: true,
		},
	}
	if len(locations) > 0 {
		subjects[1].LocationID = &locations[0].ID
		subjects[2].LocationID = &locations[1 % len(locations)].ID
	}

	if err := db.Create(&subjects).Error; err != nil {
		return err
	}
	fmt.Printf("Created %d subjects\n", len(subjects))
	return nil
}

func seedTrial(db *gorm.DB, tenantID uuid.UUID) error {
	var count int64
	if err := db.Model(&models.Subscription{}).Where("tenant_id = ?", tenantID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		fmt.Println("Subscription already exists")
		return nil
	}

	now := time.Now()
	sub := models.Subscription{
		TenantModel: models.TenantModel{TenantID: tenantID},
		Provider:    models.SubscriptionProviderTrial,
		StartAt:     now,
		ExpiresAt:   now.Add(14 * 24 * time.Hour),
		Status:      models.SubscriptionStatusActive,
	}
	if err := db.Create(&sub).Error; err != nil {
		return err
	}
	fmt.Println("Created 14-day trial subscription")
	return nil
}
