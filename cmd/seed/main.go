package main

import (
	"context"
	"log"

	"intraportal/internal/config"
	"intraportal/internal/database"
	"intraportal/internal/domain"
	"intraportal/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (children first to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reactions")
	db.Exec("DELETE FROM comments")
	db.Exec("DELETE FROM posts")
	db.Exec("DELETE FROM protein_exchanges")
	db.Exec("DELETE FROM equipment_requests")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM activity_events")
	db.Exec("DELETE FROM user_aggregates")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	roomRepo := repository.NewRoomRepository(db)
	userRepo := repository.NewUserRepository(db)
	aggregateRepo := repository.NewAggregateRepository(db)

	// ================== ROOMS ==================
	log.Println("Creating rooms...")
	rooms := []domain.Room{
		{Name: "Sala Aquário", Capacity: 8, Color: "#2d9cdb"},
		{Name: "Sala Criativa", Capacity: 12, Color: "#27ae60"},
		{Name: "Sala Foco", Capacity: 4, Color: "#f2994a"},
		{Name: "Auditório", Capacity: 40, Color: "#9b51e0"},
		{Name: "Recepção", Capacity: 2, Color: "#eb5757", IsReception: true},
	}
	for i := range rooms {
		if err := roomRepo.Create(ctx, &rooms[i]); err != nil {
			log.Fatal("room seed failed:", err)
		}
	}

	// ================== USERS ==================
	log.Println("Creating users...")
	seedUsers := []struct {
		email    string
		name     string
		sector   string
		role     domain.UserRole
		password string
	}{
		{"admin@portal.local", "Administração", "TI", domain.RoleAdmin, "admin123"},
		{"recepcao@portal.local", "Recepção", "Atendimento", domain.RoleReception, "recepcao123"},
		{"ana.souza@portal.local", "Ana Souza", "Financeiro", domain.RoleEmployee, "senha123"},
		{"bruno.lima@portal.local", "Bruno Lima", "TI", domain.RoleEmployee, "senha123"},
		{"carla.mendes@portal.local", "Carla Mendes", "RH", domain.RoleEmployee, "senha123"},
	}
	for _, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("bcrypt failed:", err)
		}
		user := domain.User{
			Email:        su.email,
			PasswordHash: string(hash),
			Name:         su.name,
			Sector:       su.sector,
			Role:         su.role,
		}
		if err := userRepo.Create(ctx, &user); err != nil {
			log.Fatal("user seed failed:", err)
		}
		agg := domain.UserAggregate{
			UserID: user.ID,
			Name:   user.Name,
			Sector: user.Sector,
			Level:  1,
			Badges: []string{},
		}
		if err := aggregateRepo.Save(ctx, &agg); err != nil {
			log.Fatal("aggregate seed failed:", err)
		}
		log.Printf("User created: %s / %s", su.email, su.password)
	}

	log.Println("Seed complete.")
}
