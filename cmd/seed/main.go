package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/yelpcamp/backend/internal/config"
	"github.com/yelpcamp/backend/internal/logger"
	"github.com/yelpcamp/backend/internal/models"
	"github.com/yelpcamp/backend/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// seedUser is a test account created by the seeder
type seedUser struct {
	username string
	email    string
	password string
	name     string
}

// seedCampground is a sample listing created by the seeder
type seedCampground struct {
	name        string
	price       string
	image       string
	location    string
	description string
}

var seedUsers = []seedUser{
	{username: "johncamper", email: "john@example.com", password: "password123", name: "John Camper"},
	{username: "janehiker", email: "jane@example.com", password: "password123", name: "Jane Hiker"},
	{username: "demo", email: "demo@example.com", password: "demo123", name: "Demo User"},
}

var seedCampgrounds = []seedCampground{
	{
		name:        "Cloud's Rest",
		price:       "9.00",
		image:       "https://images.unsplash.com/photo-1504280390367-361c6d9f38f4?w=800",
		location:    "Yosemite National Park, California",
		description: "Experience the breathtaking beauty of Cloud's Rest, a premier camping destination nestled high in the mountains. This campground offers stunning panoramic views of the surrounding peaks and valleys. Wake up above the clouds and watch the sunrise paint the sky in brilliant oranges and pinks.",
	},
	{
		name:        "Desert Mesa",
		price:       "12.00",
		image:       "https://images.unsplash.com/photo-1533873984035-25970ab07461?w=800",
		location:    "Moab, Utah",
		description: "Desert Mesa offers a unique camping experience in the heart of red rock country. The dramatic landscape features towering sandstone formations, ancient petroglyphs, and some of the most spectacular sunsets you'll ever witness.",
	},
	{
		name:        "Canyon Floor",
		price:       "15.00",
		image:       "https://images.unsplash.com/photo-1464822759023-fed622ff2c3b?w=800",
		location:    "Grand Canyon, Arizona",
		description: "Nestled at the bottom of a magnificent canyon, Canyon Floor campground provides a unique perspective on geological time. Towering walls rise hundreds of feet on either side, displaying millions of years of Earth's history in colorful stratified layers.",
	},
	{
		name:        "Whispering Pines",
		price:       "18.00",
		image:       "https://images.unsplash.com/photo-1510312305653-8ed496efae75?w=800",
		location:    "Lake Tahoe, California",
		description: "Set within an ancient pine forest, Whispering Pines campground offers the quintessential woodland camping experience. The towering trees create a natural cathedral, with sunlight filtering through the canopy in golden shafts.",
	},
	{
		name:        "Coastal Bluffs",
		price:       "22.00",
		image:       "https://images.unsplash.com/photo-1523987355523-c7b5b0dd90a7?w=800",
		location:    "Big Sur, California",
		description: "Perched on dramatic coastal bluffs overlooking the Pacific Ocean, this campground offers front-row seats to some of nature's most spectacular shows. Watch migrating whales, playful sea otters, and colorful tide pools teeming with life.",
	},
	{
		name:        "Mountain Meadow",
		price:       "14.00",
		image:       "https://images.unsplash.com/photo-1478131143081-80f7f84ca84d?w=800",
		location:    "Rocky Mountain National Park, Colorado",
		description: "Mountain Meadow campground sits in a pristine alpine meadow surrounded by towering peaks. Wildflowers blanket the landscape in summer, creating a colorful paradise for photographers and nature lovers alike.",
	},
	{
		name:        "Redwood Haven",
		price:       "25.00",
		image:       "https://images.unsplash.com/photo-1542202229-7d93c33f5d07?w=800",
		location:    "Redwood National Park, California",
		description: "Camp among the giants at Redwood Haven, where ancient redwood trees tower hundreds of feet overhead. These magnificent trees, some over 2,000 years old, create an atmosphere of timeless wonder.",
	},
	{
		name:        "Lakeside Retreat",
		price:       "20.00",
		image:       "https://images.unsplash.com/photo-1537905569824-f89f14cceb68?w=800",
		location:    "Glacier National Park, Montana",
		description: "Lakeside Retreat offers premium waterfront camping on the shores of a pristine glacial lake. The crystal-clear waters reflect the surrounding peaks like a mirror, creating postcard-perfect views.",
	},
}

var seedComments = []string{
	"This place is amazing! The views are absolutely breathtaking.",
	"Great campground, but bring warm clothes - it gets cold at night!",
	"Perfect weekend getaway. Will definitely come back.",
	"The hiking trails nearby are fantastic. Saw lots of wildlife.",
	"Best stargazing I have ever experienced. Bring a telescope!",
	"Peaceful and quiet. Exactly what I needed to recharge.",
	"The sunrise here is unforgettable. Wake up early!",
	"Clean facilities and friendly staff. Highly recommend.",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Logger.Fatal("Failed to ping database", zap.Error(err))
	}

	if err := run(db); err != nil {
		logger.Logger.Fatal("Seeding failed", zap.Error(err))
	}

	logger.Logger.Info("Seed complete",
		zap.Int("users", len(seedUsers)),
		zap.Int("campgrounds", len(seedCampgrounds)))
}

// run clears existing data and inserts the sample records
func run(db *sql.DB) error {
	ctx := context.Background()

	// Clear existing data, children first
	for _, table := range []string{"comments", "campgrounds", "users"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	userRepo := repositories.NewUserRepository(db)
	campgroundRepo := repositories.NewCampgroundRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	now := time.Now()

	userIDs := make([]string, 0, len(seedUsers))
	for _, u := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", u.username, err)
		}

		name := u.name
		user := &models.User{
			ID:           uuid.New().String(),
			Username:     u.username,
			Email:        u.email,
			Name:         &name,
			PasswordHash: string(hash),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user %s: %w", u.username, err)
		}

		userIDs = append(userIDs, user.ID)
		logger.Logger.Info("Created user", zap.String("username", u.username))
	}

	for i, c := range seedCampgrounds {
		location := c.location
		authorID := userIDs[i%len(userIDs)]

		campground := &models.Campground{
			Name:        c.name,
			Price:       c.price,
			Image:       c.image,
			Description: c.description,
			Location:    &location,
			AuthorID:    &authorID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := campgroundRepo.Create(ctx, campground); err != nil {
			return fmt.Errorf("failed to create campground %s: %w", c.name, err)
		}

		// Two comments per campground, rotated through the sample pool
		for j := 0; j < 2; j++ {
			commentAuthor := userIDs[(i+j+1)%len(userIDs)]
			comment := &models.Comment{
				Text:         seedComments[(i*2+j)%len(seedComments)],
				CampgroundID: campground.ID,
				AuthorID:     &commentAuthor,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := commentRepo.Create(ctx, comment); err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
		}

		logger.Logger.Info("Created campground", zap.String("name", c.name))
	}

	return nil
}
