package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tourquote/internal/database"
	"tourquote/internal/domain"
	"tourquote/internal/modules/pricing"
	"tourquote/internal/repository"
)

func main() {
	db, err := database.Connect("tourquote.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		repository.UserMigrationModel(),
		repository.EstimateMigrationModel(),
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM estimates")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	estimates := repository.NewEstimateRepository(db)

	log.Println("Creating users...")
	managerHash, _ := bcrypt.GenerateFromPassword([]byte("manager123"), bcrypt.DefaultCost)
	manager := domain.User{
		Email:        "manager@tourquote.ar",
		PasswordHash: string(managerHash),
		Role:         domain.RoleManager,
		Name:         "Demo Manager",
	}
	if err := users.Create(ctx, &manager); err != nil {
		log.Fatal("Create manager failed:", err)
	}

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@tourquote.ar",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Demo Admin",
	}
	if err := users.Create(ctx, &admin); err != nil {
		log.Fatal("Create admin failed:", err)
	}

	log.Println("Creating sample estimate...")
	departure := time.Now().Truncate(time.Hour).Add(14 * 24 * time.Hour)
	est := domain.Estimate{
		Reference: "EST-SEED0001",
		Name:      "Patagonia Highlights, 8 days",
		Currency:  "USD",
		Status:    domain.EstimateDraft,
		Group: domain.Group{
			TotalPax:    10,
			GuidesCount: 1,
		},
		Hotels: []domain.Hotel{
			{
				Name:              "Hotel Austral",
				AccommodationType: domain.AccommodationDouble,
				PricePerRoom:      150,
				Nights:            4,
				MarkupPercent:     10,
			},
			{
				Name:              "Guide guesthouse",
				AccommodationType: domain.AccommodationSingle,
				PricePerRoom:      60,
				Nights:            4,
				IsGuideHotel:      true,
			},
		},
		Days: []domain.TourDay{
			{
				DayNumber: 1,
				Title:     "Arrival and city tour",
				Activities: []domain.Activity{
					{Name: "Airport transfer", CalculationType: domain.CalcPerGroup, BasePrice: 250, MarkupPercent: 10},
					{Name: "Walking tour guide", CalculationType: domain.CalcPerDay, BasePrice: 180, Quantity: 1, MarkupPercent: 10},
				},
			},
			{
				DayNumber: 2,
				Title:     "Tierra del Fuego",
				Activities: []domain.Activity{
					{Name: "National park entrance", CalculationType: domain.CalcPerPerson, BasePrice: 15, MarkupPercent: 10},
					{Name: "Catamaran excursion", CalculationType: domain.CalcPerPerson, BasePrice: 45, MarkupPercent: 12},
				},
			},
		},
		OptionalServices: []domain.OptionalService{
			{Name: "Travel insurance", Price: 30, MarkupPercent: 5},
		},
		Flights: []domain.Flight{
			{
				Segments: []domain.FlightSegment{
					{
						Origin:        "BUE",
						Destination:   "USH",
						DepartureTime: departure,
						ArrivalTime:   departure.Add(3*time.Hour + 30*time.Minute),
						CabinClass:    domain.CabinEconomy,
						BasePrice:     320,
					},
				},
				Passengers: domain.PassengerCounts{Adults: 10},
				CabinClass: domain.CabinEconomy,
				Baggage:    domain.BaggageAllowance{Checked: 10, CarryOn: 10},
			},
		},
		GeneralMarkupPercent: 8,
		CreatedBy:            manager.ID,
	}
	if err := estimates.Create(ctx, &est); err != nil {
		log.Fatal("Create estimate failed:", err)
	}

	engine, err := pricing.NewEngine(pricing.DefaultRouteTable(), pricing.DefaultAdjustmentSettings())
	if err != nil {
		log.Fatal(err)
	}

	totals, err := engine.Compose(est, pricing.DisplayWithMarkup)
	if err != nil {
		log.Fatal("Pricing failed:", err)
	}
	if err := estimates.SaveTotals(ctx, est.ID, totals); err != nil {
		log.Fatal("SaveTotals failed:", err)
	}

	fmt.Println("Seed complete.")
	fmt.Printf("  manager login: %s / manager123\n", manager.Email)
	fmt.Printf("  admin login:   %s / admin123\n", admin.Email)
	fmt.Printf("  estimate %s (%s):\n", est.Reference, est.Name)
	for _, c := range totals.Categories {
		fmt.Printf("    %-18s base %10.2f  with markup %10.2f\n", c.Category, c.BaseCost, c.TotalWithMarkup)
	}
	fmt.Printf("    without markup: %.2f %s\n", totals.WithoutMarkup.FinalTotal, totals.Currency)
	fmt.Printf("    with markup:    %.2f %s\n", totals.WithMarkup.FinalTotal, totals.Currency)
}
