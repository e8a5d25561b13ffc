package main

import (
	"fmt"
	"log"
	"time"

	"signage-command-center/be/config"
	"signage-command-center/be/database"
	"signage-command-center/be/models"

	"github.com/joho/godotenv"
)

func floatPtr(f float64) *float64 { return &f }

// Seeds sample locations, devices, and campaigns for local development.
// Requires the demo users (run create_demo_users first).
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var admin models.User
	if err := db.Where("username = ?", "admin").First(&admin).Error; err != nil {
		log.Fatal("Admin user not found. Run scripts/create_demo_users first.")
	}
	var client models.User
	db.Where("username = ?", "client1").First(&client)

	var locationCount int64
	db.Model(&models.Location{}).Count(&locationCount)
	if locationCount == 0 {
		locations := []models.Location{
			{
				Name:        "Downtown Plaza",
				Description: "Main commercial district location",
				Address:     "123 Main St, Downtown",
				Latitude:    floatPtr(40.7128),
				Longitude:   floatPtr(-74.0060),
				Status:      models.LocationActive,
				CreatedBy:   &admin.ID,
			},
			{
				Name:        "Shopping Mall",
				Description: "Large shopping center",
				Address:     "456 Mall Way, Suburbia",
				Latitude:    floatPtr(40.7589),
				Longitude:   floatPtr(-73.9851),
				Status:      models.LocationActive,
				CreatedBy:   &admin.ID,
			},
			{
				Name:        "Airport Terminal",
				Description: "International airport main terminal",
				Address:     "789 Airport Rd, Airport City",
				Latitude:    floatPtr(40.6413),
				Longitude:   floatPtr(-73.7781),
				Status:      models.LocationMaintenance,
				CreatedBy:   &admin.ID,
			},
		}
		if err := db.Create(&locations).Error; err != nil {
			log.Fatalf("Failed to create locations: %v", err)
		}
		fmt.Printf("Created %d locations\n", len(locations))
	}

	var deviceCount int64
	db.Model(&models.Device{}).Count(&deviceCount)
	if deviceCount == 0 {
		var firstLocation models.Location
		db.First(&firstLocation)

		now := time.Now().UTC()
		devices := []models.Device{
			{
				Name:            "Plaza Display 01",
				Type:            models.DeviceDisplay,
				SerialNumber:    "DSP-0001",
				Status:          models.DeviceOnline,
				FirmwareVersion: "2.4.1",
				IPAddress:       "10.0.10.11",
				LocationID:      &firstLocation.ID,
				LastSeenAt:      &now,
			},
			{
				Name:            "Plaza Sensor 01",
				Type:            models.DeviceSensor,
				SerialNumber:    "SNS-0001",
				Status:          models.DeviceOffline,
				FirmwareVersion: "1.0.3",
				IPAddress:       "10.0.10.12",
				LocationID:      &firstLocation.ID,
			},
			{
				Name:         "Lobby Kiosk",
				Type:         models.DeviceKiosk,
				SerialNumber: "KSK-0001",
				Status:       models.DeviceMaintenance,
			},
		}
		if err := db.Create(&devices).Error; err != nil {
			log.Fatalf("Failed to create devices: %v", err)
		}
		fmt.Printf("Created %d devices\n", len(devices))
	}

	var campaignCount int64
	db.Model(&models.Campaign{}).Count(&campaignCount)
	if campaignCount == 0 && client.ID != 0 {
		start := time.Now().UTC()
		end := start.AddDate(0, 1, 0)
		campaigns := []models.Campaign{
			{
				Name:           "Summer Launch",
				Description:    "Seasonal product launch across downtown displays",
				Status:         models.CampaignActive,
				BudgetCents:    2_500_000,
				StartDate:      &start,
				EndDate:        &end,
				TargetAudience: "Commuters, 18-45",
				CreatedBy:      admin.ID,
				ClientID:       &client.ID,
			},
			{
				Name:        "Holiday Teaser",
				Description: "Draft teaser campaign for the holiday season",
				Status:      models.CampaignDraft,
				BudgetCents: 1_000_000,
				CreatedBy:   admin.ID,
				ClientID:    &client.ID,
			},
		}
		if err := db.Create(&campaigns).Error; err != nil {
			log.Fatalf("Failed to create campaigns: %v", err)
		}
		fmt.Printf("Created %d campaigns\n", len(campaigns))
	}

	fmt.Println("Sample data ready")
}
