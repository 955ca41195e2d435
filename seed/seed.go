package seed

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"nova/db"
	"nova/models"
	"nova/utils"
)

// Run bootstraps the demo catalog and an admin account. Products are only
// seeded into an empty collection; the admin is only created if missing.
func Run(ctx context.Context) {
	seedProducts(ctx)
	seedAdmin(ctx)
}

func seedProducts(ctx context.Context) {
	count, err := db.ProductsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Println("seed: product count error:", err)
		return
	}
	if count > 0 {
		log.Println("seed: products already present, skipping")
		return
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(demoProducts))
	for _, p := range demoProducts {
		p.CreatedAt = now
		docs = append(docs, p)
	}
	if _, err := db.ProductsCollection.InsertMany(ctx, docs); err != nil {
		log.Println("seed: product insert error:", err)
		return
	}
	log.Printf("seed: inserted %d products", len(docs))
}

func seedAdmin(ctx context.Context) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	count, err := db.UsersCollection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil || count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("seed: admin hash error:", err)
		return
	}
	admin := models.User{
		UserID:       utils.GetUUID(),
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      true,
		CreatedAt:    time.Now(),
	}
	if _, err := db.UsersCollection.InsertOne(ctx, admin); err != nil {
		log.Println("seed: admin insert error:", err)
		return
	}
	log.Printf("seed: created admin user %s", email)
}

// picsum returns a stable demo image URL.
func picsum(seed string, w, h int) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/%d/%d", seed, w, h)
}

var demoProducts = []models.Product{
	{ProductID: "iot-1001", Title: "Smart LED Bulb (E27)", Description: "Wi-Fi + Matter, tunable white 2700-6500K, 9W.", Price: 14.99, Currency: "EUR", Category: "lighting", Stock: 200, Thumbnail: picsum("iot-1001", 400, 300), Images: []string{picsum("iot-1001-a", 800, 600), picsum("iot-1001-b", 800, 600)}, Tags: []string{"bulb", "matter", "wifi"}},
	{ProductID: "iot-1002", Title: "Smart Plug Mini", Description: "Wi-Fi + Energy monitoring, schedules & scenes.", Price: 19.90, Currency: "EUR", Category: "power", Stock: 320, Thumbnail: picsum("iot-1002", 400, 300), Images: []string{picsum("iot-1002-a", 800, 600)}, Tags: []string{"plug", "energy"}},
	{ProductID: "iot-1003", Title: "Smart Thermostat", Description: "Programmable, geofencing, OpenTherm, app control.", Price: 159.00, Currency: "EUR", Category: "climate", Stock: 50, Thumbnail: picsum("iot-1003", 400, 300), Images: []string{picsum("iot-1003-a", 800, 600), picsum("iot-1003-b", 800, 600)}, Tags: []string{"thermostat"}},
	{ProductID: "iot-1004", Title: "Smart Lock Pro", Description: "Keyless entry, auto-lock, HomeKit, Zigbee.", Price: 229.00, Currency: "EUR", Category: "security", Stock: 35, Thumbnail: picsum("iot-1004", 400, 300), Images: []string{picsum("iot-1004-a", 800, 600)}, Tags: []string{"lock", "zigbee"}},
	{ProductID: "iot-1005", Title: "Smart Camera 2K", Description: "Indoor cam, motion detection, local storage.", Price: 49.90, Currency: "EUR", Category: "security", Stock: 120, Thumbnail: picsum("iot-1005", 400, 300), Images: []string{picsum("iot-1005-a", 800, 600), picsum("iot-1005-b", 800, 600)}, Tags: []string{"camera", "2k"}},
	{ProductID: "iot-1007", Title: "Smart Hub (Matter)", Description: "Bridges Zigbee/Z-Wave to Matter over Thread.", Price: 119.00, Currency: "EUR", Category: "hubs", Stock: 80, Thumbnail: picsum("iot-1007", 400, 300), Images: []string{picsum("iot-1007-a", 800, 600)}, Tags: []string{"hub", "matter", "thread"}},
	{ProductID: "iot-1008", Title: "Motion Sensor PIR", Description: "Battery powered, Zigbee, 2-year life.", Price: 17.90, Currency: "EUR", Category: "sensors", Stock: 240, Thumbnail: picsum("iot-1008", 400, 300), Images: []string{picsum("iot-1008-a", 800, 600)}, Tags: []string{"motion", "pir"}},
	{ProductID: "iot-1009", Title: "Door/Window Sensor", Description: "Magnetic contact, Zigbee, automations.", Price: 12.90, Currency: "EUR", Category: "sensors", Stock: 300, Thumbnail: picsum("iot-1009", 400, 300), Images: []string{picsum("iot-1009-a", 800, 600)}, Tags: []string{"contact"}},
	{ProductID: "iot-1014", Title: "LED Light Strip (2m)", Description: "RGBIC, music sync, Wi-Fi + Matter.", Price: 24.90, Currency: "EUR", Category: "lighting", Stock: 160, Thumbnail: picsum("iot-1014", 400, 300), Images: []string{picsum("iot-1014-a", 800, 600)}, Tags: []string{"strip", "rgb"}},
	{ProductID: "iot-1016", Title: "Energy Monitor Clamp", Description: "Whole-home power monitoring, Wi-Fi.", Price: 69.00, Currency: "EUR", Category: "power", Stock: 65, Thumbnail: picsum("iot-1016", 400, 300), Images: []string{picsum("iot-1016-a", 800, 600)}, Tags: []string{"energy"}},
}
