// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"clicafe-api/controllers"
	"clicafe-api/routes"
	"clicafe-api/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))

	// External services
	emailService := utils.NewEmailService()
	paymentService := utils.NewStripeService()
	storageService, err := utils.NewStorageService(context.Background())
	if err != nil {
		log.Printf("S3 storage unavailable, product image upload disabled: %v", err)
		storageService = nil
	}

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err = client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()

	// Initialize controllers
	userController := controllers.NewUserController(client, emailService)
	productController := controllers.NewProductController(client, storageService)
	cartController := controllers.NewCartController(client)
	orderController := controllers.NewOrderController(client, emailService, paymentService)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, productController, cartController, orderController)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	fmt.Printf("Server is running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
