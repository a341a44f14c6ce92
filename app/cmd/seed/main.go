package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/Rushirajkorde/Rent-Edge/app/config"
	"github.com/Rushirajkorde/Rent-Edge/app/database"
	"github.com/Rushirajkorde/Rent-Edge/app/models"
	"github.com/Rushirajkorde/Rent-Edge/app/routes/auth"
	"github.com/Rushirajkorde/Rent-Edge/app/routes/properties"
)

// Seeds a demo owner with one property so a fresh install has something to
// connect to.
func main() {
	_ = godotenv.Load()
	config.InitDB()
	db := config.GetDB()

	if err := database.EnsureSchema(db); err != nil {
		fmt.Printf("Schema bootstrap failed: %v\n", err)
		return
	}

	hash, err := auth.HashPassword("password123")
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		return
	}

	ownerUser := &models.User{
		ID:           uuid.NewString(),
		Name:         "Demo Owner",
		Email:        "owner@rentedge.dev",
		Phone:        "9999900000",
		PasswordHash: hash,
		Role:         models.RoleOwner,
	}
	if err := database.CreateUser(db, ownerUser); err != nil {
		fmt.Printf("Error creating owner: %v\n", err)
		return
	}

	prop := &models.Property{
		ID:              uuid.NewString(),
		OwnerID:         ownerUser.ID,
		Name:            "Lakeview Apartment 2B",
		Address:         "14 Lakeview Road",
		OwnerUpiID:      "demo.owner@upi",
		RentAmount:      15000,
		SecurityDeposit: 50000,
		DueDate:         time.Date(time.Now().Year(), time.Now().Month(), 5, 0, 0, 0, 0, time.Local),
		PropertyCode:    properties.GeneratePropertyCode(),
	}
	if err := database.InsertProperty(db, prop); err != nil {
		fmt.Printf("Error creating property: %v\n", err)
		return
	}

	fmt.Printf("Owner created: %s (%s)\n", ownerUser.Name, ownerUser.Email)
	fmt.Printf("Property created: %s, code %s\n", prop.Name, prop.PropertyCode)
}
