package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"library-lending/internal/auth"
	"library-lending/internal/firebase"
)

// Grants the admin role to an existing Firebase Auth user by setting the
// roles custom claim the authorization guard reads. The claim is an
// ordered list and the guard only honors the first entry, so "admin" is
// written first.
func main() {
	email := flag.String("email", "", "email of the user to promote")
	rolesClaim := flag.String("claim", auth.DefaultRolesClaim, "name of the roles custom claim")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "usage: create_admin -email user@example.com [-claim roles]")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using system environment")
	}

	ctx := context.Background()
	client, err := firebase.NewClient(ctx)
	if err != nil {
		log.Fatal("firebase:", err)
	}
	defer client.Close()

	user, err := client.Auth.GetUserByEmail(ctx, *email)
	if err != nil {
		log.Fatalf("looking up user %s: %v", *email, err)
	}

	claims := user.CustomClaims
	if claims == nil {
		claims = make(map[string]interface{})
	}
	claims[*rolesClaim] = []string{auth.CapabilityAdmin}

	if err := client.Auth.SetCustomUserClaims(ctx, user.UID, claims); err != nil {
		log.Fatalf("setting custom claims: %v", err)
	}

	fmt.Printf("granted admin role to %s (UID: %s)\n", *email, user.UID)
	fmt.Println("the user must sign in again for the new claim to take effect")
}
