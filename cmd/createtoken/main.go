package main

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"

	"staffdesk.com/staffdesk/security"
)

func main() {
	secret, err := base64.StdEncoding.DecodeString(os.Getenv("STAFFDESK_SIGNING_SECRET"))
	if err != nil {
		log.Fatal("Failed to decode JWT secret:", err)
	}

	token, err := security.CreateIdentityToken(&security.Identity{
		UserID: 1,
		Email:  "admin@staffdesk.local",
		Role:   "admin",
	}, secret, security.TokenExpiry)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
