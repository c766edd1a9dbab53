package security

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/naruerongk-png/inventory/internal/repository"
	"github.com/naruerongk-png/inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var (
	jwtSecretOnce sync.Once
	jwtSecretKey  []byte
)

// jwtSecret loads JWT_SECRET on first use. Token signing and validation
// cannot work without it, so a missing secret is fatal at that point.
func jwtSecret() []byte {
	jwtSecretOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			if err := godotenv.Load(); err != nil {
				log.Printf("Could not load .env: %v", err)
			}
			secret = os.Getenv("JWT_SECRET")
		}

		if secret == "" {
			log.Fatal("JWT_SECRET environment variable is not set")
		}

		jwtSecretKey = []byte(secret)
	})

	return jwtSecretKey
}

func AuthenticateUser(username, password string, repo *repository.Repository) (*models.User, error) {
	var user models.User

	query := repo.GoquDBWrapper.Select("id", "username", "fullname", "password_hash", "role").From("users").Where(goqu.Ex{"username": username})

	if _, err := query.Executor().ScanStruct(&user); err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}

	return &user, nil
}

func GenerateJWT(userID string, role string, username string) (string, error) {
	claims := jwt.MapClaims{
		"userID":   userID,
		"role":     role,
		"username": username,
		"exp":      time.Now().Add(time.Hour * 120).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

func GetUserIDFromToken(c *gin.Context) (string, error) {
	userID, err := claimFromContext(c, "userID")
	if err != nil {
		return "", err
	}
	return userID, nil
}

func GetUsernameFromToken(c *gin.Context) (string, error) {
	return claimFromContext(c, "username")
}

func claimFromContext(c *gin.Context, key string) (string, error) {
	value, exists := c.Get(key)
	if !exists {
		return "", fmt.Errorf("claim %s not present in context", key)
	}

	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("claim %s is not a string", key)
	}

	return str, nil
}
