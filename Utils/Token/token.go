package Token

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

var (
	apiSecret    []byte
	hourLifespan = 6
)

// Setup loads the signing secret. Called once at process start; a missing
// secret is a startup failure, never a per-request one.
func Setup() error {
	secret := os.Getenv("API_SECRET")
	if secret == "" {
		return errors.New("API_SECRET not set")
	}
	apiSecret = []byte(secret)

	if lifespan := os.Getenv("TOKEN_HOUR_LIFESPAN"); lifespan != "" {
		hours, err := strconv.Atoi(lifespan)
		if err != nil {
			return errors.New("TOKEN_HOUR_LIFESPAN is not a number")
		}
		hourLifespan = hours
	}
	return nil
}

// GenerateToken signs a session token carrying the user id and grade.
func GenerateToken(userID uint, grade string) (string, error) {
	claims := jwt.MapClaims{}
	claims["user_id"] = userID
	claims["grade"] = grade
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(time.Duration(hourLifespan) * time.Hour).Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(apiSecret)
}

// ExtractToken pulls the bearer token out of the Authorization header, or ""
// when the caller sent none.
func ExtractToken(c *gin.Context) string {
	bearerToken := c.Request.Header.Get("Authorization")
	if len(strings.Split(bearerToken, " ")) == 2 {
		return strings.Split(bearerToken, " ")[1]
	}
	return ""
}

func keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrInvalidToken
	}
	return apiSecret, nil
}

// TokenValid performs the standard verification: signature and expiry.
func TokenValid(c *gin.Context) error {
	tokenString := ExtractToken(c)
	if tokenString == "" {
		return ErrMissingToken
	}
	if _, err := jwt.Parse(tokenString, keyFunc); err != nil {
		return ErrInvalidToken
	}
	return nil
}

func extractClaims(c *gin.Context) (jwt.MapClaims, error) {
	tokenString := ExtractToken(c)
	if tokenString == "" {
		return nil, ErrMissingToken
	}
	token, err := jwt.Parse(tokenString, keyFunc)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func ExtractTokenID(c *gin.Context) (uint, error) {
	claims, err := extractClaims(c)
	if err != nil {
		return 0, err
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

func ExtractGrade(c *gin.Context) (string, error) {
	claims, err := extractClaims(c)
	if err != nil {
		return "", err
	}
	grade, ok := claims["grade"].(string)
	if !ok {
		return "", ErrInvalidToken
	}
	return grade, nil
}

// DecodeGradeIgnoringExpiry checks only the signature and returns the
// embedded grade. Used by the license gate, which must be able to inspect the
// role on a technically expired token; keep it separate from TokenValid.
func DecodeGradeIgnoringExpiry(tokenString string) (string, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.Parse(tokenString, keyFunc)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	grade, ok := claims["grade"].(string)
	if !ok {
		return "", ErrInvalidToken
	}
	return grade, nil
}
